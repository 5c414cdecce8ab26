// Package config loads process-level configuration from
// ~/.config/drivelog/config.yaml. Data-coupled settings (cost per km,
// retention) live in the SQLite settings table instead.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type AIConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
}

type Config struct {
	AI       AIConfig `yaml:"ai"`
	Currency string   `yaml:"currency"`
}

func Default() Config {
	return Config{
		AI:       AIConfig{Provider: "gemini"},
		Currency: "R$",
	}
}

// DefaultPath returns ~/.config/drivelog/config.yaml.
func DefaultPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "drivelog", "config.yaml"), nil
}

// Load reads the config at path. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.Currency == "" {
		cfg.Currency = Default().Currency
	}
	if cfg.AI.Provider == "" {
		cfg.AI.Provider = Default().AI.Provider
	}
	return cfg, nil
}

func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}
