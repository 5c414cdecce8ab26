package insight

import (
	"fmt"
	"os"
)

// NewGenerator builds the configured backend, wrapped with the resilience
// policies. DRIVELOG_AI_PROVIDER / DRIVELOG_AI_MODEL override the config.
func NewGenerator(provider, model string) (Generator, error) {
	if env := os.Getenv("DRIVELOG_AI_PROVIDER"); env != "" {
		provider = env
	}
	if env := os.Getenv("DRIVELOG_AI_MODEL"); env != "" {
		model = env
	}

	switch provider {
	case "gemini", "":
		apiKey := os.Getenv("GEMINI_API_KEY")
		return NewResilient(NewGeminiGenerator(model, apiKey)), nil
	case "mock":
		return &MockGenerator{Model: model}, nil
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", provider)
	}
}
