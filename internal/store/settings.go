package store

import (
	"fmt"
	"strconv"
)

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// CostPerKm returns the configured vehicle cost per kilometer.
// An unset or unparseable value reads as 0.
func (s *Store) CostPerKm() float64 {
	v, err := s.GetSetting("cost_per_km")
	if err != nil {
		return 0
	}
	cost, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return cost
}

func (s *Store) SetCostPerKm(cost float64) error {
	return s.SetSetting("cost_per_km", strconv.FormatFloat(cost, 'f', -1, 64))
}
