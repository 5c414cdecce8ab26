package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sadopc/drivelog/internal/store"
	"github.com/xeipuuv/gojsonschema"
)

// Backup is a full snapshot of the store. The cost-per-km value in effect at
// backup time is stored alongside the entries, so any recomputation against
// the snapshot uses the snapshot's rate, not the live setting.
type Backup struct {
	ID         string        `json:"id"`
	ExportedAt string        `json:"exported_at"`
	CostPerKm  float64       `json:"cost_per_km"`
	Entries    []backupEntry `json:"entries"`
}

type backupEntry struct {
	Date            string  `json:"date"`
	TotalEarnings   float64 `json:"total_earnings"`
	KmDriven        float64 `json:"km_driven"`
	HoursWorked     float64 `json:"hours_worked"`
	AdditionalCosts float64 `json:"additional_costs"`
	CreatedAt       string  `json:"created_at,omitempty"`
}

const backupSchema = `{
	"type": "object",
	"required": ["id", "exported_at", "cost_per_km", "entries"],
	"properties": {
		"id": {"type": "string"},
		"exported_at": {"type": "string"},
		"cost_per_km": {"type": "number", "minimum": 0},
		"entries": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["date", "total_earnings", "km_driven", "hours_worked", "additional_costs"],
				"properties": {
					"date": {"type": "string"},
					"total_earnings": {"type": "number", "minimum": 0},
					"km_driven": {"type": "number", "minimum": 0},
					"hours_worked": {"type": "number", "minimum": 0},
					"additional_costs": {"type": "number", "minimum": 0},
					"created_at": {"type": "string"}
				}
			}
		}
	}
}`

// WriteBackup snapshots entries and the current cost setting to path.
func WriteBackup(entries []store.Entry, costPerKm float64, path string) (*Backup, error) {
	b := &Backup{
		ID:         uuid.NewString(),
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		CostPerKm:  costPerKm,
	}
	for _, e := range entries {
		be := backupEntry{
			Date:            e.Date,
			TotalEarnings:   e.TotalEarnings,
			KmDriven:        e.KmDriven,
			HoursWorked:     e.HoursWorked,
			AdditionalCosts: e.AdditionalCosts,
		}
		if !e.CreatedAt.IsZero() {
			be.CreatedAt = e.CreatedAt.Format(time.RFC3339)
		}
		b.Entries = append(b.Entries, be)
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal backup: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, fmt.Errorf("write backup file: %w", err)
	}
	return b, nil
}

// ReadBackup loads and validates a backup file. The file is checked against
// the backup schema before unmarshaling so a malformed or foreign file is
// rejected with a clear error instead of half-restoring.
func ReadBackup(path string) (*Backup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read backup file: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(backupSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("validate backup: %w", err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("invalid backup file: %s", result.Errors()[0])
	}

	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("unmarshal backup: %w", err)
	}
	return &b, nil
}

// Restore replaces the store's entries and cost setting with the backup's
// contents.
func Restore(s *store.Store, b *Backup) error {
	entries := make([]store.Entry, 0, len(b.Entries))
	for _, be := range b.Entries {
		e := store.Entry{
			Date:            be.Date,
			TotalEarnings:   be.TotalEarnings,
			KmDriven:        be.KmDriven,
			HoursWorked:     be.HoursWorked,
			AdditionalCosts: be.AdditionalCosts,
		}
		if be.CreatedAt != "" {
			e.CreatedAt, _ = time.Parse(time.RFC3339, be.CreatedAt)
		}
		entries = append(entries, e)
	}
	if err := s.ReplaceAllEntries(entries); err != nil {
		return fmt.Errorf("restore entries: %w", err)
	}
	if err := s.SetCostPerKm(b.CostPerKm); err != nil {
		return fmt.Errorf("restore cost setting: %w", err)
	}
	return nil
}
