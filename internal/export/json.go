package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/drivelog/internal/report"
	"github.com/sadopc/drivelog/internal/store"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	CostPerKm  float64     `json:"cost_per_km"`
	Count      int         `json:"count"`
	Entries    []jsonEntry `json:"entries"`
}

type jsonEntry struct {
	ID              int64    `json:"id"`
	Date            string   `json:"date"`
	TotalEarnings   float64  `json:"total_earnings"`
	KmDriven        float64  `json:"km_driven"`
	HoursWorked     float64  `json:"hours_worked"`
	AdditionalCosts float64  `json:"additional_costs"`
	CarCost         float64  `json:"car_cost"`
	NetProfit       float64  `json:"net_profit"`
	ProfitPerKm     *float64 `json:"profit_per_km,omitempty"`
	ProfitPerHour   *float64 `json:"profit_per_hour,omitempty"`
}

// ToJSON writes entries with their derived metrics to path. Rates that are
// unavailable for an entry are omitted from its object, not emitted as 0.
func ToJSON(entries []store.Entry, costPerKm float64, path string) error {
	out := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		CostPerKm:  costPerKm,
		Count:      len(entries),
	}

	for _, e := range entries {
		m := report.Compute(e, costPerKm)
		out.Entries = append(out.Entries, jsonEntry{
			ID:              e.ID,
			Date:            e.Date,
			TotalEarnings:   e.TotalEarnings,
			KmDriven:        e.KmDriven,
			HoursWorked:     e.HoursWorked,
			AdditionalCosts: e.AdditionalCosts,
			CarCost:         m.CarCost,
			NetProfit:       m.NetProfit,
			ProfitPerKm:     m.ProfitPerKm,
			ProfitPerHour:   m.ProfitPerHour,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
