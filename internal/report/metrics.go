package report

import (
	"math"

	"github.com/sadopc/drivelog/internal/store"
)

// Metrics are the derived profitability figures for a single entry.
// ProfitPerKm and ProfitPerHour are nil when the corresponding denominator
// is zero: "unavailable" is distinct from zero and the UI branches on it.
type Metrics struct {
	CarCost          float64
	NetProfit        float64
	GrossProfitPerKm float64
	ProfitPerKm      *float64
	ProfitPerHour    *float64
}

// Compute derives Metrics for one entry. It never fails: non-finite or
// negative numeric inputs are coerced to 0 before computation, matching the
// "blank field means zero" contract of the entry form.
func Compute(e store.Entry, costPerKm float64) Metrics {
	earnings := sanitize(e.TotalEarnings)
	km := sanitize(e.KmDriven)
	hours := sanitize(e.HoursWorked)
	costs := sanitize(e.AdditionalCosts)
	perKm := sanitize(costPerKm)

	m := Metrics{}
	m.CarCost = km * perKm
	m.NetProfit = earnings - m.CarCost - costs

	if km > 0 {
		v := m.NetProfit / km
		m.ProfitPerKm = &v
		m.GrossProfitPerKm = earnings / km
	}
	if hours > 0 {
		v := m.NetProfit / hours
		m.ProfitPerHour = &v
	}
	return m
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
