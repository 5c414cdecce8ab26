package report

import (
	"math"
	"testing"

	"github.com/sadopc/drivelog/internal/store"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestComputeFullEntry(t *testing.T) {
	e := store.Entry{Date: "2024-01-01", TotalEarnings: 300, KmDriven: 200, HoursWorked: 8, AdditionalCosts: 20}
	m := Compute(e, 0.75)

	if !almostEqual(m.CarCost, 150) {
		t.Fatalf("CarCost = %v, want 150", m.CarCost)
	}
	if !almostEqual(m.NetProfit, 130) {
		t.Fatalf("NetProfit = %v, want 130", m.NetProfit)
	}
	if m.ProfitPerKm == nil || !almostEqual(*m.ProfitPerKm, 0.65) {
		t.Fatalf("ProfitPerKm = %v, want 0.65", m.ProfitPerKm)
	}
	if m.ProfitPerHour == nil || !almostEqual(*m.ProfitPerHour, 16.25) {
		t.Fatalf("ProfitPerHour = %v, want 16.25", m.ProfitPerHour)
	}
	if !almostEqual(m.GrossProfitPerKm, 1.5) {
		t.Fatalf("GrossProfitPerKm = %v, want 1.5", m.GrossProfitPerKm)
	}
}

func TestComputeUntrackedHours(t *testing.T) {
	e := store.Entry{Date: "2024-01-08", TotalEarnings: 100, KmDriven: 50, HoursWorked: 0}
	m := Compute(e, 0.75)

	if !almostEqual(m.CarCost, 37.5) {
		t.Fatalf("CarCost = %v, want 37.5", m.CarCost)
	}
	if !almostEqual(m.NetProfit, 62.5) {
		t.Fatalf("NetProfit = %v, want 62.5", m.NetProfit)
	}
	if m.ProfitPerKm == nil || !almostEqual(*m.ProfitPerKm, 1.25) {
		t.Fatalf("ProfitPerKm = %v, want 1.25", m.ProfitPerKm)
	}
	// Hours untracked: the per-hour rate is absent, not zero.
	if m.ProfitPerHour != nil {
		t.Fatalf("ProfitPerHour = %v, want nil", *m.ProfitPerHour)
	}
}

func TestComputeZeroKm(t *testing.T) {
	e := store.Entry{Date: "2024-01-01", TotalEarnings: 50, KmDriven: 0, HoursWorked: 2}
	m := Compute(e, 0.75)

	if m.ProfitPerKm != nil {
		t.Fatalf("ProfitPerKm = %v, want nil", *m.ProfitPerKm)
	}
	if m.GrossProfitPerKm != 0 {
		t.Fatalf("GrossProfitPerKm = %v, want 0", m.GrossProfitPerKm)
	}
	if m.ProfitPerHour == nil || !almostEqual(*m.ProfitPerHour, 25) {
		t.Fatalf("ProfitPerHour = %v, want 25", m.ProfitPerHour)
	}
}

func TestComputeNetProfitIdentity(t *testing.T) {
	cases := []store.Entry{
		{TotalEarnings: 123.45, KmDriven: 67.8, HoursWorked: 5.5, AdditionalCosts: 9.99},
		{TotalEarnings: 0, KmDriven: 0, HoursWorked: 0, AdditionalCosts: 0},
		{TotalEarnings: 1000, KmDriven: 1, HoursWorked: 0.25, AdditionalCosts: 999},
	}
	for _, e := range cases {
		m := Compute(e, 0.62)
		want := e.TotalEarnings - e.KmDriven*0.62 - e.AdditionalCosts
		if !almostEqual(m.NetProfit, want) {
			t.Fatalf("NetProfit = %v, want %v for %+v", m.NetProfit, want, e)
		}
	}
}

func TestComputeSanitizesBadInput(t *testing.T) {
	e := store.Entry{
		TotalEarnings:   math.NaN(),
		KmDriven:        math.Inf(1),
		HoursWorked:     -3,
		AdditionalCosts: math.Inf(-1),
	}
	m := Compute(e, -0.5)

	if m.CarCost != 0 || m.NetProfit != 0 || m.GrossProfitPerKm != 0 {
		t.Fatalf("expected all-zero metrics, got %+v", m)
	}
	if m.ProfitPerKm != nil || m.ProfitPerHour != nil {
		t.Fatal("rates should be unavailable for sanitized-to-zero denominators")
	}
	if math.IsNaN(m.NetProfit) || math.IsInf(m.NetProfit, 0) {
		t.Fatal("NaN/Inf leaked into NetProfit")
	}
}

func TestComputeNegativeProfitAllowed(t *testing.T) {
	// Negative results are legitimate; only negative inputs are coerced.
	e := store.Entry{TotalEarnings: 10, KmDriven: 100, HoursWorked: 4, AdditionalCosts: 5}
	m := Compute(e, 0.75)
	if !almostEqual(m.NetProfit, 10-75-5) {
		t.Fatalf("NetProfit = %v, want -70", m.NetProfit)
	}
}
