package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/sadopc/drivelog/internal/report"
	"github.com/sadopc/drivelog/internal/store"
)

// ToCSV writes entries with their derived metrics to path. Unavailable
// entry-level rates (zero km or untracked hours) render as empty cells.
func ToCSV(entries []store.Entry, costPerKm float64, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"ID", "Date", "Earnings", "Km", "Hours", "Additional Costs", "Car Cost", "Net Profit", "Profit/Km", "Profit/Hour"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, e := range entries {
		m := report.Compute(e, costPerKm)
		row := []string{
			strconv.FormatInt(e.ID, 10),
			e.Date,
			money(e.TotalEarnings),
			money(e.KmDriven),
			money(e.HoursWorked),
			money(e.AdditionalCosts),
			money(m.CarCost),
			money(m.NetProfit),
			rate(m.ProfitPerKm),
			rate(m.ProfitPerHour),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func rate(v *float64) string {
	if v == nil {
		return ""
	}
	return money(*v)
}
