package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/sadopc/drivelog/internal/export"
	"github.com/sadopc/drivelog/internal/report"
	"github.com/sadopc/drivelog/internal/store"
)

var (
	exportFormat string
	exportOut    string
	exportDays   int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export entries with derived metrics to CSV or JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportFormat != "csv" && exportFormat != "json" {
			return fmt.Errorf("unsupported format %q (use csv or json)", exportFormat)
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		entries, err := s.ListEntries(store.EntryFilter{})
		if err != nil {
			return err
		}
		if exportDays > 0 {
			entries = report.LastNDays(entries, exportDays, time.Now())
		}

		path := exportOut
		if path == "" {
			home, _ := os.UserHomeDir()
			path = filepath.Join(home, fmt.Sprintf("drivelog-export-%s.%s", time.Now().Format("2006-01-02"), exportFormat))
		}

		cost := s.CostPerKm()
		if exportFormat == "csv" {
			err = export.ToCSV(entries, cost, path)
		} else {
			err = export.ToJSON(entries, cost, path)
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", len(entries), path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "export format: csv or json")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file path")
	exportCmd.Flags().IntVar(&exportDays, "days", 0, "limit to the last N days (0 = all)")
}
