package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sadopc/drivelog/internal/insight"
	"github.com/sadopc/drivelog/internal/report"
	"github.com/sadopc/drivelog/internal/store"
)

var insightDays int

var insightCmd = &cobra.Command{
	Use:   "insight",
	Short: "Print an AI-generated summary of recent profitability",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		entries, err := s.ListEntries(store.EntryFilter{})
		if err != nil {
			return err
		}
		entries = report.LastNDays(entries, insightDays, time.Now())
		if len(entries) == 0 {
			return fmt.Errorf("no entries in the last %d days", insightDays)
		}

		cfg := loadConfig()
		gen, err := insight.NewGenerator(cfg.AI.Provider, cfg.AI.Model)
		if err != nil {
			return err
		}

		cost := s.CostPerKm()
		summaries := report.GroupAndSum(entries, report.ByWeek, cost)
		stats := report.PeriodStatistics(entries, cost)
		digest := insight.BuildDigest(summaries, stats, cost, cfg.Currency)

		text, err := insight.Summarize(cmd.Context(), gen, digest)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	insightCmd.Flags().IntVar(&insightDays, "days", 30, "window size in days")
}
