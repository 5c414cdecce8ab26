// Package cli wires the cobra command tree: the bare command launches the
// TUI, subcommands cover export, backup/restore and one-shot AI insights.
package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sadopc/drivelog/internal/config"
	"github.com/sadopc/drivelog/internal/store"
	"github.com/sadopc/drivelog/internal/tui"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "drivelog",
	Short: "Earnings tracker for app-based drivers",
	Long: `drivelog records daily earnings, distance, hours and costs, and turns
them into profitability reports (net profit, profit per km, profit per hour)
grouped by week, month, year and day of week.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		cfg := loadConfig()
		app := tui.NewApp(s, cfg)
		p := tea.NewProgram(app, tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the database file (default ~/.config/drivelog/drivelog.db)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(insightCmd)
}

func openStore() (*store.Store, error) {
	path := dbPath
	if path == "" {
		var err error
		path, err = store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve db path: %w", err)
		}
	}
	return store.New(path)
}

func loadConfig() config.Config {
	path, err := config.DefaultPath()
	if err != nil {
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Default()
	}
	return cfg
}
