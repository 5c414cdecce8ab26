package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/sadopc/drivelog/internal/export"
	"github.com/sadopc/drivelog/internal/store"
)

var backupCmd = &cobra.Command{
	Use:   "backup [path]",
	Short: "Write a full snapshot (entries + cost setting) to a JSON file",
	Args:  cobra.MaximumNArgs(1),
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

		path := ""
		if len(args) == 1 {
			path = args[0]
		} else {
			home, _ := os.UserHomeDir()
			path = filepath.Join(home, fmt.Sprintf("drivelog-backup-%s.json", time.Now().Format("2006-01-02")))
		}

		b, err := export.WriteBackup(entries, s.CostPerKm(), path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Backup %s: %d entries written to %s\n", b.ID, len(b.Entries), path)
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <path>",
	Short: "Replace all entries and the cost setting from a backup file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := export.ReadBackup(args[0])
		if err != nil {
			return err
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := export.Restore(s, b); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored %d entries from backup %s\n", len(b.Entries), b.ID)
		return nil
	},
}
