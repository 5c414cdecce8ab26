package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/drivelog/internal/store"
)

func seedDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "drivelog.db")
	s, err := store.New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	s.SetCostPerKm(0.75)
	if _, err := s.CreateEntry(time.Now().UTC().Format("2006-01-02"), 300, 200, 8, 20); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateEntry("2024-01-08", 100, 50, 0, 0); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestExportCommandCSV(t *testing.T) {
	db := seedDB(t)
	out := filepath.Join(t.TempDir(), "out.csv")

	output, err := runCommand(t, "--db", db, "export", "--format", "csv", "--out", out)
	if err != nil {
		t.Fatalf("export failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Exported 2 entries") {
		t.Fatalf("unexpected output: %s", output)
	}
}

func TestExportCommandBadFormat(t *testing.T) {
	db := seedDB(t)
	if _, err := runCommand(t, "--db", db, "export", "--format", "xml"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
	// Reset for later tests.
	exportFormat = "csv"
}

func TestBackupAndRestoreCommands(t *testing.T) {
	db := seedDB(t)
	backupPath := filepath.Join(t.TempDir(), "backup.json")

	output, err := runCommand(t, "--db", db, "backup", backupPath)
	if err != nil {
		t.Fatalf("backup failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "2 entries written") {
		t.Fatalf("unexpected backup output: %s", output)
	}

	// Restore into a fresh database.
	freshDB := filepath.Join(t.TempDir(), "fresh.db")
	output, err = runCommand(t, "--db", freshDB, "restore", backupPath)
	if err != nil {
		t.Fatalf("restore failed: %v\n%s", err, output)
	}

	s, err := store.New(freshDB)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	entries, _ := s.ListEntries(store.EntryFilter{})
	if len(entries) != 2 {
		t.Fatalf("expected 2 restored entries, got %d", len(entries))
	}
	if got := s.CostPerKm(); got != 0.75 {
		t.Fatalf("restored cost = %v", got)
	}
}

func TestRestoreCommandRejectsGarbage(t *testing.T) {
	db := seedDB(t)
	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := runCommand(t, "--db", db, "restore", bad); err == nil {
		t.Fatal("expected error restoring malformed backup")
	}
}

func TestInsightCommandWithMockProvider(t *testing.T) {
	t.Setenv("DRIVELOG_AI_PROVIDER", "mock")
	db := seedDB(t)

	output, err := runCommand(t, "--db", db, "insight", "--days", "30")
	if err != nil {
		t.Fatalf("insight failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Total net profit") {
		t.Fatalf("mock insight should echo the digest, got: %s", output)
	}
}

func TestInsightCommandNoEntries(t *testing.T) {
	t.Setenv("DRIVELOG_AI_PROVIDER", "mock")
	path := filepath.Join(t.TempDir(), "empty.db")
	s, err := store.New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	if _, err := runCommand(t, "--db", path, "insight", "--days", "7"); err == nil {
		t.Fatal("expected error with no entries in window")
	}
}
