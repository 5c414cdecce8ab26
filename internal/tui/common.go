package tui

import (
	"fmt"
	"strconv"
	"strings"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewEntries
	viewReports
	viewInsights
	viewSettings
)

var viewNames = []string{"Dashboard", "Entries", "Reports", "Insights", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type entrySavedMsg struct{}

type settingSavedMsg struct{}

type entryDeletedMsg struct{}

type purgeDoneMsg struct {
	removed int64
}

type exportDoneMsg struct {
	path string
}

type insightMsg struct {
	text string
	err  error
}

// --- Helpers ---

func formatMoney(currency string, v float64) string {
	return fmt.Sprintf("%s%.2f", currency, v)
}

// formatRate renders an entry-level rate; absent rates render as a dash, not
// as zero.
func formatRate(currency string, v *float64) string {
	if v == nil {
		return "—"
	}
	return formatMoney(currency, *v)
}

func formatKm(v float64) string {
	return fmt.Sprintf("%.1f km", v)
}

func formatHours(v float64) string {
	return fmt.Sprintf("%.1f h", v)
}

// parseAmount implements the form contract: a blank numeric field means
// zero. Comma decimal separators are accepted.
func parseAmount(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
