package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/drivelog/internal/config"
	"github.com/sadopc/drivelog/internal/report"
	"github.com/sadopc/drivelog/internal/store"
)

type reportMode int

const (
	reportWeekly reportMode = iota
	reportMonthly
	reportDayOfWeek
)

var reportModeNames = []string{"Weekly", "Monthly", "Day of Week"}

const (
	weeklyBuckets    = 8
	monthlyBuckets   = 12
	dayOfWeekHistory = 90 // days
)

type reportsModel struct {
	store  *store.Store
	cfg    config.Config
	width  int
	height int

	mode    reportMode
	anchor  time.Time
	entries []store.Entry
	cost    float64

	visible   []report.BucketSummary
	dayOfWeek [7]report.BucketSummary

	chart barchart.Model
}

func newReportsModel(s *store.Store, cfg config.Config) reportsModel {
	return reportsModel{
		store:  s,
		cfg:    cfg,
		anchor: time.Now(),
		chart:  barchart.New(60, 12),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

type reportsDataMsg struct {
	entries []store.Entry
	cost    float64
}

func (r reportsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		entries, _ := r.store.ListEntries(store.EntryFilter{})
		return reportsDataMsg{entries: entries, cost: r.store.CostPerKm()}
	}
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsDataMsg:
		r.entries = msg.entries
		r.cost = msg.cost
		r.recompute()
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			if unit, ok := r.navUnit(); ok {
				r.anchor = report.ShiftWindow(r.anchor, unit, -1)
				r.recompute()
			}
			return r, nil
		case key.Matches(msg, keys.Right):
			if unit, ok := r.navUnit(); ok {
				r.anchor = report.ShiftWindow(r.anchor, unit, 1)
				r.recompute()
			}
			return r, nil
		case key.Matches(msg, keys.Switch):
			r.mode = (r.mode + 1) % 3
			r.anchor = time.Now()
			r.recompute()
			return r, nil
		}
	}
	return r, nil
}

// navUnit reports the calendar unit moved by left/right in the current mode.
// The day-of-week breakdown covers a fixed trailing window and does not
// navigate.
func (r reportsModel) navUnit() (report.Unit, bool) {
	switch r.mode {
	case reportWeekly:
		return report.UnitWeek, true
	case reportMonthly:
		return report.UnitMonth, true
	}
	return 0, false
}

func (r *reportsModel) recompute() {
	switch r.mode {
	case reportDayOfWeek:
		recent := report.LastNDays(r.entries, dayOfWeekHistory, time.Now())
		r.dayOfWeek = report.DayOfWeekBreakdown(recent, r.cost)
		r.visible = r.dayOfWeek[:]
	case reportMonthly:
		summaries := report.GroupAndSum(r.entries, report.ByMonth, r.cost)
		r.visible = trailingBuckets(summaries, report.MonthKey(startKey(r.anchor)), monthlyBuckets)
	default:
		summaries := report.GroupAndSum(r.entries, report.ByWeek, r.cost)
		r.visible = trailingBuckets(summaries, report.WeekKey(startKey(r.anchor)), weeklyBuckets)
	}
	r.buildChart()
}

func startKey(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// trailingBuckets keeps the last n summaries at or before the anchor key.
// Keys sort chronologically, so a simple cut suffices.
func trailingBuckets(summaries []report.BucketSummary, anchorKey string, n int) []report.BucketSummary {
	end := len(summaries)
	for end > 0 && summaries[end-1].Key > anchorKey {
		end--
	}
	start := end - n
	if start < 0 {
		start = 0
	}
	return summaries[start:end]
}

func (r *reportsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if r.height > 30 {
		chartHeight = 14
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, sum := range r.visible {
		value := sum.TotalProfit
		style := successStyle
		if value < 0 {
			// barchart cannot draw below the axis; show magnitude in red.
			value = -value
			style = errorStyle
		}
		bars = append(bars, barchart.BarData{
			Label: barLabel(r.mode, sum),
			Values: []barchart.BarValue{{
				Name:  sum.Key,
				Value: value,
				Style: style,
			}},
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func barLabel(mode reportMode, sum report.BucketSummary) string {
	switch mode {
	case reportDayOfWeek:
		return sum.Label[:3]
	case reportMonthly:
		return sum.Key[5:] // month number from YYYY-MM
	default:
		return "W" + sum.Key[6:] // week number from YYYY-SNN
	}
}

func (r reportsModel) view() string {
	w := r.width - 4

	var tabs []string
	for i, name := range reportModeNames {
		if reportMode(i) == r.mode {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	modeTabs := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Reports"), "  ", modeTabs, "  ", mutedStyle.Render(r.rangeLabel()),
	)

	chartView := r.chart.View()
	tableView := r.renderSummaryTable(w)

	nav := mutedStyle.Render("  ←/→: navigate  m: switch mode")
	if r.mode == reportDayOfWeek {
		nav = mutedStyle.Render("  m: switch mode")
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", tableView, "", nav,
		),
	)
}

func (r reportsModel) rangeLabel() string {
	switch r.mode {
	case reportDayOfWeek:
		return fmt.Sprintf("last %d days", dayOfWeekHistory)
	case reportMonthly:
		return "through " + r.anchor.Format("Jan 2006")
	default:
		return "through " + report.WeekLabel(report.WeekKey(startKey(r.anchor)))
	}
}

func (r reportsModel) renderSummaryTable(w int) string {
	if len(r.visible) == 0 {
		return mutedStyle.Render("  No data for this period")
	}

	cur := r.cfg.Currency
	var rows []string
	header := mutedStyle.Render(fmt.Sprintf("  %-16s %10s %10s %8s %8s %8s %10s",
		"Period", "Profit", "Earnings", "Hours", "Avg km", "Entries", "Profit/h"))
	rows = append(rows, header)
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 76))))

	for _, sum := range r.visible {
		rows = append(rows, fmt.Sprintf("  %-16s %10s %10s %8.1f %8.1f %8d %10s",
			sum.Label,
			profitStyle(sum.TotalProfit).Render(formatMoney(cur, sum.TotalProfit)),
			formatMoney(cur, sum.TotalEarnings),
			sum.TotalHours,
			sum.AvgKm,
			sum.EntryCount,
			formatMoney(cur, sum.ProfitPerHour),
		))
	}

	return strings.Join(rows, "\n")
}
