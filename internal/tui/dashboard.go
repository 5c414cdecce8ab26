package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/drivelog/internal/config"
	"github.com/sadopc/drivelog/internal/report"
	"github.com/sadopc/drivelog/internal/store"
)

type dashboardModel struct {
	store  *store.Store
	cfg    config.Config
	width  int
	height int

	weekStats  report.PeriodStats
	monthStats report.PeriodStats
	last30     report.PeriodStats
	best       *store.Entry
	worst      *store.Entry
	cost       float64
	recent     []store.Entry
}

func newDashboardModel(s *store.Store, cfg config.Config) dashboardModel {
	return dashboardModel{store: s, cfg: cfg}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type dashboardDataMsg struct {
	weekStats  report.PeriodStats
	monthStats report.PeriodStats
	last30     report.PeriodStats
	best       *store.Entry
	worst      *store.Entry
	cost       float64
	recent     []store.Entry
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		entries, _ := d.store.ListEntries(store.EntryFilter{})
		cost := d.store.CostPerKm()
		now := time.Now()

		week := report.InRange(entries, report.WeekContaining(now))
		month := report.InRange(entries, report.MonthContaining(now))
		last30 := report.LastNDays(entries, 30, now)
		best, worst := report.BestAndWorst(last30, cost)
		recent, _ := d.store.ListEntries(store.EntryFilter{Limit: 5})

		return dashboardDataMsg{
			weekStats:  report.PeriodStatistics(week, cost),
			monthStats: report.PeriodStatistics(month, cost),
			last30:     report.PeriodStatistics(last30, cost),
			best:       best,
			worst:      worst,
			cost:       cost,
			recent:     recent,
		}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.weekStats = msg.weekStats
		d.monthStats = msg.monthStats
		d.last30 = msg.last30
		d.best = msg.best
		d.worst = msg.worst
		d.cost = msg.cost
		d.recent = msg.recent
		return d, nil
	}
	return d, nil
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	statsPanel := d.renderStatsPanel(contentWidth)
	bestWorstPanel := d.renderBestWorstPanel(contentWidth)
	recentPanel := d.renderRecentPanel(contentWidth)

	return lipgloss.JoinVertical(lipgloss.Left, statsPanel, bestWorstPanel, recentPanel)
}

func (d dashboardModel) renderStatsPanel(w int) string {
	cur := d.cfg.Currency
	title := titleStyle.Render("Profit")

	rows := []string{
		title,
		"",
		fmt.Sprintf("  %-18s %s", "This week", profitStyle(d.weekStats.TotalProfit).Render(formatMoney(cur, d.weekStats.TotalProfit))),
		fmt.Sprintf("  %-18s %s", "This month", profitStyle(d.monthStats.TotalProfit).Render(formatMoney(cur, d.monthStats.TotalProfit))),
		fmt.Sprintf("  %-18s %s", "Last 30 days", profitStyle(d.last30.TotalProfit).Render(formatMoney(cur, d.last30.TotalProfit))),
		fmt.Sprintf("  %-18s %s", "Avg per entry", highlightStyle.Render(formatMoney(cur, d.last30.AverageProfitPerEntry))),
		"",
		mutedStyle.Render(fmt.Sprintf("  Vehicle cost: %s/km · %d entries in the last 30 days", formatMoney(cur, d.cost), d.last30.EntryCount)),
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderBestWorstPanel(w int) string {
	title := titleStyle.Render("Best / Worst Day (30d)")
	cur := d.cfg.Currency

	line := func(label string, e *store.Entry) string {
		if e == nil {
			return fmt.Sprintf("  %-8s %s", label, mutedStyle.Render("no data"))
		}
		m := report.Compute(*e, d.cost)
		return fmt.Sprintf("  %-8s %s  %s  %s",
			label,
			e.Date,
			profitStyle(m.NetProfit).Render(formatMoney(cur, m.NetProfit)),
			mutedStyle.Render(formatKm(e.KmDriven)),
		)
	}

	rows := []string{title, "", line("Best", d.best), line("Worst", d.worst)}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderRecentPanel(w int) string {
	title := titleStyle.Render("Recent Entries")
	if len(d.recent) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No entries yet. Press 2 then n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	cur := d.cfg.Currency
	var rows []string
	rows = append(rows, title)
	for _, e := range d.recent {
		m := report.Compute(e, d.cost)
		row := fmt.Sprintf("  %s  %-10s %-10s %-8s %s",
			e.Date,
			formatMoney(cur, e.TotalEarnings),
			formatKm(e.KmDriven),
			formatHours(e.HoursWorked),
			profitStyle(m.NetProfit).Render(formatMoney(cur, m.NetProfit)),
		)
		rows = append(rows, row)
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
