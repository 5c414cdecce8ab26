package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/drivelog/internal/config"
	"github.com/sadopc/drivelog/internal/insight"
	"github.com/sadopc/drivelog/internal/report"
	"github.com/sadopc/drivelog/internal/store"
)

const insightDays = 30

type insightsModel struct {
	store  *store.Store
	cfg    config.Config
	width  int
	height int

	loading bool
	text    string
	err     error
}

func newInsightsModel(s *store.Store, cfg config.Config) insightsModel {
	return insightsModel{store: s, cfg: cfg}
}

func (m *insightsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m insightsModel) update(msg tea.Msg) (insightsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case insightMsg:
		m.loading = false
		m.text = msg.text
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Generate) && !m.loading {
			m.loading = true
			m.err = nil
			return m, m.generate()
		}
	}
	return m, nil
}

func (m insightsModel) generate() tea.Cmd {
	s := m.store
	cfg := m.cfg
	return func() tea.Msg {
		entries, err := s.ListEntries(store.EntryFilter{})
		if err != nil {
			return insightMsg{err: err}
		}
		recent := report.LastNDays(entries, insightDays, time.Now())
		if len(recent) == 0 {
			return insightMsg{text: "No entries in the last 30 days. Add some data first."}
		}

		cost := s.CostPerKm()
		summaries := report.GroupAndSum(recent, report.ByWeek, cost)
		stats := report.PeriodStatistics(recent, cost)
		digest := insight.BuildDigest(summaries, stats, cost, cfg.Currency)

		gen, err := insight.NewGenerator(cfg.AI.Provider, cfg.AI.Model)
		if err != nil {
			return insightMsg{err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
		defer cancel()

		text, err := insight.Summarize(ctx, gen, digest)
		if err != nil {
			return insightMsg{err: err}
		}
		return insightMsg{text: text}
	}
}

func (m insightsModel) view() string {
	w := m.width - 4
	title := titleStyle.Render("Insights")

	var body string
	switch {
	case m.loading:
		body = warningStyle.Render("Analyzing your last 30 days...")
	case m.err != nil:
		body = errorStyle.Render("Error: " + m.err.Error())
	case m.text != "":
		body = lipgloss.NewStyle().Width(w - 6).Render(m.text)
	default:
		body = mutedStyle.Render("Press g to generate an AI summary of your recent earnings.")
	}

	hint := mutedStyle.Render("  g: generate")

	return panelStyle.Width(w).Render(
		strings.Join([]string{title, "", body, "", hint}, "\n"),
	)
}
