package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/drivelog/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	cost          float64
	retentionDays int
	cursor        int

	formActive bool
	form       *huh.Form
	formValue  *string
	editingKey string
}

func newSettingsModel(s *store.Store) settingsModel {
	value := ""
	return settingsModel{store: s, formValue: &value}
}

func (m *settingsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type settingsDataMsg struct {
	cost          float64
	retentionDays int
}

func (m settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		days := 0
		if v, err := m.store.GetSetting("retention_days"); err == nil {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				days = n
			}
		}
		return settingsDataMsg{cost: m.store.CostPerKm(), retentionDays: days}
	}
}

func (m settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		m.cost = msg.cost
		m.retentionDays = msg.retentionDays
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < 1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return m.showForm()
		}
	}
	return m, nil
}

func (m settingsModel) showForm() (settingsModel, tea.Cmd) {
	var title string
	if m.cursor == 0 {
		m.editingKey = "cost_per_km"
		title = "Vehicle cost per km"
		*m.formValue = strconv.FormatFloat(m.cost, 'f', -1, 64)
	} else {
		m.editingKey = "retention_days"
		title = "Retention days (0 = keep forever)"
		*m.formValue = strconv.Itoa(m.retentionDays)
	}

	editingKey := m.editingKey
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title(title).Value(m.formValue).
				Validate(func(s string) error {
					s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
					v, err := strconv.ParseFloat(s, 64)
					if err != nil || v < 0 {
						return fmt.Errorf("enter a non-negative number")
					}
					if editingKey == "retention_days" && v != float64(int(v)) {
						return fmt.Errorf("enter a whole number of days")
					}
					return nil
				}),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		return m, m.save()
	}

	return m, cmd
}

func (m settingsModel) save() tea.Cmd {
	editingKey := m.editingKey
	raw := strings.TrimSpace(strings.ReplaceAll(*m.formValue, ",", "."))

	return func() tea.Msg {
		var err error
		if editingKey == "cost_per_km" {
			v, _ := strconv.ParseFloat(raw, 64)
			err = m.store.SetCostPerKm(v)
		} else {
			v, _ := strconv.ParseFloat(raw, 64)
			err = m.store.SetSetting("retention_days", strconv.Itoa(int(v)))
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Save error: %v", err), isError: true}
		}
		return settingSavedMsg{}
	}
}

func (m settingsModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Edit Setting"), "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Settings")

	retention := "keep forever"
	if m.retentionDays > 0 {
		retention = fmt.Sprintf("%d days", m.retentionDays)
	}

	items := []struct {
		label string
		value string
	}{
		{"Vehicle cost per km", fmt.Sprintf("%.2f", m.cost)},
		{"Retention", retention},
	}

	var rows []string
	rows = append(rows, title, "")
	for i, it := range items {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-24s %s", cursor, it.label, it.value)))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: edit"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
