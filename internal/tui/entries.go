package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/drivelog/internal/config"
	"github.com/sadopc/drivelog/internal/report"
	"github.com/sadopc/drivelog/internal/store"
)

type entriesModel struct {
	store  *store.Store
	cfg    config.Config
	width  int
	height int

	entries []store.Entry
	cost    float64
	cursor  int

	formActive bool
	form       *huh.Form
	formType   string // "entry", "edit_entry", "purge"

	// Form field pointers (survive value copies)
	formDate     *string
	formEarnings *string
	formKm       *string
	formHours    *string
	formCosts    *string
	formDays     *string

	editingID int64
}

func newEntriesModel(s *store.Store, cfg config.Config) entriesModel {
	date, earnings, km, hours, costs, days := "", "", "", "", "", ""
	return entriesModel{
		store:        s,
		cfg:          cfg,
		formDate:     &date,
		formEarnings: &earnings,
		formKm:       &km,
		formHours:    &hours,
		formCosts:    &costs,
		formDays:     &days,
	}
}

func (e *entriesModel) setSize(w, h int) {
	e.width = w
	e.height = h
}

type entriesDataMsg struct {
	entries []store.Entry
	cost    float64
}

func (e entriesModel) refresh() tea.Cmd {
	return func() tea.Msg {
		entries, _ := e.store.ListEntries(store.EntryFilter{})
		return entriesDataMsg{entries: entries, cost: e.store.CostPerKm()}
	}
}

func (e entriesModel) update(msg tea.Msg) (entriesModel, tea.Cmd) {
	if e.formActive && e.form != nil {
		return e.updateForm(msg)
	}

	switch msg := msg.(type) {
	case entriesDataMsg:
		e.entries = msg.entries
		e.cost = msg.cost
		if e.cursor >= len(e.entries) {
			e.cursor = max(0, len(e.entries)-1)
		}
		return e, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if e.cursor > 0 {
				e.cursor--
			}
		case key.Matches(msg, keys.Down):
			if e.cursor < len(e.entries)-1 {
				e.cursor++
			}
		case key.Matches(msg, keys.New):
			return e.showEntryForm(nil)
		case key.Matches(msg, keys.Edit):
			if len(e.entries) > 0 {
				entry := e.entries[e.cursor]
				return e.showEntryForm(&entry)
			}
		case key.Matches(msg, keys.Delete):
			if len(e.entries) > 0 {
				entry := e.entries[e.cursor]
				return e, func() tea.Msg {
					if err := e.store.DeleteEntry(entry.ID); err != nil {
						return statusMsg{text: fmt.Sprintf("Delete error: %v", err), isError: true}
					}
					return entryDeletedMsg{}
				}
			}
		case key.Matches(msg, keys.Purge):
			return e.showPurgeForm()
		}
	}
	return e, nil
}

func (e entriesModel) showEntryForm(entry *store.Entry) (entriesModel, tea.Cmd) {
	if entry != nil {
		e.formType = "edit_entry"
		e.editingID = entry.ID
		*e.formDate = entry.Date
		*e.formEarnings = trimFloat(entry.TotalEarnings)
		*e.formKm = trimFloat(entry.KmDriven)
		*e.formHours = trimFloat(entry.HoursWorked)
		*e.formCosts = trimFloat(entry.AdditionalCosts)
	} else {
		e.formType = "entry"
		*e.formDate = time.Now().Format("2006-01-02")
		*e.formEarnings = ""
		*e.formKm = ""
		*e.formHours = ""
		*e.formCosts = ""
	}

	e.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Date (YYYY-MM-DD)").Value(e.formDate).
				Validate(func(s string) error {
					if _, ok := report.ParseDate(s); !ok {
						return fmt.Errorf("invalid date")
					}
					return nil
				}),
			huh.NewInput().Title("Total earnings").Value(e.formEarnings),
			huh.NewInput().Title("Km driven").Value(e.formKm),
			huh.NewInput().Title("Hours worked (blank if not tracked)").Value(e.formHours),
			huh.NewInput().Title("Additional costs").Value(e.formCosts),
		),
	).WithShowHelp(true).WithShowErrors(true)

	e.formActive = true
	return e, e.form.Init()
}

func (e entriesModel) showPurgeForm() (entriesModel, tea.Cmd) {
	*e.formDays = "90"
	e.formType = "purge"

	e.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Delete entries older than (days)").Value(e.formDays).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n <= 0 {
						return fmt.Errorf("enter a positive number of days")
					}
					return nil
				}),
		),
	).WithShowHelp(true).WithShowErrors(true)

	e.formActive = true
	return e, e.form.Init()
}

func (e entriesModel) updateForm(msg tea.Msg) (entriesModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			e.formActive = false
			e.form = nil
			return e, nil
		}
	}

	form, cmd := e.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		e.form = f
	}

	if e.form.State == huh.StateCompleted {
		e.formActive = false
		switch e.formType {
		case "entry", "edit_entry":
			return e, e.saveEntry()
		case "purge":
			return e, e.purgeOld()
		}
	}

	return e, cmd
}

func (e entriesModel) saveEntry() tea.Cmd {
	date := strings.TrimSpace(*e.formDate)
	earnings := parseAmount(*e.formEarnings)
	km := parseAmount(*e.formKm)
	hours := parseAmount(*e.formHours)
	costs := parseAmount(*e.formCosts)
	editing := e.formType == "edit_entry"
	id := e.editingID

	return func() tea.Msg {
		var err error
		if editing {
			_, err = e.store.UpdateEntry(id, date, earnings, km, hours, costs)
		} else {
			_, err = e.store.CreateEntry(date, earnings, km, hours, costs)
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Save error: %v", err), isError: true}
		}
		return entrySavedMsg{}
	}
}

func (e entriesModel) purgeOld() tea.Cmd {
	days, _ := strconv.Atoi(strings.TrimSpace(*e.formDays))
	return func() tea.Msg {
		cutoff := time.Now().AddDate(0, 0, -days).Format("2006-01-02")
		n, err := e.store.DeleteEntriesBefore(cutoff)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Purge error: %v", err), isError: true}
		}
		return purgeDoneMsg{removed: n}
	}
}

func (e entriesModel) view() string {
	if e.formActive && e.form != nil {
		title := titleStyle.Render("New Entry")
		switch e.formType {
		case "edit_entry":
			title = titleStyle.Render("Edit Entry")
		case "purge":
			title = titleStyle.Render("Purge Old Entries")
		}
		formView := e.form.View()
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", formView)
		return panelStyle.Width(e.width - 4).Render(content)
	}

	return e.renderList()
}

func (e entriesModel) renderList() string {
	w := e.width - 4
	title := titleStyle.Render("Entries")

	if len(e.entries) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No entries yet. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	cur := e.cfg.Currency
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-12s %10s %10s %8s %10s %10s %10s",
		"Date", "Earnings", "Km", "Hours", "Costs", "Profit", "Profit/h"))
	rows = append(rows, header)

	for i, entry := range e.entries {
		if len(e.entries) > 15 && (i < e.cursor-7 || i > e.cursor+7) {
			continue
		}
		m := report.Compute(entry, e.cost)
		cursor := "  "
		style := normalItemStyle
		if i == e.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		row := style.Render(fmt.Sprintf("%s%-12s %10s %10s %8s %10s %10s %10s",
			cursor,
			entry.Date,
			formatMoney(cur, entry.TotalEarnings),
			fmt.Sprintf("%.1f", entry.KmDriven),
			fmt.Sprintf("%.1f", entry.HoursWorked),
			formatMoney(cur, entry.AdditionalCosts),
			formatMoney(cur, m.NetProfit),
			formatRate(cur, m.ProfitPerHour),
		))
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: edit  d: delete  P: purge old  x: export"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
