package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/drivelog/internal/config"
	"github.com/sadopc/drivelog/internal/report"
	"github.com/sadopc/drivelog/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestApp(t *testing.T) (App, *store.Store) {
	t.Helper()
	s := newTestStore(t)
	return NewApp(s, config.Default()), s
}

// ============================================================
// Helper functions
// ============================================================

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"  ", 0},
		{"12.5", 12.5},
		{"12,5", 12.5},
		{" 7 ", 7},
		{"abc", 0},
		{"-3", 0},
	}
	for _, tt := range tests {
		got := parseAmount(tt.in)
		if got != tt.want {
			t.Errorf("parseAmount(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	if got := formatMoney("R$", 12.345); got != "R$12.35" {
		t.Fatalf("formatMoney = %q", got)
	}
	if got := formatMoney("R$", -5); got != "R$-5.00" {
		t.Fatalf("formatMoney negative = %q", got)
	}
}

func TestFormatRate(t *testing.T) {
	if got := formatRate("R$", nil); got != "—" {
		t.Fatalf("nil rate = %q, want dash", got)
	}
	v := 16.25
	if got := formatRate("R$", &v); got != "R$16.25" {
		t.Fatalf("rate = %q", got)
	}
}

func TestFormatKmHours(t *testing.T) {
	if got := formatKm(123.45); got != "123.5 km" {
		t.Fatalf("formatKm = %q", got)
	}
	if got := formatHours(8); got != "8.0 h" {
		t.Fatalf("formatHours = %q", got)
	}
}

func TestTrimFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{12.5, "12.5"},
		{300, "300"},
	}
	for _, tt := range tests {
		if got := trimFloat(tt.in); got != tt.want {
			t.Errorf("trimFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// ============================================================
// View state
// ============================================================

func TestViewNames(t *testing.T) {
	if len(viewNames) != 5 {
		t.Fatalf("expected 5 view names, got %d", len(viewNames))
	}
	expected := []string{"Dashboard", "Entries", "Reports", "Insights", "Settings"}
	for i, name := range expected {
		if viewNames[i] != name {
			t.Fatalf("viewNames[%d] = %q, want %q", i, viewNames[i], name)
		}
	}
}

func TestViewStateConstants(t *testing.T) {
	if viewDashboard != 0 || viewEntries != 1 || viewReports != 2 || viewInsights != 3 || viewSettings != 4 {
		t.Fatal("view state constants out of order")
	}
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	app, _ := newTestApp(t)

	if app.activeView != viewDashboard {
		t.Fatal("default view should be dashboard")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if app.exportPicking {
		t.Fatal("export picker should be hidden by default")
	}
	if app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppViewStates(t *testing.T) {
	app, _ := newTestApp(t)
	app.width = 120
	app.height = 40

	views := []viewState{viewDashboard, viewEntries, viewReports, viewInsights, viewSettings}
	for _, v := range views {
		app.activeView = v
		output := app.View()
		if output == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppLoadingState(t *testing.T) {
	app, _ := newTestApp(t)
	if output := app.View(); output != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", output)
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	app, _ := newTestApp(t)
	app.width = 120
	app.height = 40

	header := app.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppStatusMessage(t *testing.T) {
	app, _ := newTestApp(t)
	app.width = 120
	app.height = 40
	app.status = "test status"

	if footer := app.renderFooter(); !strings.Contains(footer, "test status") {
		t.Fatal("footer should contain status message")
	}
}

func TestAppTabSwitching(t *testing.T) {
	app, _ := newTestApp(t)
	app.width = 120
	app.height = 40

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}})
	app = model.(App)
	if app.activeView != viewReports {
		t.Fatalf("expected reports view, got %d", app.activeView)
	}

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = model.(App)
	if app.activeView != viewInsights {
		t.Fatalf("tab should advance to insights, got %d", app.activeView)
	}
}

func TestAppEntrySavedRefreshes(t *testing.T) {
	app, _ := newTestApp(t)

	model, cmd := app.Update(entrySavedMsg{})
	app = model.(App)
	if app.status != "Entry saved" {
		t.Fatalf("status = %q", app.status)
	}
	if cmd == nil {
		t.Fatal("entry saved should trigger refresh commands")
	}
}

func TestAppExportPicker(t *testing.T) {
	app, _ := newTestApp(t)
	app.width = 120
	app.height = 40

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	app = model.(App)
	if !app.exportPicking {
		t.Fatal("x should open the export picker")
	}

	view := app.View()
	for _, f := range []string{"CSV", "JSON", "Backup"} {
		if !strings.Contains(view, f) {
			t.Fatalf("picker missing format %q", f)
		}
	}

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = model.(App)
	if app.exportPicking {
		t.Fatal("esc should close the export picker")
	}
}

// ============================================================
// Entries model
// ============================================================

func TestEntriesRefresh(t *testing.T) {
	s := newTestStore(t)
	s.CreateEntry("2024-03-01", 300, 200, 8, 20)
	s.SetCostPerKm(0.75)

	e := newEntriesModel(s, config.Default())
	msg := e.refresh()()
	data, ok := msg.(entriesDataMsg)
	if !ok {
		t.Fatalf("expected entriesDataMsg, got %T", msg)
	}
	if len(data.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(data.entries))
	}
	if data.cost != 0.75 {
		t.Fatalf("cost = %v", data.cost)
	}

	e, _ = e.update(data)
	if len(e.entries) != 1 {
		t.Fatal("data msg should populate entries")
	}
}

func TestEntriesCursorClamped(t *testing.T) {
	s := newTestStore(t)
	e := newEntriesModel(s, config.Default())
	e.cursor = 5

	e, _ = e.update(entriesDataMsg{entries: nil, cost: 0.5})
	if e.cursor != 0 {
		t.Fatalf("cursor should clamp to 0, got %d", e.cursor)
	}
}

func TestEntriesDelete(t *testing.T) {
	s := newTestStore(t)
	entry, _ := s.CreateEntry("2024-03-01", 300, 200, 8, 20)

	e := newEntriesModel(s, config.Default())
	e.entries = []store.Entry{*entry}

	e, cmd := e.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	if cmd == nil {
		t.Fatal("delete should return a command")
	}
	if _, ok := cmd().(entryDeletedMsg); !ok {
		t.Fatal("expected entryDeletedMsg")
	}

	remaining, _ := s.ListEntries(store.EntryFilter{})
	if len(remaining) != 0 {
		t.Fatal("entry should be deleted from the store")
	}
}

func TestEntriesSave(t *testing.T) {
	s := newTestStore(t)
	e := newEntriesModel(s, config.Default())
	*e.formDate = "2024-03-05"
	*e.formEarnings = "250"
	*e.formKm = "180"
	*e.formHours = ""
	*e.formCosts = "15,5"
	e.formType = "entry"

	if _, ok := e.saveEntry()().(entrySavedMsg); !ok {
		t.Fatal("expected entrySavedMsg")
	}

	entries, _ := s.ListEntries(store.EntryFilter{})
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	got := entries[0]
	if got.Date != "2024-03-05" || got.TotalEarnings != 250 || got.HoursWorked != 0 || got.AdditionalCosts != 15.5 {
		t.Fatalf("saved entry mismatch: %+v", got)
	}
}

func TestEntriesPurge(t *testing.T) {
	s := newTestStore(t)
	old := time.Now().AddDate(0, 0, -200).Format("2006-01-02")
	s.CreateEntry(old, 100, 50, 4, 0)
	s.CreateEntry(time.Now().Format("2006-01-02"), 300, 200, 8, 20)

	e := newEntriesModel(s, config.Default())
	*e.formDays = "90"

	msg := e.purgeOld()()
	done, ok := msg.(purgeDoneMsg)
	if !ok {
		t.Fatalf("expected purgeDoneMsg, got %T", msg)
	}
	if done.removed != 1 {
		t.Fatalf("expected 1 purged, got %d", done.removed)
	}

	remaining, _ := s.ListEntries(store.EntryFilter{})
	if len(remaining) != 1 {
		t.Fatal("recent entry should survive the purge")
	}
}

// ============================================================
// Dashboard model
// ============================================================

func TestDashboardLoadData(t *testing.T) {
	s := newTestStore(t)
	s.SetCostPerKm(0.75)
	today := time.Now().Format("2006-01-02")
	s.CreateEntry(today, 300, 200, 8, 20)

	d := newDashboardModel(s, config.Default())
	msg := d.loadData()()
	data, ok := msg.(dashboardDataMsg)
	if !ok {
		t.Fatalf("expected dashboardDataMsg, got %T", msg)
	}
	if data.last30.EntryCount != 1 {
		t.Fatalf("last30 count = %d", data.last30.EntryCount)
	}
	if data.last30.TotalProfit != 130 {
		t.Fatalf("last30 profit = %v", data.last30.TotalProfit)
	}
	if data.best == nil || data.best.Date != today {
		t.Fatal("best entry should be today's")
	}

	d, _ = d.update(data)
	d.setSize(120, 40)
	if view := d.view(); !strings.Contains(view, "Recent Entries") {
		t.Fatal("dashboard view missing recent panel")
	}
}

// ============================================================
// Reports model
// ============================================================

func seedReportEntries(t *testing.T, s *store.Store) {
	t.Helper()
	now := time.Now()
	for i := 0; i < 4; i++ {
		date := now.AddDate(0, 0, -7*i).Format("2006-01-02")
		if _, err := s.CreateEntry(date, 300, 200, 8, 20); err != nil {
			t.Fatalf("seed entry: %v", err)
		}
	}
}

func TestReportsRefreshAndRecompute(t *testing.T) {
	s := newTestStore(t)
	s.SetCostPerKm(0.75)
	seedReportEntries(t, s)

	r := newReportsModel(s, config.Default())
	r.setSize(120, 40)

	msg := r.refresh()()
	data, ok := msg.(reportsDataMsg)
	if !ok {
		t.Fatalf("expected reportsDataMsg, got %T", msg)
	}
	r, _ = r.update(data)

	if len(r.visible) != 4 {
		t.Fatalf("expected 4 weekly buckets, got %d", len(r.visible))
	}
	for _, sum := range r.visible {
		if sum.TotalProfit != 130 {
			t.Fatalf("bucket profit = %v, want 130", sum.TotalProfit)
		}
	}
}

func TestReportsModeSwitch(t *testing.T) {
	s := newTestStore(t)
	seedReportEntries(t, s)

	r := newReportsModel(s, config.Default())
	r.setSize(120, 40)
	r, _ = r.update(reportsDataMsg{cost: 0.5})

	r, _ = r.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	if r.mode != reportMonthly {
		t.Fatalf("expected monthly mode, got %d", r.mode)
	}
	r, _ = r.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	if r.mode != reportDayOfWeek {
		t.Fatalf("expected day-of-week mode, got %d", r.mode)
	}
	if len(r.visible) != 7 {
		t.Fatalf("day-of-week mode should show 7 buckets, got %d", len(r.visible))
	}
	r, _ = r.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	if r.mode != reportWeekly {
		t.Fatal("mode should cycle back to weekly")
	}
}

func TestReportsNavigation(t *testing.T) {
	s := newTestStore(t)
	r := newReportsModel(s, config.Default())
	r.setSize(120, 40)
	anchor := r.anchor

	r, _ = r.update(tea.KeyMsg{Type: tea.KeyLeft})
	if !r.anchor.Before(anchor) {
		t.Fatal("left should move the anchor back")
	}

	r.mode = reportDayOfWeek
	before := r.anchor
	r, _ = r.update(tea.KeyMsg{Type: tea.KeyLeft})
	if !r.anchor.Equal(before) {
		t.Fatal("day-of-week mode should not navigate")
	}
}

func TestTrailingBuckets(t *testing.T) {
	summaries := []report.BucketSummary{
		{Key: "2024-01"}, {Key: "2024-02"}, {Key: "2024-03"}, {Key: "2024-04"},
	}

	got := trailingBuckets(summaries, "2024-03", 2)
	if len(got) != 2 || got[0].Key != "2024-02" || got[1].Key != "2024-03" {
		t.Fatalf("trailingBuckets = %+v", got)
	}

	got = trailingBuckets(summaries, "2023-12", 2)
	if len(got) != 0 {
		t.Fatalf("anchor before all data should be empty, got %+v", got)
	}

	got = trailingBuckets(summaries, "2024-12", 10)
	if len(got) != 4 {
		t.Fatalf("want all 4 buckets, got %d", len(got))
	}
}

func TestBarLabel(t *testing.T) {
	if got := barLabel(reportWeekly, report.BucketSummary{Key: "2024-S09"}); got != "W09" {
		t.Fatalf("weekly label = %q", got)
	}
	if got := barLabel(reportMonthly, report.BucketSummary{Key: "2024-03"}); got != "03" {
		t.Fatalf("monthly label = %q", got)
	}
	if got := barLabel(reportDayOfWeek, report.BucketSummary{Label: "Sunday"}); got != "Sun" {
		t.Fatalf("day-of-week label = %q", got)
	}
}

// ============================================================
// Settings model
// ============================================================

func TestSettingsRefresh(t *testing.T) {
	s := newTestStore(t)
	m := newSettingsModel(s)

	msg := m.refresh()()
	data, ok := msg.(settingsDataMsg)
	if !ok {
		t.Fatalf("expected settingsDataMsg, got %T", msg)
	}
	if data.cost != 0.50 {
		t.Fatalf("default cost = %v", data.cost)
	}
	if data.retentionDays != 0 {
		t.Fatalf("default retention = %d", data.retentionDays)
	}
}

func TestSettingsSaveCost(t *testing.T) {
	s := newTestStore(t)
	m := newSettingsModel(s)
	m.editingKey = "cost_per_km"
	*m.formValue = "0,85"

	if _, ok := m.save()().(settingSavedMsg); !ok {
		t.Fatal("expected settingSavedMsg")
	}
	if got := s.CostPerKm(); got != 0.85 {
		t.Fatalf("cost = %v, want 0.85", got)
	}
}

func TestSettingsSaveRetention(t *testing.T) {
	s := newTestStore(t)
	m := newSettingsModel(s)
	m.editingKey = "retention_days"
	*m.formValue = "120"

	if _, ok := m.save()().(settingSavedMsg); !ok {
		t.Fatal("expected settingSavedMsg")
	}
	v, err := s.GetSetting("retention_days")
	if err != nil || v != "120" {
		t.Fatalf("retention_days = %q, err %v", v, err)
	}
}

// ============================================================
// Insights model
// ============================================================

func TestInsightsGenerateWithMock(t *testing.T) {
	t.Setenv("DRIVELOG_AI_PROVIDER", "mock")

	s := newTestStore(t)
	s.SetCostPerKm(0.75)
	s.CreateEntry(time.Now().Format("2006-01-02"), 300, 200, 8, 20)

	m := newInsightsModel(s, config.Default())
	msg := m.generate()()
	res, ok := msg.(insightMsg)
	if !ok {
		t.Fatalf("expected insightMsg, got %T", msg)
	}
	if res.err != nil {
		t.Fatalf("generate: %v", res.err)
	}
	if !strings.Contains(res.text, "Total net profit: R$130.00") {
		t.Fatalf("insight text missing digest numbers: %q", res.text)
	}
}

func TestInsightsGenerateNoEntries(t *testing.T) {
	t.Setenv("DRIVELOG_AI_PROVIDER", "mock")

	s := newTestStore(t)
	m := newInsightsModel(s, config.Default())

	msg := m.generate()()
	res := msg.(insightMsg)
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}
	if !strings.Contains(res.text, "No entries") {
		t.Fatalf("expected empty-state message, got %q", res.text)
	}
}

func TestInsightsKeyTriggersLoading(t *testing.T) {
	t.Setenv("DRIVELOG_AI_PROVIDER", "mock")

	s := newTestStore(t)
	m := newInsightsModel(s, config.Default())

	m, cmd := m.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	if !m.loading {
		t.Fatal("g should set loading")
	}
	if cmd == nil {
		t.Fatal("g should return a generate command")
	}

	m, _ = m.update(insightMsg{text: "done"})
	if m.loading {
		t.Fatal("insight msg should clear loading")
	}
	if m.text != "done" {
		t.Fatalf("text = %q", m.text)
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}
