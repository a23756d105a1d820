package settings

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/prodbar/internal/catalog"
	"github.com/ytget/prodbar/internal/config"
	barerrors "github.com/ytget/prodbar/internal/errors"
	"github.com/ytget/prodbar/internal/kvstore"
	"github.com/ytget/prodbar/internal/model"
	"github.com/ytget/prodbar/internal/render"
	"github.com/ytget/prodbar/internal/selection"
)

type barView struct {
	headers     []string
	rows        []render.RowDescriptor
	cells       map[render.CellKey]string
	headerCalls int
	rowCalls    int
	cellCalls   int
}

func (v *barView) SetHeaders(h []string) {
	v.headers = h
	v.headerCalls++
}

func (v *barView) SetRows(r []render.RowDescriptor) {
	v.rows = r
	v.rowCalls++
}

func (v *barView) SetCells(cells map[render.CellKey]string) {
	v.cellCalls++
	if v.cells == nil {
		v.cells = make(map[render.CellKey]string)
	}
	for k, text := range cells {
		v.cells[k] = text
	}
}

func (v *barView) ContentSize() model.Size { return model.Size{Width: 640, Height: 80} }

type settingsView struct {
	shown   []ViewModel
	updates []ViewModel
	hidden  int
}

func (v *settingsView) ShowSettings(vm ViewModel)   { v.shown = append(v.shown, vm) }
func (v *settingsView) UpdateSettings(vm ViewModel) { v.updates = append(v.updates, vm) }
func (v *settingsView) HideSettings()               { v.hidden++ }

type notices struct {
	got []Notice
}

func (n *notices) Notify(notice Notice) { n.got = append(n.got, notice) }

type refresher struct {
	calls int
	next  model.MetricsSnapshot
	sink  func(model.MetricsSnapshot)
}

func (r *refresher) RefreshNow() model.MetricsSnapshot {
	r.calls++
	if r.sink != nil {
		r.sink(r.next)
	}
	return r.next
}

type fixture struct {
	storage    *kvstore.Memory
	store      *selection.Store
	bar        *barView
	view       *settingsView
	notices    *notices
	refresher  *refresher
	appearance []Appearance
	c          *Controller
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		storage:   kvstore.NewMemory(),
		bar:       &barView{},
		view:      &settingsView{},
		notices:   &notices{},
		refresher: &refresher{},
	}
	cat := catalog.New()
	f.store = selection.NewStore(f.storage, cat, nil)
	f.c = NewController(Deps{
		Catalog:      cat,
		Store:        f.store,
		Preferences:  config.NewPreferences(f.storage, nil),
		Coordinator:  render.NewCoordinator(cat, f.bar, nil, render.DefaultOptions()),
		View:         f.view,
		Notifier:     f.notices,
		OnAppearance: func(a Appearance) { f.appearance = append(f.appearance, a) },
	})
	f.c.SetRefresher(f.refresher)
	f.c.Start()
	return f
}

func snapshot(id string, rows ...model.QueueMetrics) model.MetricsSnapshot {
	return model.MetricsSnapshot{ID: id, Rows: rows}
}

func waiting(q model.QueueID, n float64) model.QueueMetrics {
	return model.QueueMetrics{Queue: q, Values: map[string]float64{"oWaiting": n, "avgWait": 30}}
}

func TestStartRendersSelection(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, []string{"QUEUE", "WAITING", "AVG WAIT", "AHT", "ABANDON %"}, f.bar.headers)
	assert.Len(t, f.bar.rows, 5)
	require.Len(t, f.appearance, 1)
	assert.Equal(t, Appearance{Theme: model.ThemeDark, FontSize: model.FontNormal}, f.appearance[0])
}

func TestToggleQueue_RemoveRendersRowsOnly(t *testing.T) {
	f := newFixture(t)
	f.c.OnSnapshot(snapshot("s1", waiting("Support", 3)))
	headerCalls := f.bar.headerCalls

	require.NoError(t, f.c.ToggleQueue("Overflow", false))

	assert.Equal(t, headerCalls, f.bar.headerCalls, "queue changes leave headers alone")
	assert.Len(t, f.bar.rows, 4)
	assert.Equal(t, 1, f.refresher.calls)
	assert.Empty(t, f.notices.got)
}

func TestToggleQueue_AddRequestsRefresh(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.c.ToggleQueue("Overflow", false))
	f.refresher.sink = f.c.OnSnapshot
	f.refresher.next = snapshot("s2", waiting("Billing", 6))

	require.NoError(t, f.c.ToggleQueue("Billing", true))

	assert.Equal(t, 2, f.refresher.calls)
	assert.Equal(t, "6", f.bar.cells[render.CellKey{Queue: "Billing", Metric: "waiting"}])
	assert.Equal(t, "s2", f.c.LastSnapshot().ID)
}

func TestToggleQueue_LimitExceededNotifies(t *testing.T) {
	f := newFixture(t)
	rowCalls := f.bar.rowCalls

	err := f.c.ToggleQueue("Billing", true)
	require.Error(t, err)
	assert.True(t, barerrors.IsCode(err, barerrors.ErrLimitExceeded))
	require.Len(t, f.notices.got, 1)
	assert.Equal(t, NoticeError, f.notices.got[0].Level)
	assert.Contains(t, f.notices.got[0].Message, "You can select up to 5 queues.")
	assert.Equal(t, rowCalls, f.bar.rowCalls)
	assert.Zero(t, f.refresher.calls)
}

func TestToggleQueue_LastQueueKept(t *testing.T) {
	f := newFixture(t)
	for _, q := range []model.QueueID{"Support", "Sales", "Service", "VIP"} {
		require.NoError(t, f.c.RemoveQueue(q))
	}

	err := f.c.RemoveQueue("Overflow")
	assert.True(t, barerrors.IsCode(err, barerrors.ErrMinimumRequired))
	assert.Equal(t, []model.QueueID{"Overflow"}, f.c.State().Queues)
	assert.Equal(t, "Please keep at least one queue selected.", f.notices.got[0].Message)
}

func TestToggleMetric_RerendersAndReappliesSnapshot(t *testing.T) {
	f := newFixture(t)
	f.c.OnSnapshot(snapshot("s1", model.QueueMetrics{
		Queue:  "Support",
		Values: map[string]float64{"oWaiting": 2, "serviceLevelPercent": 88},
	}))
	require.NoError(t, f.c.ToggleMetric("aht", false))

	require.NoError(t, f.c.ToggleMetric("serviceLevelPct", true))

	assert.Equal(t, []string{"QUEUE", "WAITING", "AVG WAIT", "ABANDON %", "SL %"}, f.bar.headers)
	assert.Equal(t, "88%", f.bar.cells[render.CellKey{Queue: "Support", Metric: "serviceLevelPct"}])
	assert.Zero(t, f.refresher.calls, "metric changes reuse the last snapshot")
}

func TestToggleMetric_LimitExceeded(t *testing.T) {
	f := newFixture(t)

	err := f.c.ToggleMetric("serviceLevelPct", true)
	assert.True(t, barerrors.IsCode(err, barerrors.ErrLimitExceeded))
	assert.Equal(t, []model.MetricID{"waiting", "avgWait", "aht", "abandonPct"}, f.c.State().Metrics)
}

func TestPersistenceFailureIsAWarning(t *testing.T) {
	f := newFixture(t)
	f.storage.FailWrites(errors.New("quota exceeded"))

	err := f.c.ToggleQueue("VIP", false)
	require.Error(t, err)
	assert.True(t, barerrors.IsWarning(err))
	require.Len(t, f.notices.got, 1)
	assert.Equal(t, NoticeWarning, f.notices.got[0].Level)
	assert.False(t, f.c.State().HasQueue("VIP"), "memory state stands")
	assert.Len(t, f.bar.rows, 4)
}

func TestStaleQueueSnapshotIsIgnored(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.c.ToggleQueue("VIP", false))
	cellsBefore := len(f.bar.cells)

	f.c.OnSnapshot(snapshot("late", waiting("VIP", 12)))

	_, found := f.bar.cells[render.CellKey{Queue: "VIP", Metric: "waiting"}]
	assert.False(t, found)
	assert.Equal(t, cellsBefore, len(f.bar.cells))
	assert.Empty(t, f.notices.got)
}

func TestOpenClose(t *testing.T) {
	f := newFixture(t)

	assert.True(t, f.c.Open())
	assert.False(t, f.c.Open(), "open is idempotent")
	assert.True(t, f.c.IsOpen())
	require.Len(t, f.view.shown, 1)
	vm := f.view.shown[0]
	assert.NotEmpty(t, vm.SessionID)
	assert.Len(t, vm.Queues, 10)
	assert.Len(t, vm.QueuePills, 5)
	assert.Len(t, vm.MetricPills, 4)

	assert.True(t, f.c.Close())
	assert.False(t, f.c.Close(), "close is idempotent")
	assert.Equal(t, 1, f.view.hidden)
	assert.Equal(t, model.SessionClosed, f.c.Session())

	assert.True(t, f.c.ToggleOpen())
	assert.False(t, f.c.ToggleOpen())
	require.Len(t, f.view.shown, 2)
	assert.NotEqual(t, vm.SessionID, f.view.shown[1].SessionID)
}

func TestOpenViewFollowsChanges(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.c.ToggleQueue("VIP", false))
	assert.Empty(t, f.view.updates, "closed view gets no updates")

	f.c.Open()
	require.NoError(t, f.c.ToggleQueue("Billing", true))

	require.Len(t, f.view.updates, 1)
	vm := f.view.updates[0]
	assert.Equal(t, 5, vm.QueueCount)
	assert.Equal(t, "Billing", vm.QueuePills[4].Label)
}

func TestQueueOptionsDisabledAtMax(t *testing.T) {
	f := newFixture(t)

	for _, opt := range f.c.QueueOptions() {
		assert.Equal(t, !opt.Checked, opt.Disabled, opt.ID)
	}

	require.NoError(t, f.c.RemoveQueue("Support"))
	for _, opt := range f.c.QueueOptions() {
		assert.False(t, opt.Disabled, opt.ID)
	}
}

func TestQueueFilter(t *testing.T) {
	f := newFixture(t)
	f.c.Open()

	f.c.SetQueueFilter("  SUP ")
	opts := f.c.QueueOptions()
	require.Len(t, opts, 2)
	assert.Equal(t, "Support", opts[0].ID)
	assert.Equal(t, "Spanish Support", opts[1].ID)
	require.Len(t, f.view.updates, 1)
	assert.Len(t, f.view.updates[0].Queues, 2)

	f.c.Close()
	f.c.Open()
	assert.Len(t, f.c.QueueOptions(), 10, "filter resets on open")
}

func TestMetricGroupsAndPills(t *testing.T) {
	f := newFixture(t)

	groups := f.c.MetricGroups()
	require.Len(t, groups, 2)
	assert.Equal(t, catalog.GroupRealtime, groups[0].Name)
	assert.Len(t, groups[0].Options, 5)
	assert.Len(t, groups[1].Options, 6)
	for _, g := range groups {
		for _, opt := range g.Options {
			assert.Equal(t, !opt.Checked, opt.Disabled, opt.ID)
		}
	}

	pills := f.c.MetricPills()
	assert.Equal(t, []Pill{
		{ID: "waiting", Label: "WAITING"},
		{ID: "avgWait", Label: "AVG WAIT"},
		{ID: "aht", Label: "AHT"},
		{ID: "abandonPct", Label: "ABANDON %"},
	}, pills)
	assert.Equal(t, "Support", f.c.QueuePills()[0].ID)
}

func TestThemeScenario(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.c.SetTheme(model.ThemeLight))
	raw, found, _ := f.storage.Get(config.KeyTheme)
	require.True(t, found)
	assert.Equal(t, `"light"`, raw)
	assert.Equal(t, model.ThemeLight, f.appearance[len(f.appearance)-1].Theme)

	cat := catalog.New()
	restarted := NewController(Deps{
		Catalog:     cat,
		Store:       selection.NewStore(f.storage, cat, nil),
		Preferences: config.NewPreferences(f.storage, nil),
		Coordinator: render.NewCoordinator(cat, &barView{}, nil, render.DefaultOptions()),
	})
	assert.Equal(t, model.ThemeLight, restarted.Appearance().Theme)
}

func TestAppearanceOptions(t *testing.T) {
	f := newFixture(t)
	vm := f.c.ViewModel()
	assert.Equal(t, []model.Theme{model.ThemeDark, model.ThemeLight}, vm.Themes)
	assert.Equal(t, []model.FontSize{model.FontNormal, model.FontLarge}, vm.FontSizes)

	cat := catalog.New()
	bare := NewController(Deps{
		Catalog:     cat,
		Store:       selection.NewStore(kvstore.NewMemory(), cat, nil),
		Coordinator: render.NewCoordinator(cat, &barView{}, nil, render.DefaultOptions()),
	})
	vm = bare.ViewModel()
	assert.Equal(t, []model.Theme{model.DefaultTheme}, vm.Themes, "without preferences only the current theme")
	assert.Equal(t, []model.FontSize{model.DefaultFontSize}, vm.FontSizes)
}

func TestSetFontSize(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.c.SetFontSize(model.FontLarge))
	assert.Equal(t, model.FontLarge, f.c.Appearance().FontSize)

	f.storage.FailWrites(errors.New("read-only"))
	err := f.c.SetFontSize(model.FontNormal)
	assert.True(t, barerrors.IsWarning(err))
	assert.Equal(t, model.FontNormal, f.c.Appearance().FontSize)
	assert.Equal(t, NoticeWarning, f.notices.got[0].Level)
}

func TestReloadSelection(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.c.ReloadSelection())

	require.NoError(t, kvstore.SaveJSON(f.storage, selection.KeyMetrics, []string{"asa"}))
	assert.True(t, f.c.ReloadSelection())
	assert.Equal(t, []string{"QUEUE", "ASA"}, f.bar.headers)
	assert.Equal(t, 1, f.refresher.calls)
}

func TestReloadAppearance(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.c.ReloadAppearance())

	require.NoError(t, config.NewPreferences(f.storage, nil).SetTheme(model.ThemeLight))
	assert.True(t, f.c.ReloadAppearance())
	assert.Equal(t, model.ThemeLight, f.c.Appearance().Theme)
}
