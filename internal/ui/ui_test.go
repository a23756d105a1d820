package ui

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/prodbar/internal/catalog"
	"github.com/ytget/prodbar/internal/config"
	"github.com/ytget/prodbar/internal/kvstore"
	"github.com/ytget/prodbar/internal/model"
	"github.com/ytget/prodbar/internal/render"
	"github.com/ytget/prodbar/internal/selection"
	"github.com/ytget/prodbar/internal/settings"
)

type harness struct {
	app        fyne.App
	shell      *Shell
	ctrl       *settings.Controller
	coord      *render.Coordinator
	appearance []settings.Appearance
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	a := test.NewTempApp(t)
	storage := kvstore.NewMemory()
	cat := catalog.New()
	store := selection.NewStore(storage, cat, logger)
	prefs := config.NewPreferences(storage, logger)

	h := &harness{app: a}
	h.shell = NewShell(a, "en", logger)
	h.coord = render.NewCoordinator(cat, h.shell.Bar(), h.shell.Bar(), render.DefaultOptions())
	h.shell.Bar().SetSizer(h.coord.WindowSize)
	h.ctrl = settings.NewController(settings.Deps{
		Catalog:     cat,
		Store:       store,
		Preferences: prefs,
		Coordinator: h.coord,
		View:        h.shell.Settings(),
		Notifier:    h.shell,
		OnAppearance: func(ap settings.Appearance) {
			h.appearance = append(h.appearance, ap)
			h.shell.ApplyAppearance(ap)
		},
		Logger: logger,
	})
	h.shell.Bind(h.ctrl)
	h.ctrl.Start()
	return h
}

func findCheck(t *testing.T, objects []fyne.CanvasObject, label string) *widget.Check {
	t.Helper()
	for _, obj := range objects {
		if check, ok := obj.(*widget.Check); ok && check.Text == label {
			return check
		}
	}
	t.Fatalf("no check labelled %q", label)
	return nil
}

func findButton(t *testing.T, objects []fyne.CanvasObject, text string) *widget.Button {
	t.Helper()
	for _, obj := range objects {
		if btn, ok := obj.(*widget.Button); ok && btn.Text == text {
			return btn
		}
	}
	t.Fatalf("no button %q", text)
	return nil
}

func checkLabels(objects []fyne.CanvasObject) []string {
	var out []string
	for _, obj := range objects {
		if check, ok := obj.(*widget.Check); ok {
			out = append(out, check.Text)
		}
	}
	return out
}

func TestNewBarTheme(t *testing.T) {
	light := NewBarTheme(model.ThemeLight, model.FontLarge)
	assert.Equal(t, theme.VariantLight, light.(*BarTheme).Variant())
	assert.Equal(t, TextSizeLarge, light.Size(theme.SizeNameText))
	assert.Equal(t, TextSizeLarge+3, light.Size(theme.SizeNameHeadingText))

	fallback := NewBarTheme("sepia", "huge")
	assert.Equal(t, theme.VariantDark, fallback.(*BarTheme).Variant())
	assert.Equal(t, TextSizeNormal, fallback.Size(theme.SizeNameText))

	assert.NotEqual(t,
		light.Color(theme.ColorNameBackground, theme.VariantDark),
		fallback.Color(theme.ColorNameBackground, theme.VariantDark),
		"the variant argument is ignored")
}

func TestTextSizeFor(t *testing.T) {
	assert.Equal(t, TextSizeNormal, TextSizeFor(model.FontNormal))
	assert.Equal(t, TextSizeLarge, TextSizeFor(model.FontLarge))
	assert.Equal(t, TextSizeNormal, TextSizeFor(""))
}

func TestLocalization(t *testing.T) {
	loc := NewLocalization()
	assert.Equal(t, "en", loc.GetCurrentLanguage())
	assert.Equal(t, BarTitle, loc.GetText(KeyBarTitle))

	loc.SetLanguage("ru")
	assert.Equal(t, "ru", loc.GetCurrentLanguage())
	assert.NotEqual(t, BarTitle, loc.GetText(KeyBarTitle))

	loc.SetLanguage("de")
	assert.Equal(t, "ru", loc.GetCurrentLanguage(), "unknown languages are ignored")

	loc.SetLanguage("system")
	assert.Equal(t, "en", loc.GetCurrentLanguage())
	assert.Equal(t, "missing_key", loc.GetText("missing_key"))
}

func TestBarWindow_RendersSnapshot(t *testing.T) {
	h := newHarness(t)
	bar := h.shell.Bar()

	key := render.CellKey{Queue: "Support", Metric: "waiting"}
	assert.Equal(t, CellPlaceholder, bar.CellText(key), "no snapshot yet")

	h.ctrl.OnSnapshot(model.MetricsSnapshot{
		ID: "s1",
		Rows: []model.QueueMetrics{
			{Queue: "Support", Values: map[string]float64{"oWaiting": 7, "avgWait": 95}},
		},
	})

	assert.Equal(t, "7", bar.CellText(key))
	assert.Equal(t, "01:35", bar.CellText(render.CellKey{Queue: "Support", Metric: "avgWait"}))
	assert.Equal(t, "00:00", bar.CellText(render.CellKey{Queue: "Support", Metric: "aht"}))
	assert.Equal(t, CellPlaceholder, bar.CellText(render.CellKey{Queue: "Sales", Metric: "waiting"}))
}

func TestBarWindow_FitsContent(t *testing.T) {
	h := newHarness(t)
	bar := h.shell.Bar()

	content := bar.ContentSize()
	require.Greater(t, content.Width, float32(0))
	require.Greater(t, content.Height, float32(0))
	assert.Equal(t, h.coord.WindowSize(content), bar.LastSize())

	require.NoError(t, h.ctrl.SetFontSize(model.FontLarge))
	larger := bar.ContentSize()
	assert.Greater(t, larger.Width, content.Width)
	assert.Greater(t, larger.Height, content.Height)
	assert.Equal(t, h.coord.WindowSize(larger), bar.LastSize())

	require.NoError(t, h.ctrl.RemoveQueue("Support"))
	fewer := bar.ContentSize()
	assert.Less(t, fewer.Height, larger.Height)
}

func TestBarWindow_SettingsButtonTogglesWindow(t *testing.T) {
	h := newHarness(t)
	sw := h.shell.Settings()

	h.shell.Bar().onSettings()
	assert.True(t, h.ctrl.IsOpen())
	assert.True(t, sw.Visible())

	h.shell.Bar().onSettings()
	assert.False(t, h.ctrl.IsOpen())
	assert.False(t, sw.Visible())
}

func TestSettingsWindow_RemoveAndAddQueue(t *testing.T) {
	h := newHarness(t)
	sw := h.shell.Settings()
	h.ctrl.Open()

	billing := findCheck(t, sw.queueList.Objects, "Billing")
	assert.True(t, billing.Disabled(), "queues are full")
	assert.Equal(t, "Selected queues (5/5)", sw.queueCount.Text)

	test.Tap(findButton(t, sw.queuePills.Objects, "Support "+IconClose))
	assert.Equal(t, []model.QueueID{"Sales", "Service", "VIP", "Overflow"}, h.ctrl.State().Queues)
	assert.Equal(t, "Selected queues (4/5)", sw.queueCount.Text)

	billing = findCheck(t, sw.queueList.Objects, "Billing")
	require.False(t, billing.Disabled())
	test.Tap(billing)
	assert.Equal(t, []model.QueueID{"Sales", "Service", "VIP", "Overflow", "Billing"}, h.ctrl.State().Queues)
	assert.True(t, findCheck(t, sw.queueList.Objects, "Billing").Checked)
}

func TestSettingsWindow_LastMetricStays(t *testing.T) {
	h := newHarness(t)
	sw := h.shell.Settings()
	h.ctrl.Open()

	for _, label := range []string{"Avg Wait", "Avg Handle Time (AHT)", "Abandon %"} {
		test.Tap(findCheck(t, sw.metricList.Objects, label))
	}
	require.Equal(t, []model.MetricID{"waiting"}, h.ctrl.State().Metrics)

	last := findCheck(t, sw.metricList.Objects, "Waiting (oWaiting)")
	test.Tap(last)
	assert.Equal(t, []model.MetricID{"waiting"}, h.ctrl.State().Metrics)
	assert.True(t, findCheck(t, sw.metricList.Objects, "Waiting (oWaiting)").Checked, "rejected uncheck is reverted")
	assert.True(t, sw.notice.Visible())
}

func TestSettingsWindow_Search(t *testing.T) {
	h := newHarness(t)
	sw := h.shell.Settings()
	h.ctrl.Open()

	test.Type(sw.search, "span")
	assert.Equal(t, []string{"Spanish Support"}, checkLabels(sw.queueList.Objects))

	test.Type(sw.search, "xyz")
	require.Len(t, sw.queueList.Objects, 1)
	label, ok := sw.queueList.Objects[0].(*widget.Label)
	require.True(t, ok)
	assert.Equal(t, "No queues match", label.Text)

	h.ctrl.Close()
	h.ctrl.Open()
	assert.Empty(t, sw.search.Text, "filter resets when reopened")
	assert.Len(t, checkLabels(sw.queueList.Objects), 10)
}

func TestSettingsWindow_Appearance(t *testing.T) {
	h := newHarness(t)
	sw := h.shell.Settings()
	h.ctrl.Open()

	assert.Equal(t, []string{"Dark", "Light"}, sw.themeRadio.Options)
	assert.Equal(t, []string{"Normal", "Large"}, sw.fontRadio.Options)
	assert.Equal(t, "Dark", sw.themeRadio.Selected)
	assert.Equal(t, "Normal", sw.fontRadio.Selected)

	sw.themeRadio.SetSelected("Light")
	assert.Equal(t, model.ThemeLight, h.ctrl.Appearance().Theme)
	require.NotEmpty(t, h.appearance)
	assert.Equal(t, model.ThemeLight, h.appearance[len(h.appearance)-1].Theme)
	assert.Equal(t, theme.VariantLight, h.app.Settings().Theme().(*BarTheme).Variant())

	sw.fontRadio.SetSelected("Large")
	assert.Equal(t, model.FontLarge, h.ctrl.Appearance().FontSize)
	assert.Equal(t, "Light", sw.themeRadio.Selected)
}

func TestSettingsWindow_CloseIntercept(t *testing.T) {
	h := newHarness(t)
	sw := h.shell.Settings()
	h.ctrl.Open()

	sw.close()
	assert.False(t, h.ctrl.IsOpen())
	assert.False(t, sw.Visible())
}

func TestSettingsWindow_EscapeCloses(t *testing.T) {
	h := newHarness(t)
	sw := h.shell.Settings()
	h.ctrl.Open()
	require.True(t, sw.Visible())

	sw.Window().Canvas().OnTypedKey()(&fyne.KeyEvent{Name: fyne.KeyReturn})
	assert.True(t, h.ctrl.IsOpen(), "other keys leave the window open")

	sw.Window().Canvas().OnTypedKey()(&fyne.KeyEvent{Name: fyne.KeyEscape})
	assert.False(t, h.ctrl.IsOpen())
	assert.False(t, sw.Visible())

	h.shell.Bar().onSettings()
	assert.True(t, h.ctrl.IsOpen(), "settings button opens it again")
}

func TestShell_NotifyRoutes(t *testing.T) {
	h := newHarness(t)
	notice := settings.Notice{Level: settings.NoticeError, Message: "You can select up to 5 queues."}

	h.shell.Notify(notice)
	assert.NotNil(t, h.shell.Bar().toast, "closed settings: toast on the bar")
	assert.False(t, h.shell.Settings().notice.Visible())

	h.ctrl.Open()
	h.shell.Notify(notice)
	assert.True(t, h.shell.Settings().notice.Visible())
	assert.Contains(t, h.shell.Settings().notice.Text, notice.Message)
}

type rejectingActions struct {
	vm    settings.ViewModel
	calls int
}

func (r *rejectingActions) ToggleQueue(model.QueueID, bool) error {
	r.calls++
	return errors.New("rejected")
}
func (r *rejectingActions) ToggleMetric(model.MetricID, bool) error { return nil }
func (r *rejectingActions) RemoveQueue(model.QueueID) error         { return nil }
func (r *rejectingActions) RemoveMetric(model.MetricID) error       { return nil }
func (r *rejectingActions) SetQueueFilter(string)                   {}
func (r *rejectingActions) SetTheme(model.Theme) error              { return nil }
func (r *rejectingActions) SetFontSize(model.FontSize) error        { return nil }
func (r *rejectingActions) Close() bool                             { return true }
func (r *rejectingActions) ViewModel() settings.ViewModel           { return r.vm }

func TestSettingsWindow_RevertsRejectedToggle(t *testing.T) {
	sw := NewSettingsWindow(test.NewTempApp(t), NewLocalization())
	actions := &rejectingActions{vm: settings.ViewModel{
		Queues: []settings.Option{{ID: "Billing", Label: "Billing"}},
	}}
	sw.SetActions(actions)
	sw.ShowSettings(actions.vm)

	test.Tap(findCheck(t, sw.queueList.Objects, "Billing"))
	assert.Equal(t, 1, actions.calls)
	assert.False(t, findCheck(t, sw.queueList.Objects, "Billing").Checked)
}
