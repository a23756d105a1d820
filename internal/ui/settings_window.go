package ui

import (
	"fmt"
	"slices"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/prodbar/internal/model"
	"github.com/ytget/prodbar/internal/settings"
)

// SettingsActions is what the settings window asks of the controller
type SettingsActions interface {
	ToggleQueue(id model.QueueID, checked bool) error
	ToggleMetric(id model.MetricID, checked bool) error
	RemoveQueue(id model.QueueID) error
	RemoveMetric(id model.MetricID) error
	SetQueueFilter(text string)
	SetTheme(theme model.Theme) error
	SetFontSize(size model.FontSize) error
	Close() bool
	ViewModel() settings.ViewModel
}

// SettingsWindow shows queue, metric and appearance choices in a separate
// window. It implements settings.View.
type SettingsWindow struct {
	window  fyne.Window
	loc     *Localization
	actions SettingsActions

	mu      sync.Mutex
	visible bool
	noticeN int

	// widgets, owned by the fyne goroutine
	queueCount  *widget.Label
	queuePills  *fyne.Container
	search      *widget.Entry
	queueList   *fyne.Container
	metricCount *widget.Label
	metricPills *fyne.Container
	metricList  *fyne.Container
	themeRadio  *widget.RadioGroup
	fontRadio   *widget.RadioGroup
	notice      *widget.Label

	// option label to value, rebuilt by apply
	themes map[string]model.Theme
	fonts  map[string]model.FontSize
}

// NewSettingsWindow creates the settings window without showing it
func NewSettingsWindow(app fyne.App, loc *Localization) *SettingsWindow {
	sw := &SettingsWindow{
		window: app.NewWindow(loc.GetText(KeySettingsTitle)),
		loc:    loc,
		themes: map[string]model.Theme{},
		fonts:  map[string]model.FontSize{},
	}
	sw.createUI()
	return sw
}

// SetActions binds the window to its controller
func (sw *SettingsWindow) SetActions(actions SettingsActions) {
	sw.actions = actions
}

// Window returns the underlying fyne window
func (sw *SettingsWindow) Window() fyne.Window {
	return sw.window
}

// Visible reports whether the window is shown
func (sw *SettingsWindow) Visible() bool {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.visible
}

// ShowSettings implements settings.View
func (sw *SettingsWindow) ShowSettings(vm settings.ViewModel) {
	sw.mu.Lock()
	sw.visible = true
	sw.mu.Unlock()

	fyne.Do(func() {
		sw.apply(vm)
		sw.notice.Hide()
		sw.window.Show()
	})
}

// UpdateSettings implements settings.View
func (sw *SettingsWindow) UpdateSettings(vm settings.ViewModel) {
	fyne.Do(func() {
		sw.apply(vm)
	})
}

// HideSettings implements settings.View
func (sw *SettingsWindow) HideSettings() {
	sw.mu.Lock()
	sw.visible = false
	sw.mu.Unlock()

	fyne.Do(sw.window.Hide)
}

// ShowNotice shows a notice line above the tabs for a few seconds
func (sw *SettingsWindow) ShowNotice(n settings.Notice) {
	sw.mu.Lock()
	sw.noticeN++
	current := sw.noticeN
	sw.mu.Unlock()

	fyne.Do(func() {
		sw.notice.SetText(IconWarning + " " + n.Message)
		sw.notice.Show()
	})

	afterUI(ToastAutoHide, func() {
		sw.mu.Lock()
		stale := sw.noticeN != current
		sw.mu.Unlock()
		if !stale {
			sw.notice.Hide()
		}
	})
}

// createUI builds the tabs; option lists are filled by apply
func (sw *SettingsWindow) createUI() {
	sw.queueCount = widget.NewLabel("")
	sw.queuePills = container.NewHBox()
	sw.search = widget.NewEntry()
	sw.search.SetPlaceHolder(sw.loc.GetText(KeySearchQueues))
	sw.search.OnChanged = sw.onSearch
	sw.queueList = container.NewVBox()

	queuesTab := container.NewBorder(
		container.NewVBox(sw.queueCount, sw.queuePills, sw.search),
		nil, nil, nil,
		container.NewVScroll(sw.queueList),
	)

	sw.metricCount = widget.NewLabel("")
	sw.metricPills = container.NewHBox()
	sw.metricList = container.NewVBox()

	metricsTab := container.NewBorder(
		container.NewVBox(sw.metricCount, sw.metricPills),
		nil, nil, nil,
		container.NewVScroll(sw.metricList),
	)

	sw.themeRadio = widget.NewRadioGroup(nil, nil)
	sw.themeRadio.Horizontal = true
	sw.themeRadio.Required = true
	sw.themeRadio.OnChanged = sw.onTheme

	sw.fontRadio = widget.NewRadioGroup(nil, nil)
	sw.fontRadio.Horizontal = true
	sw.fontRadio.Required = true
	sw.fontRadio.OnChanged = sw.onFontSize

	appearanceTab := container.NewVBox(
		widget.NewLabel(sw.loc.GetText(KeyTheme)),
		sw.themeRadio,
		widget.NewSeparator(),
		widget.NewLabel(sw.loc.GetText(KeyFontSize)),
		sw.fontRadio,
	)

	tabs := container.NewAppTabs(
		container.NewTabItem(sw.loc.GetText(KeyQueuesTab), queuesTab),
		container.NewTabItem(sw.loc.GetText(KeyMetricsTab), metricsTab),
		container.NewTabItem(sw.loc.GetText(KeyAppearanceTab), appearanceTab),
	)

	sw.notice = widget.NewLabel("")
	sw.notice.Wrapping = fyne.TextWrapWord
	sw.notice.Hide()

	closeBtn := widget.NewButton(sw.loc.GetText(KeyClose), sw.close)

	sw.window.SetContent(container.NewBorder(sw.notice, container.NewHBox(closeBtn), nil, nil, tabs))
	sw.window.Resize(fyne.NewSize(SettingsWindowWidth, SettingsWindowHeight))
	sw.window.SetCloseIntercept(sw.close)
	sw.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			sw.close()
		}
	})
}

// apply redraws every widget from vm. Widget callbacks are detached while
// values are set so that nothing calls back into the controller.
func (sw *SettingsWindow) apply(vm settings.ViewModel) {
	sw.queueCount.SetText(fmt.Sprintf(CountFormat, sw.loc.GetText(KeySelectedQueues), vm.QueueCount, model.MaxQueues))
	sw.metricCount.SetText(fmt.Sprintf(CountFormat, sw.loc.GetText(KeySelectedMetrics), vm.MetricCount, model.MaxMetrics))

	sw.queuePills.Objects = sw.pills(vm.QueuePills, func(id string) error {
		return sw.actions.RemoveQueue(model.QueueID(id))
	})
	sw.queuePills.Refresh()
	sw.metricPills.Objects = sw.pills(vm.MetricPills, func(id string) error {
		return sw.actions.RemoveMetric(model.MetricID(id))
	})
	sw.metricPills.Refresh()

	if sw.search.Text != vm.Filter {
		onChanged := sw.search.OnChanged
		sw.search.OnChanged = nil
		sw.search.SetText(vm.Filter)
		sw.search.OnChanged = onChanged
	}

	queueChecks := sw.checks(vm.Queues, func(id string, checked bool) error {
		return sw.actions.ToggleQueue(model.QueueID(id), checked)
	})
	if len(queueChecks) == 0 {
		queueChecks = append(queueChecks, widget.NewLabel(sw.loc.GetText(KeyNoQueuesMatch)))
	}
	sw.queueList.Objects = queueChecks
	sw.queueList.Refresh()

	var metricObjects []fyne.CanvasObject
	for _, group := range vm.MetricGroups {
		title := widget.NewLabel(group.Name)
		title.TextStyle = fyne.TextStyle{Bold: true}
		metricObjects = append(metricObjects, title)
		metricObjects = append(metricObjects, sw.checks(group.Options, func(id string, checked bool) error {
			return sw.actions.ToggleMetric(model.MetricID(id), checked)
		})...)
	}
	sw.metricList.Objects = metricObjects
	sw.metricList.Refresh()

	themes := make([]string, 0, len(vm.Themes))
	for _, theme := range vm.Themes {
		label := sw.themeLabel(theme)
		sw.themes[label] = theme
		themes = append(themes, label)
	}
	sw.setOptions(sw.themeRadio, themes)
	fonts := make([]string, 0, len(vm.FontSizes))
	for _, size := range vm.FontSizes {
		label := sw.fontLabel(size)
		sw.fonts[label] = size
		fonts = append(fonts, label)
	}
	sw.setOptions(sw.fontRadio, fonts)

	sw.selectRadio(sw.themeRadio, sw.themeLabel(vm.Appearance.Theme))
	sw.selectRadio(sw.fontRadio, sw.fontLabel(vm.Appearance.FontSize))
}

func (sw *SettingsWindow) checks(options []settings.Option, toggle func(id string, checked bool) error) []fyne.CanvasObject {
	out := make([]fyne.CanvasObject, 0, len(options))
	for _, opt := range options {
		check := widget.NewCheck(opt.Label, nil)
		check.SetChecked(opt.Checked)
		if opt.Disabled {
			check.Disable()
		}
		id := opt.ID
		check.OnChanged = func(checked bool) {
			if err := toggle(id, checked); err != nil {
				sw.resync()
			}
		}
		out = append(out, check)
	}
	return out
}

func (sw *SettingsWindow) pills(pills []settings.Pill, remove func(id string) error) []fyne.CanvasObject {
	out := make([]fyne.CanvasObject, 0, len(pills))
	for _, p := range pills {
		id := p.ID
		btn := widget.NewButton(p.Label+" "+IconClose, func() {
			if err := remove(id); err != nil {
				sw.resync()
			}
		})
		btn.Importance = widget.LowImportance
		out = append(out, btn)
	}
	return out
}

// resync redraws from the controller after a rejected change so that the
// widget that caused it shows the real state again
func (sw *SettingsWindow) resync() {
	if sw.actions == nil {
		return
	}
	vm := sw.actions.ViewModel()
	fyne.Do(func() {
		sw.apply(vm)
	})
}

func (sw *SettingsWindow) setOptions(radio *widget.RadioGroup, options []string) {
	if slices.Equal(radio.Options, options) {
		return
	}
	radio.Options = options
	radio.Refresh()
}

func (sw *SettingsWindow) selectRadio(radio *widget.RadioGroup, option string) {
	if radio.Selected == option {
		return
	}
	onChanged := radio.OnChanged
	radio.OnChanged = nil
	radio.SetSelected(option)
	radio.OnChanged = onChanged
}

func (sw *SettingsWindow) onSearch(text string) {
	if sw.actions != nil {
		sw.actions.SetQueueFilter(text)
	}
}

func (sw *SettingsWindow) onTheme(option string) {
	theme, ok := sw.themes[option]
	if !ok || sw.actions == nil {
		return
	}
	if err := sw.actions.SetTheme(theme); err != nil {
		sw.resync()
	}
}

func (sw *SettingsWindow) onFontSize(option string) {
	size, ok := sw.fonts[option]
	if !ok || sw.actions == nil {
		return
	}
	if err := sw.actions.SetFontSize(size); err != nil {
		sw.resync()
	}
}

func (sw *SettingsWindow) close() {
	if sw.actions != nil {
		sw.actions.Close()
		return
	}
	sw.HideSettings()
}

func (sw *SettingsWindow) themeLabel(theme model.Theme) string {
	if theme.Normalize() == model.ThemeLight {
		return sw.loc.GetText(KeyThemeLight)
	}
	return sw.loc.GetText(KeyThemeDark)
}

func (sw *SettingsWindow) fontLabel(size model.FontSize) string {
	if size.Normalize() == model.FontLarge {
		return sw.loc.GetText(KeyFontLarge)
	}
	return sw.loc.GetText(KeyFontNormal)
}
