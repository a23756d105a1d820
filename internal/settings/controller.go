// Package settings turns user intent into selection changes. Each toggle
// maps to exactly one store call; failures become notices and successes
// re-render only what the change affects.
package settings

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/ytget/prodbar/internal/catalog"
	"github.com/ytget/prodbar/internal/config"
	"github.com/ytget/prodbar/internal/model"
	"github.com/ytget/prodbar/internal/render"
	"github.com/ytget/prodbar/internal/selection"
)

// Refresher pulls fresh metrics on demand
type Refresher interface {
	RefreshNow() model.MetricsSnapshot
}

// Deps are the controller's collaborators. View, Notifier and
// OnAppearance may be nil.
type Deps struct {
	Catalog      *catalog.Catalog
	Store        *selection.Store
	Preferences  *config.Preferences
	Coordinator  *render.Coordinator
	View         View
	Notifier     Notifier
	OnAppearance func(Appearance)
	Logger       *slog.Logger
}

// Controller mediates between the settings surface, the selection store
// and the bar
type Controller struct {
	mu sync.Mutex

	catalog      *catalog.Catalog
	store        *selection.Store
	prefs        *config.Preferences
	coord        *render.Coordinator
	view         View
	notifier     Notifier
	onAppearance func(Appearance)
	refresher    Refresher
	logger       *slog.Logger

	session    model.SessionState
	sessionID  string
	filter     string
	appearance Appearance
	last       model.MetricsSnapshot
}

// NewController creates a controller with the settings view closed
func NewController(deps Deps) *Controller {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Controller{
		catalog:      deps.Catalog,
		store:        deps.Store,
		prefs:        deps.Preferences,
		coord:        deps.Coordinator,
		view:         deps.View,
		notifier:     deps.Notifier,
		onAppearance: deps.OnAppearance,
		logger:       logger.With("component", "settings"),
		session:      model.SessionClosed,
	}
	c.appearance = Appearance{Theme: model.DefaultTheme, FontSize: model.DefaultFontSize}
	if c.prefs != nil {
		c.appearance = Appearance{Theme: c.prefs.GetTheme(), FontSize: c.prefs.GetFontSize()}
	}
	return c
}

// SetRefresher sets who to ask for metrics right after a queue change
func (c *Controller) SetRefresher(r Refresher) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refresher = r
}

// SetView attaches the settings surface
func (c *Controller) SetView(v View) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = v
}

// SetNotifier attaches the notice sink
func (c *Controller) SetNotifier(n Notifier) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifier = n
}

// Start draws the bar for the current selection and applies the appearance
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.renderAll(c.store.State())
	if c.onAppearance != nil {
		c.onAppearance(c.appearance)
	}
}

// State returns the current selection
func (c *Controller) State() model.SelectionState {
	return c.store.State()
}

// ToggleQueue adds or removes a queue. On success the rows are redrawn,
// the last snapshot is applied again and fresh metrics are requested.
func (c *Controller) ToggleQueue(id model.QueueID, checked bool) error {
	c.mu.Lock()
	var (
		state model.SelectionState
		err   error
	)
	if checked {
		state, err = c.store.AddQueue(id)
	} else {
		state, err = c.store.RemoveQueue(id)
	}
	if !c.report(err) {
		c.mu.Unlock()
		return err
	}

	c.logger.Info("queue toggled", "queue", id, "checked", checked, "queues", len(state.Queues))
	c.coord.RenderRows(state)
	c.applyLast(state)
	c.updateView()
	refresher := c.refresher
	c.mu.Unlock()

	if refresher != nil {
		refresher.RefreshNow()
	}
	return err
}

// ToggleMetric adds or removes a metric. On success headers and rows are
// redrawn and the last snapshot is applied so no cell is left blank.
func (c *Controller) ToggleMetric(id model.MetricID, checked bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var (
		state model.SelectionState
		err   error
	)
	if checked {
		state, err = c.store.AddMetric(id)
	} else {
		state, err = c.store.RemoveMetric(id)
	}
	if !c.report(err) {
		return err
	}

	c.logger.Info("metric toggled", "metric", id, "checked", checked, "metrics", len(state.Metrics))
	c.renderAll(state)
	c.updateView()
	return err
}

// RemoveQueue is the pill action for a selected queue
func (c *Controller) RemoveQueue(id model.QueueID) error {
	return c.ToggleQueue(id, false)
}

// RemoveMetric is the pill action for a selected metric
func (c *Controller) RemoveMetric(id model.MetricID) error {
	return c.ToggleMetric(id, false)
}

// SetQueueFilter narrows the queue option list
func (c *Controller) SetQueueFilter(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.filter == text {
		return
	}
	c.filter = text
	c.updateView()
}

// SetTheme stores and applies a theme
func (c *Controller) SetTheme(theme model.Theme) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.appearance.Theme = theme.Normalize()
	var err error
	if c.prefs != nil {
		err = c.prefs.SetTheme(c.appearance.Theme)
	}
	c.report(err)
	c.appearanceChanged()
	return err
}

// SetFontSize stores and applies a font size
func (c *Controller) SetFontSize(size model.FontSize) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.appearance.FontSize = size.Normalize()
	var err error
	if c.prefs != nil {
		err = c.prefs.SetFontSize(c.appearance.FontSize)
	}
	c.report(err)
	c.appearanceChanged()
	return err
}

// Appearance returns the current theme and font size
func (c *Controller) Appearance() Appearance {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.appearance
}

// Open shows the settings view with option lists and pills rebuilt from
// the current selection. It reports false when the view was already open.
func (c *Controller) Open() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session.IsOpen() {
		return false
	}
	c.session = model.SessionOpen
	c.sessionID = uuid.NewString()
	c.filter = ""
	c.logger.Debug("settings opened", "session", c.sessionID)
	if c.view != nil {
		c.view.ShowSettings(c.viewModel())
	}
	return true
}

// Close hides the settings view. It reports false when it was already closed.
func (c *Controller) Close() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.session.IsOpen() {
		return false
	}
	c.session = model.SessionClosed
	c.logger.Debug("settings closed", "session", c.sessionID)
	c.sessionID = ""
	if c.view != nil {
		c.view.HideSettings()
	}
	return true
}

// ToggleOpen opens a closed view and closes an open one. It returns
// whether the view is open afterwards.
func (c *Controller) ToggleOpen() bool {
	if c.Close() {
		return false
	}
	return c.Open()
}

// IsOpen reports whether the settings view is showing
func (c *Controller) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.IsOpen()
}

// Session returns the settings session state
func (c *Controller) Session() model.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// OnSnapshot remembers the snapshot and shows it
func (c *Controller) OnSnapshot(snapshot model.MetricsSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.last = snapshot
	c.coord.ApplySnapshot(c.store.State(), snapshot)
}

// LastSnapshot returns the most recent snapshot, zero before the first one
func (c *Controller) LastSnapshot() model.MetricsSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// ReloadSelection picks up a selection written by another process and
// redraws everything when it changed
func (c *Controller) ReloadSelection() bool {
	c.mu.Lock()
	state, changed := c.store.Reload()
	if !changed {
		c.mu.Unlock()
		return false
	}
	c.renderAll(state)
	c.updateView()
	refresher := c.refresher
	c.mu.Unlock()

	if refresher != nil {
		refresher.RefreshNow()
	}
	return true
}

// ReloadAppearance picks up theme and font size written by another process
func (c *Controller) ReloadAppearance() bool {
	if c.prefs == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	next := Appearance{Theme: c.prefs.GetTheme(), FontSize: c.prefs.GetFontSize()}
	if next == c.appearance {
		return false
	}
	c.appearance = next
	c.appearanceChanged()
	return true
}

// ViewModel returns what the settings view would currently draw
func (c *Controller) ViewModel() ViewModel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewModel()
}

// QueueOptions returns the filtered queue checkboxes
func (c *Controller) QueueOptions() []Option {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queueOptions(c.store.State())
}

// MetricGroups returns the grouped metric checkboxes
func (c *Controller) MetricGroups() []OptionGroup {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.metricGroups(c.store.State())
}

// QueuePills returns one pill per selected queue
func (c *Controller) QueuePills() []Pill {
	return queuePills(c.store.State())
}

// MetricPills returns one pill per selected metric
func (c *Controller) MetricPills() []Pill {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.metricPills(c.store.State())
}

// report notifies about err and says whether the change went through.
// Warnings are notified but the change stands.
func (c *Controller) report(err error) bool {
	if err == nil {
		return true
	}
	notice := NoticeFor(err)
	if c.notifier != nil {
		c.notifier.Notify(notice)
	}
	if notice.Level == NoticeWarning {
		c.logger.Warn("change not saved", "code", notice.Code, "error", err)
		return true
	}
	c.logger.Info("change rejected", "code", notice.Code, "error", err)
	return false
}

func (c *Controller) renderAll(state model.SelectionState) {
	c.coord.RenderHeaders(state)
	c.coord.RenderRows(state)
	c.applyLast(state)
}

func (c *Controller) applyLast(state model.SelectionState) {
	if c.last.IsZero() {
		return
	}
	c.coord.ApplySnapshot(state, c.last)
}

func (c *Controller) updateView() {
	if c.view == nil || !c.session.IsOpen() {
		return
	}
	c.view.UpdateSettings(c.viewModel())
}

func (c *Controller) appearanceChanged() {
	if c.onAppearance != nil {
		c.onAppearance(c.appearance)
	}
	c.updateView()
}
