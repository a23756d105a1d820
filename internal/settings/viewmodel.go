package settings

import (
	"github.com/ytget/prodbar/internal/model"
)

// Option is one checkbox in an option list
type Option struct {
	ID       string
	Label    string
	Checked  bool
	Disabled bool
}

// OptionGroup is a titled list of metric options
type OptionGroup struct {
	Name    string
	Options []Option
}

// Pill is a removable token for one selected item
type Pill struct {
	ID    string
	Label string
}

// Appearance is the current theme and font size
type Appearance struct {
	Theme    model.Theme
	FontSize model.FontSize
}

// ViewModel is everything the settings view draws
type ViewModel struct {
	SessionID    string
	Filter       string
	Queues       []Option
	MetricGroups []OptionGroup
	QueuePills   []Pill
	MetricPills  []Pill
	Appearance   Appearance
	Themes       []model.Theme
	FontSizes    []model.FontSize
	QueueCount   int
	MetricCount  int
}

// View is the settings surface driven by the controller
type View interface {
	ShowSettings(vm ViewModel)
	UpdateSettings(vm ViewModel)
	HideSettings()
}

func (c *Controller) queueOptions(state model.SelectionState) []Option {
	full := state.QueuesFull()
	queues := c.catalog.SearchQueues(c.filter)
	out := make([]Option, 0, len(queues))
	for _, q := range queues {
		checked := state.HasQueue(q)
		out = append(out, Option{
			ID:       string(q),
			Label:    string(q),
			Checked:  checked,
			Disabled: full && !checked,
		})
	}
	return out
}

func (c *Controller) metricGroups(state model.SelectionState) []OptionGroup {
	full := state.MetricsFull()
	groups := c.catalog.Groups()
	out := make([]OptionGroup, 0, len(groups))
	for _, g := range groups {
		group := OptionGroup{Name: g.Name, Options: make([]Option, 0, len(g.Metrics))}
		for _, m := range g.Metrics {
			checked := state.HasMetric(m.ID)
			group.Options = append(group.Options, Option{
				ID:       string(m.ID),
				Label:    m.Label,
				Checked:  checked,
				Disabled: full && !checked,
			})
		}
		out = append(out, group)
	}
	return out
}

func queuePills(state model.SelectionState) []Pill {
	out := make([]Pill, 0, len(state.Queues))
	for _, q := range state.Queues {
		out = append(out, Pill{ID: string(q), Label: string(q)})
	}
	return out
}

func (c *Controller) metricPills(state model.SelectionState) []Pill {
	out := make([]Pill, 0, len(state.Metrics))
	for _, id := range state.Metrics {
		label := string(id)
		if m, ok := c.catalog.FindMetric(id); ok {
			label = m.DisplayHeader()
		}
		out = append(out, Pill{ID: string(id), Label: label})
	}
	return out
}

func (c *Controller) viewModel() ViewModel {
	state := c.store.State()
	return ViewModel{
		SessionID:    c.sessionID,
		Filter:       c.filter,
		Queues:       c.queueOptions(state),
		MetricGroups: c.metricGroups(state),
		QueuePills:   queuePills(state),
		MetricPills:  c.metricPills(state),
		Appearance:   c.appearance,
		Themes:       c.themeOptions(),
		FontSizes:    c.fontSizeOptions(),
		QueueCount:   len(state.Queues),
		MetricCount:  len(state.Metrics),
	}
}

func (c *Controller) themeOptions() []model.Theme {
	if c.prefs == nil {
		return []model.Theme{c.appearance.Theme}
	}
	return c.prefs.GetThemeOptions()
}

func (c *Controller) fontSizeOptions() []model.FontSize {
	if c.prefs == nil {
		return []model.FontSize{c.appearance.FontSize}
	}
	return c.prefs.GetFontSizeOptions()
}
