package termbar

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ytget/prodbar/internal/catalog"
	"github.com/ytget/prodbar/internal/model"
	"github.com/ytget/prodbar/internal/render"
)

// SnapshotMsg delivers a fresh snapshot to the live view
type SnapshotMsg struct {
	State    model.SelectionState
	Snapshot model.MetricsSnapshot
}

// NoticeMsg shows a one-line message under the table
type NoticeMsg string

type watchKeyMap struct {
	Refresh key.Binding
	Quit    key.Binding
}

var watchKeys = watchKeyMap{
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q/esc", "quit"),
	),
}

// WatchModel is a Bubble Tea model that redraws the table on every snapshot
type WatchModel struct {
	catalog  *catalog.Catalog
	table    table.Model
	state    model.SelectionState
	snapshot model.MetricsSnapshot
	notice   string
	refresh  func()
	now      func() time.Time
	quitting bool
}

// NewWatchModel creates the live view. refresh is called on the refresh key
// and may be nil.
func NewWatchModel(cat *catalog.Catalog, state model.SelectionState, refresh func()) WatchModel {
	return WatchModel{
		catalog: cat,
		table:   NewTable(render.Table(cat, state, model.MetricsSnapshot{})),
		state:   state,
		refresh: refresh,
		now:     time.Now,
	}
}

// Init implements tea.Model.
func (m WatchModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, watchKeys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, watchKeys.Refresh):
			if m.refresh != nil {
				refresh := m.refresh
				return m, func() tea.Msg {
					refresh()
					return nil
				}
			}
		}

	case SnapshotMsg:
		m.state = msg.State
		m.snapshot = msg.Snapshot
		m.table = NewTable(render.Table(m.catalog, m.state, m.snapshot))

	case NoticeMsg:
		m.notice = string(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m WatchModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("prodbar"))
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(Footer(m.snapshot, m.now()) + "  r refresh  q quit"))
	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(warnStyle.Render(m.notice))
	}
	b.WriteString("\n")
	return b.String()
}

// Snapshot returns the snapshot currently shown
func (m WatchModel) Snapshot() model.MetricsSnapshot {
	return m.snapshot
}
