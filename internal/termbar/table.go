package termbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/ytget/prodbar/internal/catalog"
	"github.com/ytget/prodbar/internal/model"
	"github.com/ytget/prodbar/internal/render"
)

// columnGap is added to every column so values do not touch
const columnGap = 2

// NewTable builds a non-interactive bubbles table from laid out rows,
// header first
func NewTable(lines [][]string) table.Model {
	if len(lines) == 0 {
		return table.New()
	}

	headers := lines[0]
	columns := make([]table.Column, len(headers))
	for i, h := range headers {
		width := lipgloss.Width(h)
		for _, line := range lines[1:] {
			if i < len(line) {
				width = max(width, lipgloss.Width(line[i]))
			}
		}
		columns[i] = table.Column{Title: h, Width: width + columnGap}
	}

	rows := make([]table.Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		rows = append(rows, table.Row(line))
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+1),
	)
	t.SetStyles(tableStyles())
	return t
}

// RenderTable renders the selection and snapshot as a styled table with
// a footer saying how old the snapshot is
func RenderTable(cat *catalog.Catalog, state model.SelectionState, snapshot model.MetricsSnapshot, now time.Time) string {
	t := NewTable(render.Table(cat, state, snapshot))

	var b strings.Builder
	b.WriteString(t.View())
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(Footer(snapshot, now)))
	b.WriteString("\n")
	return b.String()
}

// Footer describes the snapshot, e.g. "snapshot 1f0c2a7e taken 3 seconds ago"
func Footer(snapshot model.MetricsSnapshot, now time.Time) string {
	if snapshot.IsZero() {
		return "waiting for first snapshot"
	}
	return fmt.Sprintf("snapshot %s taken %s", shortID(snapshot.ID), humanize.RelTime(snapshot.TakenAt, now, "ago", "from now"))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
