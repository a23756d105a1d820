// Package render turns a selection and a metrics snapshot into what the bar
// shows: the header row, one row per selected queue and the formatted cell
// text. The functions here are pure; Coordinator pushes their results to a
// View and tells the Host how big the content became.
package render

import (
	"github.com/ytget/prodbar/internal/catalog"
	"github.com/ytget/prodbar/internal/model"
)

// QueueHeader is the first column of every table
const QueueHeader = "QUEUE"

// CellKey addresses one cell of the table
type CellKey struct {
	Queue  model.QueueID
	Metric model.MetricID
}

// RowDescriptor is one table row with a placeholder per selected metric
type RowDescriptor struct {
	Queue model.QueueID
	Cells []CellKey
}

// Headers returns the queue column followed by one header per selected
// metric, in selection order. Metric ids missing from the catalog are skipped.
func Headers(cat *catalog.Catalog, state model.SelectionState) []string {
	headers := make([]string, 0, len(state.Metrics)+1)
	headers = append(headers, QueueHeader)
	for _, m := range selectedMetrics(cat, state) {
		headers = append(headers, m.DisplayHeader())
	}
	return headers
}

// Rows returns one descriptor per selected queue, in selection order
func Rows(cat *catalog.Catalog, state model.SelectionState) []RowDescriptor {
	metrics := selectedMetrics(cat, state)
	rows := make([]RowDescriptor, 0, len(state.Queues))
	for _, q := range state.Queues {
		row := RowDescriptor{Queue: q, Cells: make([]CellKey, 0, len(metrics))}
		for _, m := range metrics {
			row.Cells = append(row.Cells, CellKey{Queue: q, Metric: m.ID})
		}
		rows = append(rows, row)
	}
	return rows
}

// Cells formats the snapshot values of every selected queue present in
// snapshot. Queues that are not selected, and selected queues the snapshot
// does not cover, produce no entries.
func Cells(cat *catalog.Catalog, state model.SelectionState, snapshot model.MetricsSnapshot) map[CellKey]string {
	metrics := selectedMetrics(cat, state)
	cells := make(map[CellKey]string, len(state.Queues)*len(metrics))
	for _, q := range state.Queues {
		row, ok := snapshot.Row(q)
		if !ok {
			continue
		}
		for _, m := range metrics {
			cells[CellKey{Queue: q, Metric: m.ID}] = m.FormatValue(row.Value(m.ValueKey))
		}
	}
	return cells
}

// Table lays the snapshot out as plain rows of text, header first. Cells
// without a value are left empty.
func Table(cat *catalog.Catalog, state model.SelectionState, snapshot model.MetricsSnapshot) [][]string {
	cells := Cells(cat, state, snapshot)
	out := [][]string{Headers(cat, state)}
	for _, row := range Rows(cat, state) {
		line := make([]string, 0, len(row.Cells)+1)
		line = append(line, string(row.Queue))
		for _, key := range row.Cells {
			line = append(line, cells[key])
		}
		out = append(out, line)
	}
	return out
}

func selectedMetrics(cat *catalog.Catalog, state model.SelectionState) []model.MetricDescriptor {
	out := make([]model.MetricDescriptor, 0, len(state.Metrics))
	for _, id := range state.Metrics {
		if m, ok := cat.FindMetric(id); ok {
			out = append(out, m)
		}
	}
	return out
}
