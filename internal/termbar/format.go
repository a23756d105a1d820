package termbar

import (
	"fmt"
	"io"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/ytget/prodbar/internal/catalog"
	"github.com/ytget/prodbar/internal/model"
)

// Format is an output format of the snapshot command
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formats lists the supported output formats
var Formats = []Format{FormatTable, FormatJSON, FormatYAML}

// ParseFormat validates a --format value
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want table, json or yaml)", s)
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Report is the machine readable form of one snapshot
type Report struct {
	SnapshotID string        `json:"snapshot_id" yaml:"snapshot_id"`
	TakenAt    time.Time     `json:"taken_at" yaml:"taken_at"`
	Queues     []QueueReport `json:"queues" yaml:"queues"`
}

// QueueReport holds one queue's metrics in selection order
type QueueReport struct {
	Queue   string         `json:"queue" yaml:"queue"`
	Metrics []MetricReport `json:"metrics" yaml:"metrics"`
}

// MetricReport is one formatted reading. Raw is absent when the snapshot
// had no value.
type MetricReport struct {
	ID     string   `json:"id" yaml:"id"`
	Header string   `json:"header" yaml:"header"`
	Value  string   `json:"value" yaml:"value"`
	Raw    *float64 `json:"raw,omitempty" yaml:"raw,omitempty"`
}

// BuildReport collects the selected queues and metrics from snapshot.
// Selected queues missing from the snapshot are left out.
func BuildReport(cat *catalog.Catalog, state model.SelectionState, snapshot model.MetricsSnapshot) Report {
	report := Report{SnapshotID: snapshot.ID, TakenAt: snapshot.TakenAt, Queues: []QueueReport{}}
	for _, q := range state.Queues {
		row, ok := snapshot.Row(q)
		if !ok {
			continue
		}
		qr := QueueReport{Queue: string(q), Metrics: make([]MetricReport, 0, len(state.Metrics))}
		for _, id := range state.Metrics {
			m, ok := cat.FindMetric(id)
			if !ok {
				continue
			}
			v := row.Value(m.ValueKey)
			mr := MetricReport{ID: string(m.ID), Header: m.DisplayHeader(), Value: m.FormatValue(v)}
			if v.Valid {
				raw := v.N
				mr.Raw = &raw
			}
			qr.Metrics = append(qr.Metrics, mr)
		}
		report.Queues = append(report.Queues, qr)
	}
	return report
}

// Write renders the snapshot to w in the given format
func Write(w io.Writer, format Format, cat *catalog.Catalog, state model.SelectionState, snapshot model.MetricsSnapshot, now time.Time) error {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(BuildReport(cat, state, snapshot), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(BuildReport(cat, state, snapshot)); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		_, err := io.WriteString(w, RenderTable(cat, state, snapshot, now))
		return err
	}
}
