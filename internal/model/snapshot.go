package model

import "time"

// QueueMetrics holds the raw readings for one queue, keyed by ValueKey
type QueueMetrics struct {
	Queue  QueueID            `json:"queue" yaml:"queue"`
	Values map[string]float64 `json:"values" yaml:"values"`
}

// Value returns the reading for key, or Missing
func (q QueueMetrics) Value(key string) Value {
	n, ok := q.Values[key]
	if !ok {
		return Missing
	}
	return Present(n)
}

// MetricsSnapshot is one point-in-time pull for the selected queues
type MetricsSnapshot struct {
	ID      string         `json:"id" yaml:"id"`
	TakenAt time.Time      `json:"taken_at" yaml:"taken_at"`
	Rows    []QueueMetrics `json:"rows" yaml:"rows"`
}

// Row returns the readings for a queue if the snapshot has them
func (s MetricsSnapshot) Row(id QueueID) (QueueMetrics, bool) {
	for _, row := range s.Rows {
		if row.Queue == id {
			return row, true
		}
	}
	return QueueMetrics{}, false
}

// IsZero reports whether no snapshot has been taken yet
func (s MetricsSnapshot) IsZero() bool {
	return s.ID == "" && len(s.Rows) == 0
}
