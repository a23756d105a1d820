package model

import "slices"

// Selection bounds
const (
	MaxQueues  = 5
	MaxMetrics = 4
)

// QueueID identifies a queue in the catalog
type QueueID string

// SelectionState is the ordered set of queues and metrics on display.
// Order is insertion order and drives column and row order.
type SelectionState struct {
	Queues  []QueueID  `json:"queues"`
	Metrics []MetricID `json:"metrics"`
}

// Clone returns a deep copy so callers never alias the store's slices
func (s SelectionState) Clone() SelectionState {
	return SelectionState{
		Queues:  slices.Clone(s.Queues),
		Metrics: slices.Clone(s.Metrics),
	}
}

// HasQueue reports whether the queue is selected
func (s SelectionState) HasQueue(id QueueID) bool {
	return slices.Contains(s.Queues, id)
}

// HasMetric reports whether the metric is selected
func (s SelectionState) HasMetric(id MetricID) bool {
	return slices.Contains(s.Metrics, id)
}

// Equal compares both lists including order
func (s SelectionState) Equal(other SelectionState) bool {
	return slices.Equal(s.Queues, other.Queues) && slices.Equal(s.Metrics, other.Metrics)
}

// QueuesFull reports whether no further queue can be added
func (s SelectionState) QueuesFull() bool {
	return len(s.Queues) >= MaxQueues
}

// MetricsFull reports whether no further metric can be added
func (s SelectionState) MetricsFull() bool {
	return len(s.Metrics) >= MaxMetrics
}
