// Package metrics supplies queue readings to the bar. A Source produces one
// snapshot per pull; the Poller pulls on a fixed interval and on demand, with
// at most one pull in flight.
package metrics

import "github.com/ytget/prodbar/internal/model"

// Source produces a snapshot for the given queues. Pull never fails.
type Source interface {
	Pull(queues []model.QueueID) model.MetricsSnapshot
}

// SourceFunc adapts a function to Source
type SourceFunc func(queues []model.QueueID) model.MetricsSnapshot

// Pull calls f
func (f SourceFunc) Pull(queues []model.QueueID) model.MetricsSnapshot {
	return f(queues)
}
