// Package selection owns the bounded queue and metric selection. The Store is
// the only writer of SelectionState: every mutation is validated against the
// catalog and the MaxQueues/MaxMetrics bounds, then the full list is written
// back to key-value storage under a stable key.
//
// Storage is a cache. When a write fails the in-memory change still stands
// and the caller receives a PERSISTENCE_WRITE_FAILED warning alongside the new
// state. When stored values are absent or malformed the defaults are used and
// nothing is surfaced to the caller.
package selection

import (
	"log/slog"
	"sync"

	"github.com/ytget/prodbar/internal/catalog"
	barerrors "github.com/ytget/prodbar/internal/errors"
	"github.com/ytget/prodbar/internal/kvstore"
	"github.com/ytget/prodbar/internal/model"
)

// Storage keys
const (
	KeyQueues  = "prodBarSelectedQueues"
	KeyMetrics = "prodBarSelectedMetrics_v2"
)

const (
	kindQueue  = "queue"
	kindMetric = "metric"
)

// Store holds the current selection and persists it
type Store struct {
	mu      sync.Mutex
	storage kvstore.Storage
	catalog *catalog.Catalog
	state   model.SelectionState
	logger  *slog.Logger
}

// NewStore creates a store and loads the persisted selection
func NewStore(storage kvstore.Storage, cat *catalog.Catalog, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		storage: storage,
		catalog: cat,
		logger:  logger.With("component", "selection"),
	}
	s.Load()
	return s
}

// Load reads the persisted selection, falling back to defaults per list
func (s *Store) Load() model.SelectionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = s.read()
	return s.state.Clone()
}

// Reload re-reads storage after another writer changed it and reports
// whether the selection differs from the one in memory
func (s *Store) Reload() (model.SelectionState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.read()
	if next.Equal(s.state) {
		return s.state.Clone(), false
	}

	s.logger.Info("selection changed by another writer",
		"queues", len(next.Queues), "metrics", len(next.Metrics))
	s.state = next
	return s.state.Clone(), true
}

// State returns a copy of the current selection
func (s *Store) State() model.SelectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// AddQueue appends a queue to the selection
func (s *Store) AddQueue(id model.QueueID) (model.SelectionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := add(s.state.Queues, id, model.MaxQueues, kindQueue, s.catalog.HasQueue)
	if err != nil {
		return s.state.Clone(), err
	}
	s.state.Queues = next
	return s.state.Clone(), s.persist(KeyQueues, next)
}

// RemoveQueue drops a queue from the selection
func (s *Store) RemoveQueue(id model.QueueID) (model.SelectionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := remove(s.state.Queues, id, kindQueue)
	if err != nil {
		return s.state.Clone(), err
	}
	s.state.Queues = next
	return s.state.Clone(), s.persist(KeyQueues, next)
}

// AddMetric appends a metric to the selection
func (s *Store) AddMetric(id model.MetricID) (model.SelectionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := add(s.state.Metrics, id, model.MaxMetrics, kindMetric, s.catalog.HasMetric)
	if err != nil {
		return s.state.Clone(), err
	}
	s.state.Metrics = next
	return s.state.Clone(), s.persist(KeyMetrics, next)
}

// RemoveMetric drops a metric from the selection
func (s *Store) RemoveMetric(id model.MetricID) (model.SelectionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := remove(s.state.Metrics, id, kindMetric)
	if err != nil {
		return s.state.Clone(), err
	}
	s.state.Metrics = next
	return s.state.Clone(), s.persist(KeyMetrics, next)
}

// ReplaceQueues swaps in a whole new queue list after validating it
func (s *Store) ReplaceQueues(ids []model.QueueID) (model.SelectionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := validate(ids, model.MaxQueues, kindQueue, s.catalog.HasQueue)
	if err != nil {
		return s.state.Clone(), err
	}
	s.state.Queues = next
	return s.state.Clone(), s.persist(KeyQueues, next)
}

// ReplaceMetrics swaps in a whole new metric list after validating it
func (s *Store) ReplaceMetrics(ids []model.MetricID) (model.SelectionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := validate(ids, model.MaxMetrics, kindMetric, s.catalog.HasMetric)
	if err != nil {
		return s.state.Clone(), err
	}
	s.state.Metrics = next
	return s.state.Clone(), s.persist(KeyMetrics, next)
}

// Reset erases the persisted selection and returns to the defaults
func (s *Store) Reset() (model.SelectionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = s.catalog.DefaultSelection()

	var firstErr error
	for _, key := range []string{KeyQueues, KeyMetrics} {
		if err := s.storage.Remove(key); err != nil && firstErr == nil {
			firstErr = barerrors.PersistenceFailed(err, key)
		}
	}
	if firstErr != nil {
		s.logger.Warn("selection reset not persisted", "error", firstErr)
	}
	return s.state.Clone(), firstErr
}

func (s *Store) read() model.SelectionState {
	defaults := s.catalog.DefaultSelection()
	return model.SelectionState{
		Queues:  readList(s, KeyQueues, model.MaxQueues, s.catalog.HasQueue, defaults.Queues),
		Metrics: readList(s, KeyMetrics, model.MaxMetrics, s.catalog.HasMetric, defaults.Metrics),
	}
}

func (s *Store) persist(key string, value any) error {
	if err := kvstore.SaveJSON(s.storage, key, value); err != nil {
		s.logger.Warn("selection kept in memory only", "key", key, "error", err)
		return err
	}
	s.logger.Debug("selection saved", "key", key)
	return nil
}
