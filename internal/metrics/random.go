package metrics

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/prodbar/internal/model"
)

// valueRange is an integer range [min, min+span)
type valueRange struct {
	key  string
	min  int
	span int
}

// Simulated reading ranges, keyed by metric ValueKey
var ranges = []valueRange{
	{key: "oWaiting", min: 0, span: 15},
	{key: "oInteracting", min: 0, span: 10},
	{key: "oOnQueueUsers", min: 3, span: 15},
	{key: "oOffQueueUsers", min: 0, span: 5},
	{key: "oLongestWaiting", min: 0, span: 600},
	{key: "asa", min: 10, span: 80},
	{key: "aht", min: 180, span: 300},
	{key: "avgWait", min: 10, span: 120},
	{key: "answerPercent", min: 80, span: 20},
	{key: "abandonPercent", min: 0, span: 16},
	{key: "serviceLevelPercent", min: 70, span: 25},
}

// RandomSource simulates queue readings
type RandomSource struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewRandomSource creates a source seeded from the clock
func NewRandomSource() *RandomSource {
	seed := uint64(time.Now().UnixNano())
	return NewSeededRandomSource(seed)
}

// NewSeededRandomSource creates a source with a fixed seed, for repeatable output
func NewSeededRandomSource(seed uint64) *RandomSource {
	return &RandomSource{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now: time.Now,
	}
}

// Pull returns one row per queue with every simulated reading filled in
func (s *RandomSource) Pull(queues []model.QueueID) model.MetricsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([]model.QueueMetrics, 0, len(queues))
	for _, q := range queues {
		values := make(map[string]float64, len(ranges))
		for _, r := range ranges {
			values[r.key] = float64(r.min + s.rng.IntN(r.span))
		}
		rows = append(rows, model.QueueMetrics{Queue: q, Values: values})
	}

	return model.MetricsSnapshot{
		ID:      uuid.NewString(),
		TakenAt: s.now(),
		Rows:    rows,
	}
}
