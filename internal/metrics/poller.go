package metrics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/singleflight"

	"github.com/ytget/prodbar/internal/model"
)

// DefaultInterval is the refresh period of the bar
const DefaultInterval = 3 * time.Second

// minInterval is the finest period cron.Every supports
const minInterval = time.Second

const refreshKey = "refresh"

// Poller pulls a Source on a schedule and hands each snapshot to a sink.
// Scheduled pulls and RefreshNow share one single-flight key, so two pulls
// never run at the same time.
type Poller struct {
	source   Source
	queues   func() []model.QueueID
	sink     func(model.MetricsSnapshot)
	interval time.Duration
	logger   *slog.Logger

	group singleflight.Group

	mu       sync.Mutex
	cron     *cron.Cron
	running  bool
	starting sync.WaitGroup
}

// NewPoller creates a poller. queues is asked for the current selection on
// every pull and sink receives every snapshot.
func NewPoller(source Source, queues func() []model.QueueID, sink func(model.MetricsSnapshot), interval time.Duration, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	if interval < minInterval {
		interval = DefaultInterval
	}
	return &Poller{
		source:   source,
		queues:   queues,
		sink:     sink,
		interval: interval,
		logger:   logger.With("component", "poller"),
	}
}

// Interval returns the refresh period
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Start pulls once and then keeps pulling every interval until Stop
func (p *Poller) Start() {
	logger := cronLogger{logger: p.logger}
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	c.Schedule(cron.Every(p.interval), cron.FuncJob(func() { p.RefreshNow() }))

	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.cron = c
	p.starting.Add(1)
	p.mu.Unlock()

	p.RefreshNow()

	p.mu.Lock()
	defer p.mu.Unlock()
	defer p.starting.Done()
	if p.cron != c {
		// stopped during the first pull
		return
	}
	c.Start()
	p.logger.Info("poller started", "interval", p.interval.String())
}

// Stop halts the schedule. The returned context is done once a pull that
// was already running, including the first pull of Start, has finished.
func (p *Poller) Stop() context.Context {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running || p.cron == nil {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return ctx
	}
	p.running = false
	stopped := p.cron.Stop()
	p.cron = nil
	p.logger.Info("poller stopped")

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		defer cancel()
		<-stopped.Done()
		p.starting.Wait()
	}()
	return ctx
}

// RefreshNow pulls immediately and delivers the snapshot. If a pull is
// already in flight it waits for that one and returns its snapshot.
func (p *Poller) RefreshNow() model.MetricsSnapshot {
	v, _, shared := p.group.Do(refreshKey, func() (any, error) {
		snapshot := p.source.Pull(p.queues())
		p.sink(snapshot)
		return snapshot, nil
	})
	snapshot := v.(model.MetricsSnapshot)
	p.logger.Debug("metrics refreshed", "snapshot", snapshot.ID, "queues", len(snapshot.Rows), "shared", shared)
	return snapshot
}

// cronLogger routes cron's logging to slog
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append([]any{"error", err}, keysAndValues...)...)
}
