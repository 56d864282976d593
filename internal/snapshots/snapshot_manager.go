package snapshots

import (
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"log-stats/internal/aggregators"
	"log-stats/internal/models"
	"log-stats/internal/shared/loggers"
	"log-stats/internal/shared/svcerrors"
	"log-stats/internal/shared/ulid"
	"log-stats/internal/streams"
)

const defaultSubscriberBuffer = 8

// Options configures history retention and the periodic cumulative report.
type Options struct {
	MaxHistory               int
	CumulativeReportInterval time.Duration
	TopURLs                  int
}

// SnapshotManager turns each released round into a published snapshot.
// OnRoundComplete is the phase barrier's release action, so it never runs
// concurrently with itself and every worker is parked while it runs.
type SnapshotManager struct {
	aggregator aggregators.StatsAggregator
	history    *HistoryBuffer
	opts       Options
	logger     loggers.Logger
	now        func() time.Time

	startedAt            time.Time
	lastCumulativeReport time.Time
	latest               atomic.Pointer[models.Snapshot]

	subsMu    sync.Mutex
	subs      map[uint64]chan *models.Snapshot
	nextSubID uint64
}

// Option customizes a SnapshotManager.
type Option func(*SnapshotManager)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *SnapshotManager) { m.now = now }
}

func NewSnapshotManager(aggregator aggregators.StatsAggregator, opts Options, logger loggers.Logger, options ...Option) *SnapshotManager {
	m := &SnapshotManager{
		aggregator: aggregator,
		history:    NewHistoryBuffer(opts.MaxHistory),
		opts:       opts,
		logger:     logger,
		now:        time.Now,
		subs:       make(map[uint64]chan *models.Snapshot),
	}
	for _, option := range options {
		option(m)
	}

	m.startedAt = m.now().UTC()
	m.latest.Store(models.NewEmptySnapshot(m.startedAt))
	return m
}

// OnRoundComplete drains the windowed counters into a snapshot, emits the
// cumulative report when due, appends to history and publishes the result.
func (m *SnapshotManager) OnRoundComplete(round streams.Round) {
	defer func() {
		if r := recover(); r != nil {
			svcErr := svcerrors.NewInternalErrorPanic(svcerrors.PanicError(r))
			m.logger.Error().
				Err(svcErr.Cause).
				Str(loggers.FieldErrorCode, svcErr.Code).
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Uint64(loggers.FieldRound, round.Number).
				Msg("snapshot panic recovered")
		}
	}()

	now := m.now().UTC()
	snapshot := &models.Snapshot{
		ID:           ulid.NewULIDAt(now),
		Round:        round.Number,
		Timestamp:    now,
		TrafficStats: m.aggregator.DrainWindow(),
	}

	// The first released round always reports.
	if m.lastCumulativeReport.IsZero() || now.Sub(m.lastCumulativeReport) >= m.opts.CumulativeReportInterval {
		m.reportCumulative(now)
		m.lastCumulativeReport = now
	}

	if m.history.Append(snapshot) {
		metricHistoryEvictedTotal.Inc()
	}
	m.latest.Store(snapshot)
	m.publish(snapshot)

	metricSnapshotPublishedTotal.Inc()
	metricSnapshotRecords.Observe(float64(snapshot.TotalProcessedLogs))
	m.logger.Info().
		Str(loggers.FieldSnapshotID, snapshot.ID).
		Uint64(loggers.FieldRound, round.Number).
		Int("workers_arrived", round.Arrived).
		Bool("forced", round.Forced).
		Int64("total", snapshot.TotalProcessedLogs).
		Str("error_rate", snapshot.ErrorRatePercent.String()).
		Msg("snapshot published")
}

func (m *SnapshotManager) reportCumulative(now time.Time) {
	cumulative := m.aggregator.Cumulative()

	top := cumulative.TopURLs(m.opts.TopURLs)
	topURLs := make([]string, 0, len(top))
	for _, stat := range top {
		topURLs = append(topURLs, stat.URL)
	}

	metricCumulativeReportTotal.Inc()
	metricCumulativeErrorRate.Set(float64(cumulative.ErrorRatePercent))
	m.logger.Info().
		Time("since", m.startedAt).
		Time("at", now).
		Int64("total", cumulative.TotalProcessedLogs).
		Int64("errors_5xx", cumulative.Errors5xx).
		Str("error_rate", cumulative.ErrorRatePercent.String()).
		Strs("top_urls", topURLs).
		Msg("cumulative report")
}

// Latest returns the most recent snapshot, or an empty one before the first round.
func (m *SnapshotManager) Latest() *models.Snapshot {
	return m.latest.Load()
}

// History returns up to limit of the newest snapshots, oldest first.
func (m *SnapshotManager) History(limit int) []*models.Snapshot {
	return m.history.List(limit)
}

// Cumulative computes the since-start statistics on demand.
func (m *SnapshotManager) Cumulative() *models.CumulativeStats {
	return &models.CumulativeStats{
		Since:        m.startedAt,
		Timestamp:    m.now().UTC(),
		TrafficStats: m.aggregator.Cumulative(),
	}
}

func (m *SnapshotManager) StartedAt() time.Time {
	return m.startedAt
}

// Subscribe registers for every snapshot published from now on. A subscriber
// that falls behind misses snapshots rather than stalling the barrier.
// The returned func unsubscribes and closes the channel.
func (m *SnapshotManager) Subscribe() (<-chan *models.Snapshot, func()) {
	m.subsMu.Lock()
	defer m.subsMu.Unlock()

	id := m.nextSubID
	m.nextSubID++
	ch := make(chan *models.Snapshot, defaultSubscriberBuffer)
	m.subs[id] = ch
	metricSubscribers.Inc()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.subsMu.Lock()
			defer m.subsMu.Unlock()
			delete(m.subs, id)
			close(ch)
			metricSubscribers.Dec()
		})
	}
}

func (m *SnapshotManager) publish(snapshot *models.Snapshot) {
	m.subsMu.Lock()
	defer m.subsMu.Unlock()

	for _, ch := range m.subs {
		select {
		case ch <- snapshot:
		default:
			metricSubscriberDroppedTotal.Inc()
		}
	}
}
