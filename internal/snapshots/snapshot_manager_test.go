package snapshots_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"log-stats/internal/aggregators"
	aggregatormocks "log-stats/internal/aggregators/mocks"
	"log-stats/internal/models"
	"log-stats/internal/shared/loggers"
	"log-stats/internal/snapshots"
	"log-stats/internal/streams"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 12, 28, 18, 0, 0, 0, time.UTC)}
}

var defaultOptions = snapshots.Options{
	MaxHistory:               20,
	CumulativeReportInterval: 2 * time.Minute,
	TopURLs:                  5,
}

func realAggregator(t *testing.T) aggregators.StatsAggregator {
	t.Helper()
	grouper, err := aggregators.NewURLGrouper(nil)
	require.NoError(t, err)
	return aggregators.NewStatsAggregator(aggregators.NewRecordParser(), grouper)
}

func TestSnapshotManager_LatestBeforeFirstRoundIsEmpty(t *testing.T) {
	t.Parallel()

	clock := newClock()
	manager := snapshots.NewSnapshotManager(realAggregator(t), defaultOptions, loggers.Nop(), snapshots.WithClock(clock.Now))

	latest := manager.Latest()

	require.NotNil(t, latest)
	assert.Zero(t, latest.TotalProcessedLogs)
	assert.Equal(t, models.Percent(0), latest.ErrorRatePercent)
	assert.Equal(t, clock.Now(), latest.Timestamp)
	assert.Empty(t, manager.History(0))
}

func TestSnapshotManager_OnRoundComplete_PublishesAndResetsWindow(t *testing.T) {
	t.Parallel()

	aggregator := realAggregator(t)
	manager := snapshots.NewSnapshotManager(aggregator, defaultOptions, loggers.Nop(), snapshots.WithClock(newClock().Now))

	ctx := context.Background()
	require.NoError(t, aggregator.Record(ctx, []byte(`{"url":"/pay","status":500}`)))
	require.NoError(t, aggregator.Record(ctx, []byte(`{"url":"/login","status":200}`)))

	manager.OnRoundComplete(streams.Round{Number: 1, Arrived: 1})

	latest := manager.Latest()
	assert.Equal(t, uint64(1), latest.Round)
	assert.NotEmpty(t, latest.ID)
	assert.Equal(t, int64(2), latest.TotalProcessedLogs)
	assert.Equal(t, "50.00", latest.ErrorRatePercent.String())
	assert.Equal(t, []*models.Snapshot{latest}, manager.History(0))

	assert.Zero(t, aggregator.WindowTotal(), "windowed total is 0 until the next record")
	assert.Equal(t, int64(2), aggregator.CumulativeTotal(), "cumulative is not reset")
	assert.Equal(t, int64(2), manager.Cumulative().TotalProcessedLogs)

	manager.OnRoundComplete(streams.Round{Number: 2, Arrived: 1})
	assert.Zero(t, manager.Latest().TotalProcessedLogs)
	assert.Equal(t, models.Percent(0), manager.Latest().ErrorRatePercent)
	assert.Equal(t, uint64(2), manager.Latest().Round)
}

func TestSnapshotManager_HistoryIsBounded(t *testing.T) {
	t.Parallel()

	opts := defaultOptions
	opts.MaxHistory = 3
	manager := snapshots.NewSnapshotManager(realAggregator(t), opts, loggers.Nop(), snapshots.WithClock(newClock().Now))

	for r := uint64(1); r <= 5; r++ {
		manager.OnRoundComplete(streams.Round{Number: r})
	}

	assert.Equal(t, []uint64{3, 4, 5}, rounds(manager.History(0)))
	assert.Equal(t, []uint64{5}, rounds(manager.History(1)))
}

func TestSnapshotManager_CumulativeReportEveryInterval(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reports := 0
	aggregator := aggregatormocks.NewMockStatsAggregator(ctrl)
	aggregator.EXPECT().DrainWindow().Return(models.TrafficStats{}).Times(5)
	aggregator.EXPECT().Cumulative().DoAndReturn(func() models.TrafficStats {
		reports++
		return models.NewTrafficStats(
			models.StatusTotals{Total: 3, Errors5xx: 1, Success2xx: 2},
			map[string]int64{"/a": 2, "/b": 1}, nil, map[string]int64{"/b": 1},
		)
	}).Times(3)

	clock := newClock()
	manager := snapshots.NewSnapshotManager(aggregator, defaultOptions, loggers.Nop(), snapshots.WithClock(clock.Now))

	tests := []struct {
		step        time.Duration
		wantReports int
	}{
		{step: time.Second, wantReports: 1},      // first round always reports
		{step: time.Minute, wantReports: 1},      // 1m since last report
		{step: time.Minute, wantReports: 2},      // 2m since last report
		{step: 90 * time.Second, wantReports: 2}, // 1m30s since last report
		{step: 30 * time.Second, wantReports: 3}, // 2m since last report
	}
	for i, tt := range tests {
		clock.Advance(tt.step)
		manager.OnRoundComplete(streams.Round{Number: uint64(i + 1)})
		assert.Equal(t, tt.wantReports, reports, "round %d", i+1)
	}
}

func TestSnapshotManager_FirstRoundReportsCumulative(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	aggregator := aggregatormocks.NewMockStatsAggregator(ctrl)
	aggregator.EXPECT().DrainWindow().Return(models.TrafficStats{})
	aggregator.EXPECT().Cumulative().Return(models.TrafficStats{})

	opts := defaultOptions
	opts.CumulativeReportInterval = time.Hour
	manager := snapshots.NewSnapshotManager(aggregator, opts, loggers.Nop(), snapshots.WithClock(newClock().Now))

	manager.OnRoundComplete(streams.Round{Number: 1})
}

func TestSnapshotManager_Cumulative(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	stats := models.NewTrafficStats(models.StatusTotals{Total: 4, Errors4xx: 4}, map[string]int64{"/x": 4}, map[string]int64{"/x": 4}, nil)
	aggregator := aggregatormocks.NewMockStatsAggregator(ctrl)
	aggregator.EXPECT().Cumulative().Return(stats)

	clock := newClock()
	manager := snapshots.NewSnapshotManager(aggregator, defaultOptions, loggers.Nop(), snapshots.WithClock(clock.Now))
	start := clock.Now()
	clock.Advance(time.Hour)

	cumulative := manager.Cumulative()

	assert.Equal(t, start, cumulative.Since)
	assert.Equal(t, start.Add(time.Hour), cumulative.Timestamp)
	assert.Equal(t, stats, cumulative.TrafficStats)
	assert.Equal(t, start, manager.StartedAt())
}

func TestSnapshotManager_RecoversPanickingDrain(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	aggregator := aggregatormocks.NewMockStatsAggregator(ctrl)
	aggregator.EXPECT().DrainWindow().DoAndReturn(func() models.TrafficStats { panic("boom") })

	manager := snapshots.NewSnapshotManager(aggregator, defaultOptions, loggers.Nop())

	assert.NotPanics(t, func() { manager.OnRoundComplete(streams.Round{Number: 1}) })
	assert.Zero(t, manager.Latest().Round, "latest is unchanged")
}

func TestSnapshotManager_Subscribe(t *testing.T) {
	t.Parallel()

	manager := snapshots.NewSnapshotManager(realAggregator(t), defaultOptions, loggers.Nop())
	updates, cancel := manager.Subscribe()

	manager.OnRoundComplete(streams.Round{Number: 1})

	select {
	case snapshot := <-updates:
		assert.Equal(t, uint64(1), snapshot.Round)
	case <-time.After(time.Second):
		t.Fatal("subscriber got no snapshot")
	}

	cancel()
	cancel()
	_, open := <-updates
	assert.False(t, open, "channel closed on cancel")

	assert.NotPanics(t, func() { manager.OnRoundComplete(streams.Round{Number: 2}) })
}

func TestSnapshotManager_SlowSubscriberDoesNotBlock(t *testing.T) {
	t.Parallel()

	manager := snapshots.NewSnapshotManager(realAggregator(t), defaultOptions, loggers.Nop())
	updates, cancel := manager.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for r := uint64(1); r <= 50; r++ {
			manager.OnRoundComplete(streams.Round{Number: r})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publishing blocked on a subscriber that never reads")
	}
	first := <-updates
	assert.Equal(t, uint64(1), first.Round)
}
