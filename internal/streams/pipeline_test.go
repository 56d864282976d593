package streams_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"log-stats/internal/aggregators"
	"log-stats/internal/ingestors"
	ingestormocks "log-stats/internal/ingestors/mocks"
	"log-stats/internal/models"
	"log-stats/internal/shared/loggers"
	"log-stats/internal/sources"
	"log-stats/internal/streams"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newAggregator(t *testing.T) aggregators.StatsAggregator {
	t.Helper()
	grouper, err := aggregators.NewURLGrouper(nil)
	require.NoError(t, err)
	return aggregators.NewStatsAggregator(aggregators.NewRecordParser(), grouper)
}

func scenarioRecords() [][]byte {
	var records [][]byte
	add := func(record string, n int) {
		for i := 0; i < n; i++ {
			records = append(records, []byte(record))
		}
	}
	add(`{"url":"/login","status":200}`, 6)
	add(`{"url":"/pay","status":500}`, 2)
	add(`{"url":"/home","status":404}`, 2)
	return records
}

// drainOnRelease snapshots the windowed counters the way the snapshot manager does.
func drainOnRelease(aggregator aggregators.StatsAggregator) (streams.ReleaseAction, <-chan models.TrafficStats) {
	out := make(chan models.TrafficStats, 16)
	return func(streams.Round) {
		out <- aggregator.DrainWindow()
	}, out
}

func TestWorkerPool_SingleWorkerScenario(t *testing.T) {
	t.Parallel()

	aggregator := newAggregator(t)
	action, snapshots := drainOnRelease(aggregator)
	queue := streams.NewBatchQueue[*models.LogBatch]()
	barrier := streams.NewPhaseBarrier(1, action, 0)
	pool := streams.NewWorkerPool(queue, aggregator, barrier, 10*time.Millisecond, loggers.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- pool.RunWorker(ctx, 0) }()

	queue.Push(&models.LogBatch{BatchID: "b1", Records: scenarioRecords()})

	var snapshot models.TrafficStats
	select {
	case snapshot = <-snapshots:
	case <-time.After(2 * time.Second):
		t.Fatal("no round released")
	}
	cancel()
	require.NoError(t, <-done)

	assert.Equal(t, int64(10), snapshot.TotalProcessedLogs)
	assert.Equal(t, int64(6), snapshot.Success2xx)
	assert.Equal(t, int64(2), snapshot.Errors5xx)
	assert.Equal(t, int64(2), snapshot.Errors4xx)
	assert.Equal(t, map[string]int64{"/login": 6, "/pay": 2, "/home": 2}, snapshot.URLCounts())
	assert.Equal(t, "20.00", snapshot.ErrorRatePercent.String())

	assert.Zero(t, aggregator.WindowTotal(), "windowed counters reset after the snapshot")
	assert.Equal(t, int64(10), aggregator.CumulativeTotal())
}

func TestWorkerPool_IdleWorkersDoNotReachBarrier(t *testing.T) {
	t.Parallel()

	aggregator := newAggregator(t)
	action, snapshots := drainOnRelease(aggregator)
	queue := streams.NewBatchQueue[*models.LogBatch]()
	barrier := streams.NewPhaseBarrier(2, action, 0)
	pool := streams.NewWorkerPool(queue, aggregator, barrier, 5*time.Millisecond, loggers.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	for id := 0; id < 2; id++ {
		id := id
		go func() { _ = pool.RunWorker(ctx, id) }()
	}

	queue.Push(&models.LogBatch{BatchID: "only", Records: scenarioRecords()})
	require.Eventually(t, func() bool { return barrier.Waiting() == 1 }, time.Second, time.Millisecond)

	// the other worker keeps polling an empty queue and never arrives
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 1, barrier.Waiting())
	assert.Empty(t, snapshots)

	queue.Push(&models.LogBatch{BatchID: "second", Records: scenarioRecords()})
	select {
	case snapshot := <-snapshots:
		assert.Equal(t, int64(20), snapshot.TotalProcessedLogs)
	case <-time.After(2 * time.Second):
		t.Fatal("round did not complete once both workers processed a batch")
	}
}

func TestWorkerPool_RecoversPanickingBatch(t *testing.T) {
	t.Parallel()

	action, snapshots := drainOnRelease(newAggregator(t))
	queue := streams.NewBatchQueue[*models.LogBatch]()
	barrier := streams.NewPhaseBarrier(1, action, 0)
	pool := streams.NewWorkerPool(queue, panickingAggregator{}, barrier, 5*time.Millisecond, loggers.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = pool.RunWorker(ctx, 0) }()

	queue.Push(&models.LogBatch{BatchID: "boom"})

	select {
	case <-snapshots:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not reach the barrier after a panic")
	}
}

type panickingAggregator struct {
	aggregators.StatsAggregator
}

func (panickingAggregator) ProcessBatch(context.Context, *models.LogBatch) aggregators.BatchResult {
	panic("corrupted batch")
}

func TestPipeline_EndToEndAndStop(t *testing.T) {
	t.Parallel()

	aggregator := newAggregator(t)
	action, snapshots := drainOnRelease(aggregator)
	source := sources.NewMemorySource(64)
	queue := streams.NewBatchQueue[*models.LogBatch]()
	collector, err := ingestors.NewBatchCollector(source, queue, 10, 5*time.Millisecond, loggers.Nop())
	require.NoError(t, err)
	barrier := streams.NewPhaseBarrier(1, action, 0)
	pool := streams.NewWorkerPool(queue, aggregator, barrier, 5*time.Millisecond, loggers.Nop())
	pipeline := streams.NewPipeline(source, collector, queue, pool, barrier, loggers.Nop())

	pipeline.Start(context.Background())
	require.True(t, pipeline.Running())

	ctx := context.Background()
	for _, record := range scenarioRecords() {
		require.NoError(t, source.Publish(ctx, record))
	}
	// a partial batch that must never be counted
	for i := 0; i < 3; i++ {
		require.NoError(t, source.Publish(ctx, []byte(fmt.Sprintf(`{"url":"/tail%d","status":200}`, i))))
	}

	select {
	case snapshot := <-snapshots:
		assert.Equal(t, int64(10), snapshot.TotalProcessedLogs)
		assert.Equal(t, "20.00", snapshot.ErrorRatePercent.String())
	case <-time.After(2 * time.Second):
		t.Fatal("pipeline produced no snapshot")
	}

	require.NoError(t, pipeline.Stop())
	require.NoError(t, pipeline.Stop(), "stop is idempotent")
	assert.False(t, pipeline.Running())
	assert.Equal(t, int64(10), aggregator.CumulativeTotal())
	assert.ErrorIs(t, source.Publish(ctx, []byte("{}")), sources.ErrSourceClosed, "source is closed on stop")
}

func TestPipeline_StopAbortsWaitingWorkers(t *testing.T) {
	t.Parallel()

	aggregator := newAggregator(t)
	source := sources.NewMemorySource(64)
	queue := streams.NewBatchQueue[*models.LogBatch]()
	collector, err := ingestors.NewBatchCollector(source, queue, 1, 5*time.Millisecond, loggers.Nop())
	require.NoError(t, err)
	barrier := streams.NewPhaseBarrier(3, nil, 0)
	pool := streams.NewWorkerPool(queue, aggregator, barrier, time.Second, loggers.Nop())
	pipeline := streams.NewPipeline(source, collector, queue, pool, barrier, loggers.Nop())

	pipeline.Start(context.Background())
	require.NoError(t, source.Publish(context.Background(), []byte(`{"url":"/a","status":200}`)))
	require.Eventually(t, func() bool { return barrier.Waiting() == 1 }, time.Second, time.Millisecond)

	stopped := make(chan error, 1)
	go func() { stopped <- pipeline.Stop() }()

	select {
	case err := <-stopped:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("stop hung on a worker parked at the barrier")
	}
	assert.Zero(t, barrier.Completed())
	<-pipeline.Done()
}

func TestPipeline_CollectorFailureStopsWorkers(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	collectErr := errors.New("source lost")
	collector := ingestormocks.NewMockBatchCollector(ctrl)
	collector.EXPECT().Run(gomock.Any()).Return(collectErr)

	source := sources.NewMemorySource(8)
	queue := streams.NewBatchQueue[*models.LogBatch]()
	barrier := streams.NewPhaseBarrier(2, nil, 0)
	pool := streams.NewWorkerPool(queue, newAggregator(t), barrier, 5*time.Millisecond, loggers.Nop())
	pipeline := streams.NewPipeline(source, collector, queue, pool, barrier, loggers.Nop())

	pipeline.Start(context.Background())

	select {
	case <-pipeline.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("workers kept running after the collector failed")
	}
	assert.False(t, pipeline.Running())
	assert.ErrorIs(t, pipeline.Stop(), collectErr)
	assert.ErrorIs(t, source.Publish(context.Background(), []byte("{}")), sources.ErrSourceClosed)
}
