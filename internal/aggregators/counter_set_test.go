package aggregators

import (
	"sync"
	"testing"

	"log-stats/internal/models"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterSet_ConcurrentIncrementsAreNotLost(t *testing.T) {
	t.Parallel()

	counters := NewCounterSet()

	const workers = 8
	const total = 1000
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := w; i < total; i += workers {
				counters.Apply("/login", models.StatusSuccess)
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, int64(total), counters.URLCount("/login"))
	assert.Equal(t, int64(total), counters.Total())
	assert.Equal(t, int64(total), counters.Stats().Success2xx)
}

func TestCounterSet_Apply_Classification(t *testing.T) {
	t.Parallel()

	counters := NewCounterSet()
	counters.Apply("/login", models.StatusSuccess)
	counters.Apply("/pay", models.StatusServerError)
	counters.Apply("/pay", models.StatusServerError)
	counters.Apply("/home", models.StatusClientError)
	counters.Apply("/moved", models.StatusOther)

	stats := counters.Stats()

	assert.Equal(t, int64(5), stats.TotalProcessedLogs)
	assert.Equal(t, int64(1), stats.Success2xx)
	assert.Equal(t, int64(1), stats.Errors4xx)
	assert.Equal(t, int64(2), stats.Errors5xx)
	assert.Equal(t, int64(1), stats.OtherStatus)
	assert.Equal(t, map[string]int64{"/pay": 2}, stats.URLs5xx)
	assert.Equal(t, map[string]int64{"/home": 1}, stats.URLs4xx)
	assert.Equal(t, map[string]int64{"/login": 1, "/pay": 2, "/home": 1, "/moved": 1}, stats.URLCounts())
	assert.Equal(t, "40.00", stats.ErrorRatePercent.String())

	assert.LessOrEqual(t, stats.Success2xx+stats.Errors4xx+stats.Errors5xx, stats.TotalProcessedLogs)
	assert.Equal(t, stats.TotalProcessedLogs, counters.URLCountSum())
}

func TestCounterSet_Drain_ResetsEveryCounter(t *testing.T) {
	t.Parallel()

	counters := NewCounterSet()
	counters.Apply("/pay", models.StatusServerError)
	counters.Apply("/home", models.StatusClientError)

	drained := counters.Drain()
	require.Equal(t, int64(2), drained.TotalProcessedLogs)

	assert.Zero(t, counters.Total())
	after := counters.Stats()
	assert.Zero(t, after.TotalProcessedLogs)
	assert.Zero(t, after.Errors4xx)
	assert.Zero(t, after.Errors5xx)
	assert.Empty(t, after.URLStats, "zeroed urls must not be reported")
	assert.Empty(t, after.URLs4xx)
	assert.Empty(t, after.URLs5xx)
	assert.Equal(t, models.Percent(0), after.ErrorRatePercent)

	counters.Apply("/pay", models.StatusSuccess)
	assert.Equal(t, int64(1), counters.URLCount("/pay"))
	assert.Empty(t, counters.Stats().URLs5xx)
}

func TestCounterSet_Drain_ConcurrentWithWritersLosesNothing(t *testing.T) {
	t.Parallel()

	counters := NewCounterSet()

	const writes = 5000
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < writes; i++ {
			counters.Apply("/a", models.StatusServerError)
		}
	}()

	var drainedTotal, drained5xx int64
	for {
		stats := counters.Drain()
		drainedTotal += stats.TotalProcessedLogs
		drained5xx += stats.Errors5xx

		select {
		case <-done:
			stats = counters.Drain()
			drainedTotal += stats.TotalProcessedLogs
			drained5xx += stats.Errors5xx
			assert.Equal(t, int64(writes), drainedTotal)
			assert.Equal(t, int64(writes), drained5xx)
			return
		default:
		}
	}
}

func TestCounterSet_DrainCountsSplitRecords(t *testing.T) {
	counters := NewCounterSet()
	before := testutil.ToFloat64(metricWindowSplitRecordsTotal)

	// status counted after its total was already drained
	counters.status5xx.Add(1)
	counters.status2xx.Add(1)
	stats := counters.Drain()

	assert.Zero(t, stats.TotalProcessedLogs)
	assert.Zero(t, stats.OtherStatus)
	assert.Equal(t, float64(2), testutil.ToFloat64(metricWindowSplitRecordsTotal)-before)

	counters.status2xx.Add(1)
	counters.Stats()
	assert.Equal(t, float64(2), testutil.ToFloat64(metricWindowSplitRecordsTotal)-before, "plain reads are not counted")
}
