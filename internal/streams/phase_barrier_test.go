package streams

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitUntil(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, time.Second, time.Millisecond)
}

func TestPhaseBarrier_ActionRunsOncePerRoundBeforeRelease(t *testing.T) {
	t.Parallel()

	const parties = 4
	const rounds = 25

	var actions atomic.Int64
	var running atomic.Int32
	var overlap atomic.Bool
	barrier := NewPhaseBarrier(parties, func(round Round) {
		if running.Add(1) > 1 {
			overlap.Store(true)
		}
		assert.Equal(t, parties, round.Arrived)
		assert.False(t, round.Forced)
		actions.Add(1)
		running.Add(-1)
	}, 0)

	var wg sync.WaitGroup
	for p := 0; p < parties; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := 1; r <= rounds; r++ {
				round, err := barrier.Await(context.Background())
				if !assert.NoError(t, err) {
					return
				}
				assert.Equal(t, uint64(r), round.Number)
				// the action of this round has already run
				assert.GreaterOrEqual(t, actions.Load(), int64(r))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(rounds), actions.Load())
	assert.Equal(t, uint64(rounds), barrier.Completed())
	assert.False(t, overlap.Load(), "release actions must not overlap")
}

func TestPhaseBarrier_CancelBreaksRoundForAllWaiters(t *testing.T) {
	t.Parallel()

	var actions atomic.Int64
	barrier := NewPhaseBarrier(3, func(Round) { actions.Add(1) }, 0)

	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 2)
	go func() {
		_, err := barrier.Await(ctx)
		errs <- err
	}()
	go func() {
		_, err := barrier.Await(context.Background())
		errs <- err
	}()
	waitUntil(t, func() bool { return barrier.Waiting() == 2 })

	cancel()

	for i := 0; i < 2; i++ {
		select {
		case err := <-errs:
			assert.ErrorIs(t, err, ErrBarrierBroken)
		case <-time.After(time.Second):
			t.Fatal("waiter was not released after cancellation")
		}
	}
	assert.Zero(t, actions.Load())
	assert.Zero(t, barrier.Waiting())

	// a fresh generation can still complete
	var wg sync.WaitGroup
	for p := 0; p < 3; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			round, err := barrier.Await(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, uint64(1), round.Number, "a broken round does not consume a number")
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(1), actions.Load())
}

func TestPhaseBarrier_BreakReleasesWaiters(t *testing.T) {
	t.Parallel()

	barrier := NewPhaseBarrier(2, nil, 0)
	errs := make(chan error, 1)
	go func() {
		_, err := barrier.Await(context.Background())
		errs <- err
	}()
	waitUntil(t, func() bool { return barrier.Waiting() == 1 })

	barrier.Break()

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, ErrBarrierBroken)
	case <-time.After(time.Second):
		t.Fatal("waiter was not released by Break")
	}
}

func TestPhaseBarrier_SingleParty(t *testing.T) {
	t.Parallel()

	var actions atomic.Int64
	barrier := NewPhaseBarrier(1, func(Round) { actions.Add(1) }, 0)

	for i := 1; i <= 3; i++ {
		round, err := barrier.Await(context.Background())
		require.NoError(t, err)
		assert.Equal(t, uint64(i), round.Number)
	}
	assert.Equal(t, int64(3), actions.Load())
}

func TestPhaseBarrier_WithoutDeadlineWaitsForEveryParty(t *testing.T) {
	t.Parallel()

	barrier := NewPhaseBarrier(2, nil, 0)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := barrier.Await(ctx)

	assert.ErrorIs(t, err, ErrBarrierBroken)
	assert.Zero(t, barrier.Completed())
}

func TestPhaseBarrier_RoundDeadlineForcesRelease(t *testing.T) {
	t.Parallel()

	var released []Round
	var mu sync.Mutex
	barrier := NewPhaseBarrier(3, func(round Round) {
		mu.Lock()
		defer mu.Unlock()
		released = append(released, round)
	}, 200*time.Millisecond)

	var wg sync.WaitGroup
	for p := 0; p < 2; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			round, err := barrier.Await(context.Background())
			assert.NoError(t, err)
			assert.True(t, round.Forced)
			assert.Equal(t, 2, round.Arrived)
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, released, 1, "both waiters hit the deadline but the round is released once")
	assert.Equal(t, uint64(1), released[0].Number)
	assert.Zero(t, barrier.Waiting())
}
