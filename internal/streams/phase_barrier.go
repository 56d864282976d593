package streams

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrBarrierBroken is returned to every party of a round that was aborted.
var ErrBarrierBroken = errors.New("phase barrier broken")

const (
	roundCompleted = "completed"
	roundForced    = "forced"
	roundBroken    = "broken"
)

// Round describes one barrier release.
type Round struct {
	Number  uint64
	Arrived int
	// Forced is set when the round deadline released the parties present
	// before every worker arrived.
	Forced bool
}

// ReleaseAction runs once per completed round, after the last arrival and
// before any party returns from Await.
type ReleaseAction func(round Round)

// generation is the per-round token. A party only acts on the generation it
// arrived in, so a late arrival can never release or break a newer round.
type generation struct {
	done   chan struct{}
	broken bool
	round  Round
}

// PhaseBarrier is a reusable rendezvous for a fixed number of parties.
//
// With a zero round timeout a round completes only when every party has
// arrived. With a positive timeout, the first party that has waited longer
// than it releases the round with the parties present; absent parties
// join the next round.
type PhaseBarrier struct {
	parties      int
	action       ReleaseAction
	roundTimeout time.Duration

	mu        sync.Mutex
	arrived   int
	completed uint64
	current   *generation
}

func NewPhaseBarrier(parties int, action ReleaseAction, roundTimeout time.Duration) *PhaseBarrier {
	if action == nil {
		action = func(Round) {}
	}
	barrier := &PhaseBarrier{
		parties:      parties,
		action:       action,
		roundTimeout: roundTimeout,
	}
	barrier.current = barrier.newGenerationLocked()
	return barrier
}

// Await blocks until the current round is released. Cancelling ctx while
// waiting breaks the round for every party in it. A party whose round was
// already released when ctx fires still gets the round.
func (barrier *PhaseBarrier) Await(ctx context.Context) (Round, error) {
	gen, tripped := barrier.arrive()
	if tripped {
		return gen.round, nil
	}

	var deadline <-chan time.Time
	if barrier.roundTimeout > 0 {
		timer := time.NewTimer(barrier.roundTimeout)
		defer timer.Stop()
		deadline = timer.C
	}

	select {
	case <-gen.done:
	case <-ctx.Done():
		barrier.breakGeneration(gen)
	case <-deadline:
		barrier.forceTrip(gen)
	}

	<-gen.done
	if gen.broken {
		return Round{}, ErrBarrierBroken
	}
	return gen.round, nil
}

// Break aborts the current round. Parties waiting in it get ErrBarrierBroken.
func (barrier *PhaseBarrier) Break() {
	barrier.mu.Lock()
	defer barrier.mu.Unlock()
	barrier.breakLocked()
}

// Completed returns the number of rounds released so far.
func (barrier *PhaseBarrier) Completed() uint64 {
	barrier.mu.Lock()
	defer barrier.mu.Unlock()
	return barrier.completed
}

// Waiting returns the number of parties parked in the current round.
func (barrier *PhaseBarrier) Waiting() int {
	barrier.mu.Lock()
	defer barrier.mu.Unlock()
	return barrier.arrived
}

func (barrier *PhaseBarrier) Parties() int {
	return barrier.parties
}

func (barrier *PhaseBarrier) arrive() (*generation, bool) {
	barrier.mu.Lock()
	defer barrier.mu.Unlock()

	gen := barrier.current
	barrier.arrived++
	if barrier.arrived < barrier.parties {
		return gen, false
	}
	barrier.tripLocked(false)
	return gen, true
}

func (barrier *PhaseBarrier) forceTrip(gen *generation) {
	barrier.mu.Lock()
	defer barrier.mu.Unlock()
	if gen != barrier.current {
		return
	}
	barrier.tripLocked(true)
}

func (barrier *PhaseBarrier) breakGeneration(gen *generation) {
	barrier.mu.Lock()
	defer barrier.mu.Unlock()
	if gen != barrier.current {
		return
	}
	barrier.breakLocked()
}

// tripLocked releases the current generation. The action runs while the lock
// is held, so it never overlaps itself and no party of the next round can
// arrive before it returns. The generation advances even if the action panics.
func (barrier *PhaseBarrier) tripLocked(forced bool) {
	gen := barrier.current
	gen.round.Arrived = barrier.arrived
	gen.round.Forced = forced

	defer func() {
		barrier.completed++
		barrier.current = barrier.newGenerationLocked()
		close(gen.done)
	}()

	outcome := roundCompleted
	if forced {
		outcome = roundForced
	}
	metricRoundsTotal.WithLabelValues(outcome).Inc()

	barrier.action(gen.round)
}

func (barrier *PhaseBarrier) breakLocked() {
	gen := barrier.current
	gen.broken = true
	close(gen.done)
	barrier.current = barrier.newGenerationLocked()
	metricRoundsTotal.WithLabelValues(roundBroken).Inc()
}

// newGenerationLocked resets the arrival count; the round number is the next
// one to complete, so a broken round's number is reused.
func (barrier *PhaseBarrier) newGenerationLocked() *generation {
	barrier.arrived = 0
	return &generation{
		done:  make(chan struct{}),
		round: Round{Number: barrier.completed + 1},
	}
}
