package streams

import (
	"context"
	"sync"
	"time"
)

// BatchQueue is an unbounded FIFO hand-off between one producer and many consumers.
// Push never blocks; Pop blocks for at most its timeout. Memory grows without
// limit if consumers fall behind, which is visible through the queue depth gauge.
type BatchQueue[T any] struct {
	mu     sync.Mutex
	items  []T
	closed bool

	// signal is closed and replaced on every Push and on Close, waking all waiters.
	signal chan struct{}
}

func NewBatchQueue[T any]() *BatchQueue[T] {
	return &BatchQueue[T]{signal: make(chan struct{})}
}

// Push appends item. Items pushed after Close are dropped.
func (queue *BatchQueue[T]) Push(item T) {
	queue.mu.Lock()
	defer queue.mu.Unlock()

	if queue.closed {
		metricQueueDroppedTotal.Inc()
		return
	}
	queue.items = append(queue.items, item)
	metricQueueDepth.Set(float64(len(queue.items)))
	queue.wakeLocked()
}

// Pop removes the oldest item, waiting up to timeout for one to arrive.
// It reports false on timeout, ctx cancellation, or once the queue is closed.
func (queue *BatchQueue[T]) Pop(ctx context.Context, timeout time.Duration) (T, bool) {
	var zero T
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		queue.mu.Lock()
		if len(queue.items) > 0 {
			item := queue.items[0]
			queue.items[0] = zero
			queue.items = queue.items[1:]
			if len(queue.items) == 0 {
				queue.items = nil
			}
			metricQueueDepth.Set(float64(len(queue.items)))
			queue.mu.Unlock()
			return item, true
		}
		if queue.closed {
			queue.mu.Unlock()
			return zero, false
		}
		signal := queue.signal
		queue.mu.Unlock()

		select {
		case <-signal:
		case <-timer.C:
			return zero, false
		case <-ctx.Done():
			return zero, false
		}
	}
}

// Close wakes every waiter. Items still queued are abandoned.
func (queue *BatchQueue[T]) Close() {
	queue.mu.Lock()
	defer queue.mu.Unlock()

	if queue.closed {
		return
	}
	queue.closed = true
	if n := len(queue.items); n > 0 {
		metricQueueDroppedTotal.Add(float64(n))
	}
	queue.items = nil
	metricQueueDepth.Set(0)
	queue.wakeLocked()
}

func (queue *BatchQueue[T]) Closed() bool {
	queue.mu.Lock()
	defer queue.mu.Unlock()
	return queue.closed
}

func (queue *BatchQueue[T]) Len() int {
	queue.mu.Lock()
	defer queue.mu.Unlock()
	return len(queue.items)
}

func (queue *BatchQueue[T]) wakeLocked() {
	close(queue.signal)
	queue.signal = make(chan struct{})
}
