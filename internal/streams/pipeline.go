package streams

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"log-stats/internal/ingestors"
	"log-stats/internal/models"
	"log-stats/internal/shared/loggers"
	"log-stats/internal/sources"
)

// Pipeline owns the collector goroutine and the worker goroutines and stops
// them together.
type Pipeline struct {
	source    sources.RecordSource
	collector ingestors.BatchCollector
	queue     *BatchQueue[*models.LogBatch]
	pool      *WorkerPool
	barrier   *PhaseBarrier
	logger    loggers.Logger

	running atomic.Bool
	cancel  context.CancelFunc
	done    chan struct{}
	runErr  error

	startOnce sync.Once
	stopOnce  sync.Once
	stopErr   error
}

func NewPipeline(source sources.RecordSource, collector ingestors.BatchCollector, queue *BatchQueue[*models.LogBatch], pool *WorkerPool, barrier *PhaseBarrier, logger loggers.Logger) *Pipeline {
	return &Pipeline{
		source:    source,
		collector: collector,
		queue:     queue,
		pool:      pool,
		barrier:   barrier,
		logger:    logger,
		done:      make(chan struct{}),
	}
}

// Start launches the collector and every worker. It does not block.
// If the collector fails, the shared context is cancelled and the workers exit.
func (p *Pipeline) Start(ctx context.Context) {
	p.startOnce.Do(func() {
		ctx, p.cancel = context.WithCancel(ctx)
		group, groupCtx := errgroup.WithContext(ctx)

		group.Go(func() error {
			return p.collector.Run(groupCtx)
		})
		for workerID := 0; workerID < p.pool.Size(); workerID++ {
			workerID := workerID
			group.Go(func() error {
				return p.pool.RunWorker(groupCtx, workerID)
			})
		}

		p.running.Store(true)
		p.logger.Info().Int("workers", p.pool.Size()).Msg("pipeline started")

		go func() {
			p.runErr = group.Wait()
			p.running.Store(false)
			if p.runErr != nil {
				p.logger.Error().Err(p.runErr).Msg("pipeline stopped with error")
			}
			close(p.done)
		}()
	})
}

// Running reports whether the collector and workers are still active.
func (p *Pipeline) Running() bool {
	return p.running.Load()
}

// Done is closed once every pipeline goroutine has returned.
func (p *Pipeline) Done() <-chan struct{} {
	return p.done
}

// Stop cancels collection, aborts the round in progress, wakes idle workers
// and waits for all goroutines. The source is closed last. Only the first call
// has any effect; later calls return the same result.
func (p *Pipeline) Stop() error {
	p.stopOnce.Do(func() {
		if p.cancel != nil {
			p.cancel()
			p.barrier.Break()
			p.queue.Close()
			<-p.done
		}

		var sourceErr error
		if err := p.source.Close(); err != nil {
			sourceErr = err
			p.logger.Warn().Err(err).Msg("failed to close record source")
		}

		runErr := p.runErr
		if errors.Is(runErr, context.Canceled) {
			runErr = nil
		}
		p.stopErr = errors.Join(runErr, sourceErr)
		p.logger.Info().Uint64("rounds", p.barrier.Completed()).Msg("pipeline stopped")
	})
	return p.stopErr
}
