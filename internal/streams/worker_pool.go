package streams

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"log-stats/internal/aggregators"
	"log-stats/internal/models"
	"log-stats/internal/shared/loggers"
	"log-stats/internal/shared/metrics"
	"log-stats/internal/shared/svcerrors"
)

// WorkerPool runs a fixed number of identical workers. Each worker takes one
// batch, counts it, and then waits at the phase barrier for the other workers.
type WorkerPool struct {
	queue       *BatchQueue[*models.LogBatch]
	aggregator  aggregators.StatsAggregator
	barrier     *PhaseBarrier
	pollTimeout time.Duration
	logger      loggers.Logger
}

func NewWorkerPool(queue *BatchQueue[*models.LogBatch], aggregator aggregators.StatsAggregator, barrier *PhaseBarrier, pollTimeout time.Duration, logger loggers.Logger) *WorkerPool {
	return &WorkerPool{
		queue:       queue,
		aggregator:  aggregator,
		barrier:     barrier,
		pollTimeout: pollTimeout,
		logger:      logger,
	}
}

// Size is the number of workers, one per barrier party.
func (pool *WorkerPool) Size() int {
	return pool.barrier.Parties()
}

// RunWorker is the loop of one worker. A poll that yields no batch loops
// again without touching the barrier. It returns nil on shutdown.
func (pool *WorkerPool) RunWorker(ctx context.Context, workerID int) error {
	logger := pool.logger.With().Int(loggers.FieldWorkerID, workerID).Logger()
	ctx = logger.WithContext(ctx)
	logger.Debug().Msg("worker started")

	for {
		if ctx.Err() != nil {
			logger.Debug().Msg("worker stopped")
			return nil
		}

		batch, ok := pool.queue.Pop(ctx, pool.pollTimeout)
		if !ok {
			if pool.queue.Closed() {
				logger.Debug().Msg("worker stopped: queue closed")
				return nil
			}
			continue
		}

		pool.processBatch(ctx, batch)

		round, err := pool.barrier.Await(ctx)
		if err != nil {
			if errors.Is(err, ErrBarrierBroken) {
				logger.Info().Msg("round aborted; worker stopping")
				return nil
			}
			return err
		}
		logger.Debug().
			Uint64(loggers.FieldRound, round.Number).
			Bool("forced", round.Forced).
			Msg("round released")
	}
}

// processBatch counts one batch. A panic is contained to the batch so the
// worker still reaches the barrier.
func (pool *WorkerPool) processBatch(ctx context.Context, batch *models.LogBatch) {
	logger := loggers.Ctx(ctx).With().
		Str(loggers.FieldBatchID, batch.BatchID).
		Int(loggers.FieldBatchSize, batch.Size()).
		Logger()
	ctx = logger.WithContext(ctx)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			logger.Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msg("worker panic recovered")

			svcErr := svcerrors.NewInternalErrorPanic(svcerrors.PanicError(r))
			metricBatchProcessedTotal.WithLabelValues(svcErr.Code).Inc()
		}
	}()

	result := pool.aggregator.ProcessBatch(ctx, batch)

	metricBatchProcessedTotal.WithLabelValues(metrics.ValueNoError).Inc()
	metricBatchProcessingSeconds.Observe(time.Since(start).Seconds())
	logger.Debug().
		Int("counted", result.Counted).
		Int("skipped", result.Skipped).
		Msg("batch processed")
}
