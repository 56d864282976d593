package ingestors

import (
	"context"
	"errors"
	"time"

	"log-stats/internal/models"
	"log-stats/internal/shared/loggers"
	"log-stats/internal/shared/metrics"
	"log-stats/internal/shared/svcerrors"
	"log-stats/internal/shared/ulid"
	"log-stats/internal/sources"
)

// BatchSink receives completed batches. Push must not block.
type BatchSink interface {
	Push(batch *models.LogBatch)
}

//go:generate mockgen -source=batch_collector.go -destination=./mocks/batch_collector_mock.go -package=mocks
type BatchCollector interface {
	// Run drains the source into fixed-size batches until ctx is cancelled.
	// The partial batch left at cancellation is discarded.
	Run(ctx context.Context) error
}

type batchCollector struct {
	source      sources.RecordSource
	sink        BatchSink
	batchSize   int
	pollTimeout time.Duration
	logger      loggers.Logger

	now func() time.Time
}

func NewBatchCollector(source sources.RecordSource, sink BatchSink, batchSize int, pollTimeout time.Duration, logger loggers.Logger) (BatchCollector, error) {
	if err := validateCollectorConfig(batchSize, pollTimeout); err != nil {
		return nil, err
	}
	return &batchCollector{
		source:      source,
		sink:        sink,
		batchSize:   batchSize,
		pollTimeout: pollTimeout,
		logger:      logger,
		now:         time.Now,
	}, nil
}

func (c *batchCollector) Run(ctx context.Context) error {
	c.logger.Info().
		Int(loggers.FieldBatchSize, c.batchSize).
		Dur("poll_timeout", c.pollTimeout).
		Msg("batch collector started")

	pending := make([][]byte, 0, c.batchSize)
	for {
		if ctx.Err() != nil {
			c.discard(pending)
			return nil
		}

		records, err := c.source.Poll(ctx, c.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			if errors.Is(err, sources.ErrSourceClosed) {
				c.logger.Error().Msg("record source closed while collecting")
				return err
			}
			c.recordPollError(err)
			c.backoff(ctx)
			continue
		}
		if len(records) == 0 {
			continue
		}

		metricRecordsReceivedTotal.Add(float64(len(records)))
		for _, record := range records {
			pending = append(pending, record)
			if len(pending) == c.batchSize {
				c.flush(pending)
				pending = make([][]byte, 0, c.batchSize)
			}
		}
	}
}

// flush hands records over; the collector never touches the slice again.
func (c *batchCollector) flush(records [][]byte) {
	batch := &models.LogBatch{
		BatchID:     ulid.NewULID(),
		Records:     records,
		CollectedAt: c.now().UTC(),
	}
	c.sink.Push(batch)
	metricBatchCollectedTotal.Inc()

	c.logger.Debug().
		Str(loggers.FieldBatchID, batch.BatchID).
		Int(loggers.FieldBatchSize, batch.Size()).
		Msg("batch collected")
}

func (c *batchCollector) discard(pending [][]byte) {
	if len(pending) == 0 {
		return
	}
	metricRecordsDiscardedTotal.Add(float64(len(pending)))
	c.logger.Info().
		Int("discarded_records", len(pending)).
		Msg("batch collector stopped; partial batch discarded")
}

func (c *batchCollector) recordPollError(err error) {
	code := svcerrors.NewInternalErrorUndefined(err).Code
	if svcErr, ok := svcerrors.AsServiceError(err); ok {
		code = svcErr.Code
	}
	metricSourcePollFailedTotal.WithLabelValues(code).Inc()
	c.logger.Warn().
		Err(err).
		Str(metrics.FieldErrorCode, code).
		Msg("record source poll failed")
}

// backoff waits one poll interval so a failing source is not hammered.
func (c *batchCollector) backoff(ctx context.Context) {
	timer := time.NewTimer(c.pollTimeout)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
