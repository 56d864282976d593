package aggregators

import (
	"context"

	"log-stats/internal/models"
	"log-stats/internal/shared/loggers"
	"log-stats/internal/shared/metrics"
	"log-stats/internal/shared/svcerrors"
)

// progressLogEvery controls how often a counted record is echoed at debug level.
const progressLogEvery = 10

// BatchResult reports how a batch was consumed.
type BatchResult struct {
	Counted int
	Skipped int
}

// StatsAggregator owns the windowed and cumulative counter sets. It is created
// once at startup and shared by every worker; all updates are per-field atomics.
//
//go:generate mockgen -source=stats_aggregator.go -destination=./mocks/stats_aggregator_mock.go -package=mocks
type StatsAggregator interface {
	// Record parses one raw payload and counts it in both counter sets.
	// A malformed payload returns an AGG_1000 error and touches no counter.
	Record(ctx context.Context, raw []byte) error
	// ProcessBatch records every payload of batch in receipt order.
	ProcessBatch(ctx context.Context, batch *models.LogBatch) BatchResult
	// DrainWindow freezes and resets the windowed counters.
	DrainWindow() models.TrafficStats
	WindowTotal() int64
	// Cumulative freezes the since-start counters without resetting them.
	Cumulative() models.TrafficStats
	CumulativeTotal() int64
}

type statsAggregator struct {
	parser  RecordParser
	grouper *URLGrouper

	windowed   *CounterSet
	cumulative *CounterSet
}

func NewStatsAggregator(parser RecordParser, grouper *URLGrouper) StatsAggregator {
	if grouper == nil {
		grouper = &URLGrouper{}
	}
	return &statsAggregator{
		parser:     parser,
		grouper:    grouper,
		windowed:   NewCounterSet(),
		cumulative: NewCounterSet(),
	}
}

func (a *statsAggregator) Record(ctx context.Context, raw []byte) error {
	record, err := a.parser.Parse(raw)
	if err != nil {
		code := codeMalformedRecord
		if svcErr, ok := svcerrors.AsServiceError(err); ok {
			code = svcErr.Code
		}
		metricRecordsProcessedTotal.WithLabelValues("", code).Inc()
		return err
	}

	url := a.grouper.Group(record.URL)
	class := models.ClassifyStatus(record.Status)

	a.windowed.Apply(url, class)
	a.cumulative.Apply(url, class)
	metricRecordsProcessedTotal.WithLabelValues(class.String(), metrics.ValueNoError).Inc()

	if n := a.cumulative.Total(); n%progressLogEvery == 0 {
		loggers.Ctx(ctx).Debug().
			Str(loggers.FieldURL, url).
			Int(loggers.FieldStatus, record.Status).
			Int64("cumulative_total", n).
			Msg("aggregated record")
	}
	return nil
}

func (a *statsAggregator) ProcessBatch(ctx context.Context, batch *models.LogBatch) BatchResult {
	logger := loggers.Ctx(ctx)
	var result BatchResult
	for i, raw := range batch.Records {
		if err := a.Record(ctx, raw); err != nil {
			result.Skipped++
			logger.Debug().
				Err(err).
				Int("record_index", i).
				Msg("skipped malformed record")
			continue
		}
		result.Counted++
	}
	return result
}

func (a *statsAggregator) DrainWindow() models.TrafficStats {
	return a.windowed.Drain()
}

func (a *statsAggregator) WindowTotal() int64 {
	return a.windowed.Total()
}

func (a *statsAggregator) Cumulative() models.TrafficStats {
	return a.cumulative.Stats()
}

func (a *statsAggregator) CumulativeTotal() int64 {
	return a.cumulative.Total()
}
