package streams

import (
	"log-stats/internal/shared/metrics"
)

var (
	metricQueueDepth = metrics.NewGauge(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubPipeline,
			Name:      "queue_depth",
		},
	)

	metricQueueDroppedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubPipeline,
			Name:      "queue_dropped_total",
		},
	)

	metricBatchProcessedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubPipeline,
			Name:      "batch_processed_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricBatchProcessingSeconds = metrics.NewHistogram(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubPipeline,
			Name:      "batch_processing_seconds",
			Buckets:   metrics.DefBuckets,
		},
	)

	// metricRoundsTotal counts barrier rounds by outcome:
	// "completed" (every worker arrived), "forced" (round deadline hit),
	// "broken" (aborted by cancellation or shutdown).
	metricRoundsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubPipeline,
			Name:      "rounds_total",
		},
		[]string{"outcome"},
	)
)
