package aggregators

import (
	"log-stats/internal/shared/metrics"
)

const labelStatusClass = "status_class"

// metricRecordsProcessedTotal counts every record a worker handed to the aggregator.
//
// Counted records carry their status class ("2xx", "4xx", "5xx", "other") and an
// empty error_code. Dropped records carry an empty status_class and the error
// code that rejected them, e.g. error_code="AGG_1000" for a payload without status.
var (
	metricRecordsProcessedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "records_processed_total",
		},
		[]string{labelStatusClass, metrics.FieldErrorCode},
	)

	// metricWindowSplitRecordsTotal counts records whose status counter was drained
	// one window after their total, which only happens when a round is forced.
	metricWindowSplitRecordsTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "window_split_records_total",
		},
	)
)
