package ingestors

import (
	"log-stats/internal/shared/metrics"
)

var (
	metricRecordsReceivedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubCollector,
			Name:      "records_received_total",
		},
	)

	metricRecordsDiscardedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubCollector,
			Name:      "records_discarded_total",
		},
	)

	metricBatchCollectedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubCollector,
			Name:      "batch_collected_total",
		},
	)

	metricSourcePollFailedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubCollector,
			Name:      "source_poll_failed_total",
		},
		[]string{metrics.FieldErrorCode},
	)
)
