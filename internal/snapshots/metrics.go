package snapshots

import (
	"log-stats/internal/shared/metrics"
)

var (
	metricSnapshotPublishedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSnapshot,
			Name:      "published_total",
		},
	)

	// metricSnapshotRecords is the number of records counted per snapshot window.
	metricSnapshotRecords = metrics.NewHistogram(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSnapshot,
			Name:      "window_records",
			Buckets:   []float64{0, 10, 20, 50, 100, 200, 500, 1000, 5000},
		},
	)

	metricHistoryEvictedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSnapshot,
			Name:      "history_evicted_total",
		},
	)

	metricCumulativeReportTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSnapshot,
			Name:      "cumulative_report_total",
		},
	)

	metricCumulativeErrorRate = metrics.NewGauge(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSnapshot,
			Name:      "cumulative_error_rate_percent",
		},
	)

	metricSubscribers = metrics.NewGauge(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSnapshot,
			Name:      "subscribers",
		},
	)

	metricSubscriberDroppedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSnapshot,
			Name:      "subscriber_dropped_total",
		},
	)
)
