package generators

import (
	"log-stats/internal/shared/metrics"
)

var (
	metricRecordsGeneratedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubGenerator,
			Name:      "records_generated_total",
		},
		[]string{metrics.FieldErrorCode},
	)
)
