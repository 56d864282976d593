package http

import (
	"context"
	"net/http"

	"log-stats/internal/reports"
	"log-stats/internal/shared/loggers"
	"log-stats/internal/shared/metrics"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates and configures the HTTP router. Cancelling shutdown closes open snapshot streams.
func NewRouter(shutdown context.Context, reportService reports.ReportService, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	// Routes
	router.Get("/stats", errorHandlingAdapter(NewLatestSnapshotHandler(reportService)))
	historyHandler := errorHandlingAdapter(NewHistoryHandler(reportService))
	cumulativeHandler := errorHandlingAdapter(NewCumulativeStatsHandler(reportService))
	router.Get("/stats/history", historyHandler)
	router.Get("/stats/cumulative", cumulativeHandler)
	// paths read by the dashboard
	router.Get("/statsHistory", historyHandler)
	router.Get("/statsCumulative", cumulativeHandler)
	router.Get("/health", errorHandlingAdapter(NewHealthHandler(reportService)))
	router.Get("/ws/stats", errorHandlingAdapter(NewStatsStreamHandler(shutdown, reportService)))
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}
