package http

import (
	"net/http"

	"log-stats/internal/reports"
)

type latestSnapshotHandler struct {
	reportService reports.ReportService
}

func NewLatestSnapshotHandler(reportService reports.ReportService) AppHttpHandler {
	return &latestSnapshotHandler{reportService: reportService}
}

// Handle serves GET /stats.
func (h *latestSnapshotHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	return writeJSON(w, http.StatusOK, h.reportService.GetLatestSnapshot(r.Context()))
}

type historyHandler struct {
	reportService reports.ReportService
}

func NewHistoryHandler(reportService reports.ReportService) AppHttpHandler {
	return &historyHandler{reportService: reportService}
}

// Handle serves GET /stats/history?limit=N (alias /statsHistory), oldest snapshot first.
func (h *historyHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	limit, err := reports.ParseHistoryLimit(r.URL.Query().Get(queryLimit))
	if err != nil {
		return err
	}

	history, err := h.reportService.GetHistory(r.Context(), limit)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, history)
}

type cumulativeStatsHandler struct {
	reportService reports.ReportService
}

func NewCumulativeStatsHandler(reportService reports.ReportService) AppHttpHandler {
	return &cumulativeStatsHandler{reportService: reportService}
}

// Handle serves GET /stats/cumulative (alias /statsCumulative).
func (h *cumulativeStatsHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	return writeJSON(w, http.StatusOK, h.reportService.GetCumulativeStats(r.Context()))
}

type healthHandler struct {
	reportService reports.ReportService
}

func NewHealthHandler(reportService reports.ReportService) AppHttpHandler {
	return &healthHandler{reportService: reportService}
}

// Handle serves GET /health. It answers 200 while the process is up, whatever the pipeline state.
func (h *healthHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	return writeJSON(w, http.StatusOK, h.reportService.GetHealth(r.Context()))
}
