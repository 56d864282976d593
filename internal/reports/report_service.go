package reports

import (
	"context"
	"time"

	"log-stats/internal/models"
	"log-stats/internal/shared/loggers"
	"log-stats/internal/shared/procstats"
)

// SnapshotReader is the read side of the snapshot manager.
type SnapshotReader interface {
	Latest() *models.Snapshot
	History(limit int) []*models.Snapshot
	Cumulative() *models.CumulativeStats
	StartedAt() time.Time
	Subscribe() (<-chan *models.Snapshot, func())
}

// PipelineStatus reports whether the processing pipeline is alive.
type PipelineStatus interface {
	Running() bool
}

// ReportService is the read-only view served to API callers. It never fails
// because of ingestion errors; it serves whatever was last published.
//
//go:generate mockgen -source=report_service.go -destination=./mocks/report_service_mock.go -package=mocks
type ReportService interface {
	GetLatestSnapshot(ctx context.Context) *models.Snapshot
	// GetHistory returns up to limit of the newest snapshots, oldest first; 0 means all.
	GetHistory(ctx context.Context, limit int) ([]*models.Snapshot, error)
	GetCumulativeStats(ctx context.Context) *models.CumulativeStats
	GetHealth(ctx context.Context) *models.Health
	// SubscribeSnapshots streams newly published snapshots until cancel is called.
	SubscribeSnapshots(ctx context.Context) (<-chan *models.Snapshot, func())
}

type reportService struct {
	snapshots  SnapshotReader
	pipeline   PipelineStatus
	totalCount func() int64
	now        func() time.Time
}

// NewReportService wires the readers. totalCount is the cumulative processed count.
func NewReportService(snapshots SnapshotReader, pipeline PipelineStatus, totalCount func() int64) ReportService {
	return &reportService{
		snapshots:  snapshots,
		pipeline:   pipeline,
		totalCount: totalCount,
		now:        time.Now,
	}
}

func (s *reportService) GetLatestSnapshot(ctx context.Context) *models.Snapshot {
	return s.snapshots.Latest()
}

func (s *reportService) GetHistory(ctx context.Context, limit int) ([]*models.Snapshot, error) {
	if limit < 0 {
		return nil, errInvalidHistoryLimit(limit)
	}
	return s.snapshots.History(limit), nil
}

func (s *reportService) GetCumulativeStats(ctx context.Context) *models.CumulativeStats {
	return s.snapshots.Cumulative()
}

func (s *reportService) GetHealth(ctx context.Context) *models.Health {
	pipelineState := models.PipelineStopped
	if s.pipeline.Running() {
		pipelineState = models.PipelineRunning
	}

	process, err := procstats.Read()
	if err != nil {
		loggers.Ctx(ctx).Debug().Err(err).Msg("process stats unavailable")
	}

	return &models.Health{
		Status:         models.HealthStatusUp,
		Pipeline:       pipelineState,
		TotalProcessed: s.totalCount(),
		UptimeSeconds:  int64(s.now().Sub(s.snapshots.StartedAt()).Seconds()),
		Process:        process,
	}
}

func (s *reportService) SubscribeSnapshots(ctx context.Context) (<-chan *models.Snapshot, func()) {
	return s.snapshots.Subscribe()
}
