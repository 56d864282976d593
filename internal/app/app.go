package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"log-stats/internal/aggregators"
	"log-stats/internal/generators"
	internalhttp "log-stats/internal/http"
	"log-stats/internal/ingestors"
	"log-stats/internal/models"
	"log-stats/internal/reports"
	"log-stats/internal/shared/configs"
	"log-stats/internal/shared/loggers"
	"log-stats/internal/snapshots"
	"log-stats/internal/sources"
	"log-stats/internal/streams"
)

const sourceSetupTimeout = 5 * time.Second

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server

	pipeline      *streams.Pipeline
	generator     *generators.Generator
	generatorDone chan struct{}
	started       atomic.Bool

	backgroundCtx    context.Context
	backgroundCancel context.CancelFunc
}

// New creates and initializes a new App instance.
func New(config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level, loggers.WithFile(loggers.FileOptions{
		Path:       config.Log.File,
		MaxSizeMB:  config.Log.MaxSizeMB,
		MaxBackups: config.Log.MaxBackups,
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "log-stats").
		Logger()

	backgroundCtx, backgroundCancel := context.WithCancel(context.Background())
	app := &App{
		config:           config,
		appLogger:        appLogger,
		backgroundCtx:    backgroundCtx,
		backgroundCancel: backgroundCancel,
	}

	// Initialize record source, and the generator feeding it when enabled
	source, sink, err := newSource(config, component(appLogger, "source"))
	if err != nil {
		backgroundCancel()
		return nil, err
	}
	if config.Generator.Enabled {
		app.generator = generators.NewGenerator(sink, generators.Options{
			RatePerSecond: config.Generator.RatePerSecond,
			URLs:          config.Generator.URLs,
			Services:      config.Generator.Services,
		}, component(appLogger, "generator"))
		app.generatorDone = make(chan struct{})
	}

	// Initialize aggregation
	urlGrouper, err := aggregators.NewURLGrouper(config.Aggregation.URLGroups)
	if err != nil {
		backgroundCancel()
		_ = source.Close()
		return nil, fmt.Errorf("failed to initialize url groups: %w", err)
	}
	aggregator := aggregators.NewStatsAggregator(aggregators.NewRecordParser(), urlGrouper)

	// Initialize snapshot manager; it runs as the barrier release action
	snapshotManager := snapshots.NewSnapshotManager(aggregator, snapshots.Options{
		MaxHistory:               config.History.MaxSize,
		CumulativeReportInterval: time.Duration(config.History.CumulativeReportIntervalS) * time.Second,
		TopURLs:                  config.History.TopURLs,
	}, component(appLogger, "snapshot"))

	// Initialize pipeline
	barrier := streams.NewPhaseBarrier(
		config.Pipeline.Workers,
		snapshotManager.OnRoundComplete,
		time.Duration(config.Pipeline.RoundTimeoutMs)*time.Millisecond,
	)
	batchQueue := streams.NewBatchQueue[*models.LogBatch]()
	collector, err := ingestors.NewBatchCollector(
		source,
		batchQueue,
		config.Pipeline.BatchSize,
		time.Duration(config.Source.PollTimeoutMs)*time.Millisecond,
		component(appLogger, "collector"),
	)
	if err != nil {
		backgroundCancel()
		_ = source.Close()
		return nil, fmt.Errorf("failed to initialize collector: %w", err)
	}
	workerPool := streams.NewWorkerPool(
		batchQueue,
		aggregator,
		barrier,
		time.Duration(config.Pipeline.QueuePollTimeoutMs)*time.Millisecond,
		component(appLogger, "worker"),
	)
	app.pipeline = streams.NewPipeline(source, collector, batchQueue, workerPool, barrier, component(appLogger, "pipeline"))

	// Initialize http router
	reportService := reports.NewReportService(snapshotManager, app.pipeline, aggregator.CumulativeTotal)
	router := internalhttp.NewRouter(backgroundCtx, reportService, component(appLogger, "http"))

	// Create HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return app, nil
}

// newSource builds the configured record source and a sink that writes into it.
// A redis source that cannot create its consumer group is a startup failure.
func newSource(config *configs.Config, logger loggers.Logger) (sources.RecordSource, generators.RecordSink, error) {
	switch config.Source.Type {
	case configs.SourceTypeRedis:
		redisConfig := config.Source.Redis
		client := sources.NewRedisClient(redisConfig.Addr, redisConfig.Password, redisConfig.DB)

		ctx, cancel := context.WithTimeout(context.Background(), sourceSetupTimeout)
		defer cancel()
		source, err := sources.NewRedisStreamSource(ctx, client, sources.RedisStreamOptions{
			Stream:    redisConfig.Stream,
			Group:     redisConfig.Group,
			Consumer:  redisConfig.Consumer,
			ReadCount: redisConfig.ReadCount,
		}, logger)
		if err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to initialize redis source: %w", err)
		}
		return source, generators.NewRedisStreamSink(client, redisConfig.Stream, 0), nil

	case configs.SourceTypeMemory:
		source := sources.NewMemorySource(0)
		return source, source, nil

	default:
		return nil, nil, fmt.Errorf("unsupported source type %q", config.Source.Type)
	}
}

func component(logger loggers.Logger, name string) loggers.Logger {
	return logger.With().Str(loggers.FieldComponent, name).Logger()
}

// Start starts the pipeline and then the HTTP server in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Msgf("Starting log-stats service on port %d (log_level=%s, source=%s, workers=%d, batch_size=%d)",
			app.config.Server.Port,
			app.config.Log.Level,
			app.config.Source.Type,
			app.config.Pipeline.Workers,
			app.config.Pipeline.BatchSize)

	// start background pipeline
	app.started.Store(true)
	app.pipeline.Start(app.backgroundCtx)

	if app.generator != nil {
		go func() {
			defer close(app.generatorDone)
			if err := app.generator.Run(app.backgroundCtx, 0); err != nil {
				app.appLogger.Error().Err(err).Msg("log generator stopped")
			}
		}()
	}

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the application.
func (app *App) Shutdown(ctx context.Context) error {
	// 1) Shutdown server
	app.appLogger.Info().Msg("Shutting down server...")
	serverErr := app.server.Shutdown(ctx)
	if serverErr != nil {
		serverErr = fmt.Errorf("server shutdown failed: %w", serverErr)
	}
	app.appLogger.Info().Msg("Server stopped")

	// 2) Cancel background work, closing snapshot streams and the generator
	app.backgroundCancel()
	if app.generator != nil && app.started.Load() {
		select {
		case <-app.generatorDone:
		case <-ctx.Done():
		}
	}

	// 3) Stop the pipeline; the source is closed last
	pipelineErr := app.pipeline.Stop()
	if pipelineErr != nil {
		pipelineErr = fmt.Errorf("pipeline shutdown failed: %w", pipelineErr)
	}
	app.appLogger.Info().Msg("Pipeline stopped")

	return errors.Join(serverErr, pipelineErr)
}
