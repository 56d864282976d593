package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"log-stats/internal/generators"
	"log-stats/internal/shared/configs"
	"log-stats/internal/shared/loggers"
	"log-stats/internal/sources"
)

// loggen appends synthetic web-access records to the configured Redis stream.
func main() {
	configPath := flag.String("config", "./configs/configs.yml", "path to the YAML config file")
	count := flag.Int("count", 0, "number of records to publish, 0 runs until interrupted")
	rate := flag.Int("rate", 0, "records per second, overrides generator.rate_per_second")
	maxLen := flag.Int64("max-len", 100000, "approximate stream length cap, 0 disables trimming")
	flag.Parse()

	cfg, err := configs.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.Source.Type != configs.SourceTypeRedis {
		fmt.Fprintf(os.Stderr, "loggen needs source.type=%s, got %q\n", configs.SourceTypeRedis, cfg.Source.Type)
		os.Exit(1)
	}

	logger, err := loggers.New(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger = logger.With().Str(loggers.FieldApp, "loggen").Str(loggers.FieldStream, cfg.Source.Redis.Stream).Logger()

	ratePerSecond := cfg.Generator.RatePerSecond
	if *rate > 0 {
		ratePerSecond = *rate
	}

	client := sources.NewRedisClient(cfg.Source.Redis.Addr, cfg.Source.Redis.Password, cfg.Source.Redis.DB)
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	generator := generators.NewGenerator(
		generators.NewRedisStreamSink(client, cfg.Source.Redis.Stream, *maxLen),
		generators.Options{
			RatePerSecond: ratePerSecond,
			URLs:          cfg.Generator.URLs,
			Services:      cfg.Generator.Services,
		},
		logger,
	)
	if err := generator.Run(ctx, *count); err != nil {
		logger.Error().Err(err).Msg("log generator failed")
		os.Exit(1)
	}
	logger.Info().Msg("log generator finished")
}
