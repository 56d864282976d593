package generators

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/bytedance/sonic"
	"golang.org/x/time/rate"

	"log-stats/internal/shared/loggers"
	"log-stats/internal/shared/metrics"
	"log-stats/internal/shared/svcerrors"
	"log-stats/internal/sources"
)

var (
	levels  = []string{"INFO", "WARN", "ERROR"}
	methods = []string{"GET", "POST"}

	defaultURLs     = []string{"/login", "/pay", "/home", "/dashboard"}
	defaultServices = []string{"auth", "payment", "frontend", "backend"}
)

// levelStatus maps a log level onto the HTTP status the record carries.
var levelStatus = map[string]int{
	"INFO":  200,
	"WARN":  404,
	"ERROR": 500,
}

// WebLog is one synthetic access-log record.
type WebLog struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Method    string `json:"method"`
	URL       string `json:"url"`
	Status    int    `json:"status"`
	LatencyMs int64  `json:"latencyMs"`
	ClientIP  string `json:"clientIp"`
	Message   string `json:"message"`
	Service   string `json:"service"`
}

//go:generate mockgen -source=log_generator.go -destination=./mocks/log_generator_mock.go -package=mocks
type RecordSink interface {
	Publish(ctx context.Context, record []byte) error
}

// Options configures the generator. Empty lists fall back to the built-in values.
type Options struct {
	RatePerSecond int
	URLs          []string
	Services      []string
	Seed          int64
}

// Generator publishes random web-access records at a fixed rate.
type Generator struct {
	sink    RecordSink
	limiter *rate.Limiter
	rnd     *rand.Rand
	urls    []string
	svcs    []string
	logger  loggers.Logger
	now     func() time.Time
}

func NewGenerator(sink RecordSink, opts Options, logger loggers.Logger) *Generator {
	limit := rate.Inf
	burst := 1
	if opts.RatePerSecond > 0 {
		limit = rate.Limit(opts.RatePerSecond)
		burst = opts.RatePerSecond
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	urls := opts.URLs
	if len(urls) == 0 {
		urls = defaultURLs
	}
	services := opts.Services
	if len(services) == 0 {
		services = defaultServices
	}

	return &Generator{
		sink:    sink,
		limiter: rate.NewLimiter(limit, burst),
		rnd:     rand.New(rand.NewSource(seed)),
		urls:    urls,
		svcs:    services,
		logger:  logger,
		now:     time.Now,
	}
}

// Next builds one record. Not safe for concurrent use.
func (g *Generator) Next() WebLog {
	level := levels[g.rnd.Intn(len(levels))]
	method := methods[g.rnd.Intn(len(methods))]
	url := g.urls[g.rnd.Intn(len(g.urls))]
	return WebLog{
		Timestamp: g.now().UTC().Format(time.RFC3339Nano),
		Level:     level,
		Method:    method,
		URL:       url,
		Status:    levelStatus[level],
		LatencyMs: 50 + g.rnd.Int63n(450),
		ClientIP:  fmt.Sprintf("192.168.1.%d", g.rnd.Intn(254)+1),
		Message:   fmt.Sprintf("%s request served on %s", method, url),
		Service:   g.svcs[g.rnd.Intn(len(g.svcs))],
	}
}

// Run publishes until ctx is cancelled, the sink is closed, or count records
// were sent (count <= 0 means no limit). Publish failures are logged and skipped.
func (g *Generator) Run(ctx context.Context, count int) error {
	g.logger.Info().Float64("rate_per_second", float64(g.limiter.Limit())).Msg("log generator started")

	for sent := 0; count <= 0 || sent < count; {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil
		}

		record, err := sonic.Marshal(g.Next())
		if err != nil {
			return fmt.Errorf("encode generated record: %w", err)
		}

		if err := g.sink.Publish(ctx, record); err != nil {
			if ctx.Err() != nil || errors.Is(err, sources.ErrSourceClosed) {
				return nil
			}
			code := svcerrors.NewInternalErrorUndefined(err).Code
			if svcErr, ok := svcerrors.AsServiceError(err); ok {
				code = svcErr.Code
			}
			metricRecordsGeneratedTotal.WithLabelValues(code).Inc()
			g.logger.Warn().Err(err).Msg("failed to publish generated record")
			continue
		}

		metricRecordsGeneratedTotal.WithLabelValues(metrics.ValueNoError).Inc()
		sent++
	}
	return nil
}
