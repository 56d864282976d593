package configs

const (
	SourceTypeRedis  = "redis"
	SourceTypeMemory = "memory"
)

// Config holds all configuration for the application.
type Config struct {
	Server      ServerConfig      `mapstructure:"server" validate:"required"`
	Log         LogConfig         `mapstructure:"log" validate:"required"`
	Source      SourceConfig      `mapstructure:"source" validate:"required"`
	Pipeline    PipelineConfig    `mapstructure:"pipeline" validate:"required"`
	History     HistoryConfig     `mapstructure:"history" validate:"required"`
	Aggregation AggregationConfig `mapstructure:"aggregation"`
	Generator   GeneratorConfig   `mapstructure:"generator"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string `mapstructure:"level" validate:"required"`
	File       string `mapstructure:"file"`                           // empty disables file output
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"min=0"`   // lumberjack default when 0
	MaxBackups int    `mapstructure:"max_backups" validate:"min=0"`
}

// SourceConfig selects and tunes the record source adapter.
type SourceConfig struct {
	Type          string      `mapstructure:"type" validate:"required,oneof=redis memory"`
	PollTimeoutMs int         `mapstructure:"poll_timeout_ms" validate:"required,min=1"`
	Redis         RedisConfig `mapstructure:"redis"`
}

// RedisConfig holds the Redis Streams consumer settings. Required when source.type is redis.
type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db" validate:"min=0"`
	Stream    string `mapstructure:"stream"`
	Group     string `mapstructure:"group"`
	Consumer  string `mapstructure:"consumer"` // generated when empty
	ReadCount int    `mapstructure:"read_count" validate:"min=0"`
}

// PipelineConfig holds the batch pipeline settings.
type PipelineConfig struct {
	BatchSize          int `mapstructure:"batch_size" validate:"required,min=1"`
	Workers            int `mapstructure:"workers" validate:"required,min=1,max=256"`
	QueuePollTimeoutMs int `mapstructure:"queue_poll_timeout_ms" validate:"required,min=1"`
	RoundTimeoutMs     int `mapstructure:"round_timeout_ms" validate:"min=0"` // 0 waits for every worker
}

// HistoryConfig holds snapshot history and cumulative report settings.
type HistoryConfig struct {
	MaxSize                   int `mapstructure:"max_size" validate:"required,min=1"`
	CumulativeReportIntervalS int `mapstructure:"cumulative_report_interval_s" validate:"required,min=1"` // seconds
	TopURLs                   int `mapstructure:"top_urls" validate:"required,min=1"`
}

// AggregationConfig holds aggregation configuration.
type AggregationConfig struct {
	URLGroups []string `mapstructure:"url_groups" validate:"dive,required"`
}

// GeneratorConfig holds the synthetic log generator settings.
type GeneratorConfig struct {
	Enabled       bool     `mapstructure:"enabled"`
	RatePerSecond int      `mapstructure:"rate_per_second" validate:"min=0"`
	URLs          []string `mapstructure:"urls" validate:"dive,required"`
	Services      []string `mapstructure:"services" validate:"dive,required"`
}
