package configs

import (
	"fmt"
	"strings"

	"log-stats/internal/shared/validators"

	"github.com/spf13/viper"
)

const envPrefix = "LOG_STATS"

// LoadConfig reads configuration from file and validates it.
// Keys present in the file can be overridden with LOG_STATS_<SECTION>_<KEY> env vars.
var LoadConfig = func(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read from file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
	}

	// Unmarshal into Config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	validate := validators.New()
	validate.RegisterStructValidation(validateSourceConfig, SourceConfig{})
	if err := validate.Struct(&cfg); err != nil {
		var validationErrors []string
		if ve, ok := err.(validators.ValidationErrors); ok {
			for _, e := range ve {
				validationErrors = append(validationErrors, formatValidationError(e))
			}
		}
		return nil, fmt.Errorf("config validation failed: %s", strings.Join(validationErrors, ", "))
	}

	return &cfg, nil
}

// validateSourceConfig requires the redis block only when the redis source is selected.
func validateSourceConfig(sl validators.StructLevel) {
	source := sl.Current().Interface().(SourceConfig)
	if source.Type != SourceTypeRedis {
		return
	}
	if source.Redis.Addr == "" {
		sl.ReportError(source.Redis.Addr, "redis.addr", "Redis.Addr", "required", "")
	}
	if source.Redis.Stream == "" {
		sl.ReportError(source.Redis.Stream, "redis.stream", "Redis.Stream", "required", "")
	}
	if source.Redis.Group == "" {
		sl.ReportError(source.Redis.Group, "redis.group", "Redis.Group", "required", "")
	}
}

// formatValidationError formats a single validation error into a readable string.
func formatValidationError(e validators.FieldError) string {
	field := e.Field()
	tag := e.Tag()

	// Build field path from the yaml keys (e.g., "pipeline.round_timeout_ms")
	if e.Namespace() != "" {
		// Drop the "Config" prefix (e.g., "Config.server.port" -> "server.port")
		parts := strings.Split(e.Namespace(), ".")
		if len(parts) >= 2 {
			fieldPath := strings.ToLower(strings.Join(parts[1:], "."))
			field = fieldPath
		}
	}

	var msg string
	switch tag {
	case "required":
		msg = fmt.Sprintf("%s (required)", field)
	case "min":
		msg = fmt.Sprintf("%s (min=%s)", field, e.Param())
	case "max":
		msg = fmt.Sprintf("%s (max=%s)", field, e.Param())
	case "oneof":
		msg = fmt.Sprintf("%s (oneof=%s)", field, e.Param())
	default:
		msg = fmt.Sprintf("%s (%s)", field, tag)
	}

	return msg
}
