// Package config provides configuration loading and validation for the
// service and the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config is the service configuration. Every field may come from a JSON
// file, the environment, or the built-in defaults, in increasing order of
// precedence: defaults < file < environment.
type Config struct {
	// Storage
	DatabaseURL       string `json:"database_url,omitempty"`        // postgres:// URL or sqlite path
	KnowledgeBasePath string `json:"knowledge_base_path,omitempty"` // overrides the embedded knowledge base

	// HTTP
	Port               int      `json:"port,omitempty"`
	CORSAllowedOrigins []string `json:"cors_allowed_origins,omitempty"`

	// Quiz sessions
	RedisURL          string `json:"redis_url,omitempty"` // empty keeps sessions in memory
	QuizSessionTTLMin int    `json:"quiz_session_ttl_minutes,omitempty"`

	// Events
	AMQPURL      string `json:"amqp_url,omitempty"` // empty disables publishing
	AMQPExchange string `json:"amqp_exchange,omitempty"`

	// Export archival
	ExportS3Bucket   string `json:"export_s3_bucket,omitempty"` // empty disables archival
	ExportS3Region   string `json:"export_s3_region,omitempty"`
	ExportS3Prefix   string `json:"export_s3_prefix,omitempty"`
	ExportS3Endpoint string `json:"export_s3_endpoint,omitempty"`

	LogLevel string `json:"log_level,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		DatabaseURL:        "directionwise.db",
		Port:               8080,
		CORSAllowedOrigins: []string{"*"},
		QuizSessionTTLMin:  60,
		AMQPExchange:       "directionwise.events",
		ExportS3Prefix:     "exports",
		LogLevel:           "info",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads the configuration variables that are set. Unset variables
// leave their field zero.
func FromEnv() (Config, error) {
	cfg := Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		KnowledgeBasePath: os.Getenv("KNOWLEDGE_BASE_PATH"),
		RedisURL:          os.Getenv("REDIS_URL"),
		AMQPURL:           os.Getenv("AMQP_URL"),
		AMQPExchange:      os.Getenv("AMQP_EXCHANGE"),
		ExportS3Bucket:    os.Getenv("EXPORT_S3_BUCKET"),
		ExportS3Region:    os.Getenv("EXPORT_S3_REGION"),
		ExportS3Prefix:    os.Getenv("EXPORT_S3_PREFIX"),
		ExportS3Endpoint:  os.Getenv("EXPORT_S3_ENDPOINT"),
		LogLevel:          os.Getenv("LOG_LEVEL"),
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("QUIZ_SESSION_TTL_MINUTES"); v != "" {
		ttl, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid QUIZ_SESSION_TTL_MINUTES: %v", err)
		}
		cfg.QuizSessionTTLMin = ttl
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.CORSAllowedOrigins = splitList(v)
	}
	return cfg, nil
}

// LoadServiceConfig layers the environment over an optional JSON file
// over the defaults, then validates the result.
func LoadServiceConfig(path string) (*Config, error) {
	env, err := FromEnv()
	if err != nil {
		return nil, err
	}
	merged := env
	if path != "" {
		file, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		merged = merged.MergeWithDefaults(*file)
	}
	merged = merged.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535, got %d", c.Port)
	}
	if c.QuizSessionTTLMin < 1 {
		return fmt.Errorf("config error: 'quiz_session_ttl_minutes' must be positive")
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.KnowledgeBasePath != "" {
		if _, err := os.Stat(c.KnowledgeBasePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: knowledge base file not found: %s", c.KnowledgeBasePath)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
func (c Config) MergeWithDefaults(defaults Config) Config {
	result := c

	pick := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	pick(&result.DatabaseURL, defaults.DatabaseURL)
	pick(&result.KnowledgeBasePath, defaults.KnowledgeBasePath)
	pick(&result.RedisURL, defaults.RedisURL)
	pick(&result.AMQPURL, defaults.AMQPURL)
	pick(&result.AMQPExchange, defaults.AMQPExchange)
	pick(&result.ExportS3Bucket, defaults.ExportS3Bucket)
	pick(&result.ExportS3Region, defaults.ExportS3Region)
	pick(&result.ExportS3Prefix, defaults.ExportS3Prefix)
	pick(&result.ExportS3Endpoint, defaults.ExportS3Endpoint)
	pick(&result.LogLevel, defaults.LogLevel)

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.QuizSessionTTLMin == 0 {
		result.QuizSessionTTLMin = defaults.QuizSessionTTLMin
	}
	if len(result.CORSAllowedOrigins) == 0 {
		result.CORSAllowedOrigins = defaults.CORSAllowedOrigins
	}

	return result
}

// QuizSessionTTL is the idle lifetime of a quiz session.
func (c *Config) QuizSessionTTL() time.Duration {
	return time.Duration(c.QuizSessionTTLMin) * time.Minute
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// ParseLogLevel maps debug, info, warn and error to slog levels. An empty
// string is info.
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
