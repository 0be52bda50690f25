// Package config loads memberdesk configuration.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Storage and idempotency backends understood by the members API.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendNone     = "none"
)

// Config is the full configuration shared by both binaries.
type Config struct {
	API    APIConfig    `koanf:"api"`
	Server ServerConfig `koanf:"server"`
	Redis  RedisConfig  `koanf:"redis"`
	Log    LogConfig    `koanf:"log"`
}

// APIConfig points the desk at the remote member store.
type APIConfig struct {
	BaseURL string `koanf:"base_url"`
	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration `koanf:"timeout"`
}

// ServerConfig configures the members API server.
type ServerConfig struct {
	Port               int           `koanf:"port"`
	StorageBackend     string        `koanf:"storage_backend"`
	DatabaseURL        string        `koanf:"database_url"`
	IdempotencyBackend string        `koanf:"idempotency_backend"`
	ReadHeaderTimeout  time.Duration `koanf:"read_header_timeout"`
	ShutdownTimeout    time.Duration `koanf:"shutdown_timeout"`
}

// RedisConfig configures the Redis idempotency store.
type RedisConfig struct {
	Addr     string        `koanf:"addr"`
	Password string        `koanf:"password"`
	DB       int           `koanf:"db"`
	TTL      time.Duration `koanf:"ttl"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // console | json
	File   string `koanf:"file"`
}

func applyDefaults(cfg *Config) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "http://localhost:8080"
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.StorageBackend == "" {
		cfg.Server.StorageBackend = BackendMemory
	}
	if cfg.Server.IdempotencyBackend == "" {
		cfg.Server.IdempotencyBackend = cfg.Server.StorageBackend
	}
	if cfg.Server.ReadHeaderTimeout == 0 {
		cfg.Server.ReadHeaderTimeout = 10 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}

	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Redis.TTL == 0 {
		cfg.Redis.TTL = 24 * time.Hour
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("api.base_url must be an absolute URL, got %q", c.API.BaseURL))
	}
	if c.API.Timeout < 0 {
		errs = append(errs, errors.New("api.timeout cannot be negative"))
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	switch c.Server.StorageBackend {
	case BackendMemory:
	case BackendPostgres:
		if strings.TrimSpace(c.Server.DatabaseURL) == "" {
			errs = append(errs, errors.New("server.database_url is required for the postgres storage backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("server.storage_backend must be memory or postgres, got %q", c.Server.StorageBackend))
	}
	switch c.Server.IdempotencyBackend {
	case BackendMemory, BackendRedis, BackendNone:
	case BackendPostgres:
		if c.Server.StorageBackend != BackendPostgres {
			errs = append(errs, errors.New("server.idempotency_backend postgres requires the postgres storage backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("server.idempotency_backend must be memory, postgres, redis or none, got %q", c.Server.IdempotencyBackend))
	}

	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be console or json, got %q", c.Log.Format))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// ParseLevel checks a log level name.
func ParseLevel(s string) (string, error) {
	switch strings.ToLower(s) {
	case "debug", "info", "warn", "error":
		return strings.ToLower(s), nil
	}
	return "", fmt.Errorf("log.level must be debug, info, warn or error, got %q", s)
}
