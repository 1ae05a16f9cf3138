// Package config loads application settings from environment variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"

	// MinSigningKeySize is the HMAC-SHA-256 key size in bytes.
	MinSigningKeySize = 32
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Cache     CacheConfig
	Telemetry TelemetryConfig
	Log       LogConfig
}

type ServerConfig struct {
	Environment     string        `envconfig:"APP_ENV" default:"development"`
	Port            int           `envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
}

type DatabaseConfig struct {
	// Driver is sqlite or postgres.
	Driver       string `envconfig:"DATABASE_DRIVER" default:"sqlite"`
	Path         string `envconfig:"DATABASE_PATH" default:"taskapi.db"`
	URL          string `envconfig:"DATABASE_URL"`
	MaxOpenConns int    `envconfig:"DATABASE_MAX_OPEN_CONNS" default:"10"`
	LogSQL       bool   `envconfig:"LOG_SQL" default:"false"`
}

type JWTConfig struct {
	Secret   string        `envconfig:"JWT_SECRET" required:"true"`
	Issuer   string        `envconfig:"JWT_ISSUER" default:"taskapi"`
	Audience string        `envconfig:"JWT_AUDIENCE" default:"taskapi-clients"`
	TTL      time.Duration `envconfig:"JWT_TTL" default:"1h"`
}

type CacheConfig struct {
	// Driver is none, memory or redis.
	Driver        string        `envconfig:"CACHE_DRIVER" default:"none"`
	TTL           time.Duration `envconfig:"CACHE_TTL" default:"5m"`
	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
}

type TelemetryConfig struct {
	Enabled        bool   `envconfig:"TELEMETRY_ENABLED" default:"false"`
	ServiceName    string `envconfig:"OTEL_SERVICE_NAME" default:"taskapi"`
	ServiceVersion string `envconfig:"OTEL_SERVICE_VERSION" default:"1.0.0"`
	OTLPEndpoint   string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT" default:"localhost:4317"`
	MetricsPort    int    `envconfig:"METRICS_PORT" default:"9090"`
}

type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

func (c ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c ServerConfig) IsProduction() bool {
	return c.Environment == "production"
}

func (c TelemetryConfig) MetricsAddr() string {
	return fmt.Sprintf(":%d", c.MetricsPort)
}

// Load reads every section from the environment. Variables are not prefixed,
// so PORT rather than APP_SERVER_PORT.
func Load() (*Config, error) {
	var cfg Config

	sections := []struct {
		name   string
		target interface{}
	}{
		{"server", &cfg.Server},
		{"database", &cfg.Database},
		{"jwt", &cfg.JWT},
		{"cache", &cfg.Cache},
		{"telemetry", &cfg.Telemetry},
		{"log", &cfg.Log},
	}

	for _, section := range sections {
		if err := envconfig.Process("", section.target); err != nil {
			return nil, fmt.Errorf("failed to load %s config: %w", section.name, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad is Load for main: it panics on invalid configuration.
func MustLoad() *Config {
	cfg, err := Load()

	if err != nil {
		panic(err)
	}

	return cfg
}

func (c *Config) Validate() error {
	var errs []error

	if len(c.JWT.Secret) < MinSigningKeySize {
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d bytes", MinSigningKeySize))
	}

	if c.JWT.TTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}

	switch c.Database.Driver {
	case DriverSQLite:
	case DriverPostgres:
		if c.Database.URL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when DATABASE_DRIVER=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported DATABASE_DRIVER %q", c.Database.Driver))
	}

	switch c.Cache.Driver {
	case CacheNone, CacheMemory, CacheRedis:
	default:
		errs = append(errs, fmt.Errorf("unsupported CACHE_DRIVER %q", c.Cache.Driver))
	}

	return errors.Join(errs...)
}
