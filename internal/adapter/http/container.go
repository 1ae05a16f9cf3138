package http

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"taskapi/internal/adapter/cache"
	"taskapi/internal/adapter/cache/memory"
	rediscache "taskapi/internal/adapter/cache/redis"
	"taskapi/internal/adapter/database/postgres"
	pgrepo "taskapi/internal/adapter/database/postgres/repository"
	"taskapi/internal/adapter/database/sqlite"
	sqliterepo "taskapi/internal/adapter/database/sqlite/repository"
	"taskapi/internal/adapter/http/handler"
	"taskapi/internal/core/dispatch"
	"taskapi/internal/core/port"
	"taskapi/internal/core/service"
	"taskapi/internal/core/util"
	"taskapi/pkg/auth"
	"taskapi/pkg/config"
)

type Database interface {
	PingContext(ctx context.Context) error
	Close() error
}

type Container struct {
	DB       Database
	UserRepo port.UserRepository
	TaskRepo port.TaskRepository

	Tokens     *auth.TokenService
	Dispatcher *dispatch.Dispatcher

	AuthHandler   *handler.AuthHandler
	TaskHandler   *handler.TaskHandler
	HealthHandler *handler.HealthHandler

	closers []func() error
}

// NewContainer opens the configured store, wires repositories, services and
// handlers, and fails if any request has no handler.
func NewContainer(ctx context.Context, cfg *config.Config, probe port.Telemetry) (*Container, error) {
	c := &Container{}

	if err := c.openStore(ctx, cfg.Database, probe); err != nil {
		return nil, err
	}

	if err := c.wrapCache(cfg.Cache, probe); err != nil {
		c.Close()
		return nil, err
	}

	tokens, err := auth.NewTokenService(auth.Config{
		SigningKey: cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		Audience:   cfg.JWT.Audience,
		TTL:        cfg.JWT.TTL,
	})

	if err != nil {
		c.Close()
		return nil, err
	}

	c.Tokens = tokens
	c.Dispatcher = dispatch.New(probe)

	authSvc := service.NewAuthService(c.UserRepo, util.NewBcryptHasher(bcrypt.DefaultCost), tokens, probe)
	taskSvc := service.NewTaskService(c.TaskRepo, probe)

	if err := service.Register(c.Dispatcher, authSvc, taskSvc); err != nil {
		c.Close()
		return nil, fmt.Errorf("register handlers: %w", err)
	}

	slog.Info("Dispatcher ready", "requests", c.Dispatcher.Registered(), "token_ttl", tokens.TTL())

	c.AuthHandler = handler.NewAuthHandler(c.Dispatcher)
	c.TaskHandler = handler.NewTaskHandler(c.Dispatcher)
	c.HealthHandler = handler.NewHealthHandler(c.DB, cfg.Database.Driver)

	return c, nil
}

func (c *Container) openStore(ctx context.Context, cfg config.DatabaseConfig, probe port.Telemetry) error {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := postgres.Open(ctx, postgres.Config{URL: cfg.URL, MaxOpenConns: cfg.MaxOpenConns})

		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}

		c.DB = db
		c.UserRepo = pgrepo.NewUserRepository(db, probe)
		c.TaskRepo = pgrepo.NewTaskRepository(db, probe)
	default:
		db, err := sqlite.Open(sqlite.Config{Path: cfg.Path, MaxOpenConns: cfg.MaxOpenConns, LogSQL: cfg.LogSQL})

		if err != nil {
			return fmt.Errorf("open sqlite: %w", err)
		}

		c.DB = db
		c.UserRepo = sqliterepo.NewUserRepository(db, probe)
		c.TaskRepo = sqliterepo.NewTaskRepository(db, probe)
	}

	c.closers = append(c.closers, c.DB.Close)

	slog.Info("Database ready", "driver", cfg.Driver)

	return nil
}

func (c *Container) wrapCache(cfg config.CacheConfig, probe port.Telemetry) error {
	var store port.CacheRepository

	switch cfg.Driver {
	case config.CacheMemory:
		store = memory.NewStore(cfg.TTL, 2*cfg.TTL)
	case config.CacheRedis:
		rdb := rediscache.NewClient(rediscache.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		c.closers = append(c.closers, rdb.Close)
		store = rediscache.NewStore(rdb, "taskapi:")
	default:
		return nil
	}

	c.TaskRepo = cache.NewTaskRepository(c.TaskRepo, store, cfg.TTL, probe)

	slog.Info("Task cache enabled", "driver", cfg.Driver, "ttl", cfg.TTL)

	return nil
}

// Close releases the store and cache connections in reverse order.
func (c *Container) Close() error {
	var firstErr error

	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	c.closers = nil

	return firstErr
}
