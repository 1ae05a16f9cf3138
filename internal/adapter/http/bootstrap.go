package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskapi/internal/core/port"
	"taskapi/internal/core/telemetry"
	"taskapi/pkg/config"
)

type Server struct {
	container *Container
	srv       *http.Server
	shutdown  config.ServerConfig
}

func NewServer(ctx context.Context, cfg *config.Config, metrics *telemetry.AppMetrics, probe port.Telemetry, logger *config.Logger) (*Server, error) {
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	container, err := NewContainer(ctx, cfg, probe)

	if err != nil {
		return nil, err
	}

	router := SetupRouter(HandlersConfig{
		AuthHandler:   container.AuthHandler,
		TaskHandler:   container.TaskHandler,
		HealthHandler: container.HealthHandler,
		Tokens:        container.Tokens,
	}, RouterOptions{
		ServiceName: cfg.Telemetry.ServiceName,
		Metrics:     metrics,
		Probe:       probe,
		Logger:      logger,
	})

	return &Server{
		container: container,
		shutdown:  cfg.Server,
		srv: &http.Server{
			Addr:         cfg.Server.Addr(),
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}, nil
}

func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Run serves until ctx is cancelled, then drains in-flight requests for up
// to SHUTDOWN_TIMEOUT before closing the store.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		slog.Info("Server starting", "addr", s.srv.Addr, "environment", s.shutdown.Environment)

		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.container.Close()
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down gracefully...", "timeout", s.shutdown.ShutdownTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdown.ShutdownTimeout)
	defer cancel()

	return errors.Join(s.srv.Shutdown(shutdownCtx), s.container.Close())
}
