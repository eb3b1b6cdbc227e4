// Package server exposes the monitor over HTTP: health, a JSON status
// snapshot and Prometheus metrics.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/haskel/cpuwatch/internal/config"
	"github.com/haskel/cpuwatch/internal/monitor"
	"github.com/haskel/cpuwatch/internal/server/middleware"
)

const shutdownTimeout = 5 * time.Second

// Pipeline is the part of monitor.Pipeline the server reads.
type Pipeline interface {
	Store() *monitor.Store
	State() monitor.State
}

type Server struct {
	httpServer *http.Server
	pipeline   Pipeline
	logger     *slog.Logger
	version    string
}

func New(cfg config.ServerConfig, pipeline Pipeline, logger *slog.Logger, version string) *Server {
	s := &Server{
		pipeline: pipeline,
		logger:   logger,
		version:  version,
	}

	handler := middleware.Chain(
		s.setupRoutes(),
		middleware.Recovery(logger),
		middleware.Logging(logger),
		middleware.RateLimit(middleware.RateLimitConfig{
			Enabled:           cfg.RateLimit.Enabled,
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}),
		middleware.NoStore(),
	)

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, fmt.Sprintf("%d", cfg.Port)),
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) Name() string {
	return "http"
}

func (s *Server) Addr() string {
	return s.httpServer.Addr
}

func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully. A listen
// failure is returned as a task error.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("status server: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("status server listening", "addr", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("status server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info("status server shutting down")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("status server shutdown incomplete", "error", err)
	}
	return nil
}
