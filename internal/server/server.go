// Package server runs the HTTP listener and shuts it down gracefully.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// ShutdownFunc is a function that shuts down a component gracefully.
type ShutdownFunc func(ctx context.Context) error

// Config holds listener settings.
type Config struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Server wraps http.Server with graceful shutdown.
type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
	logger          *slog.Logger

	mu            sync.Mutex
	shutdownFuncs []ShutdownFunc
}

// New creates a new Server instance.
func New(handler http.Handler, cfg Config, logger *slog.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
		},
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}
}

// OnShutdown registers a function to be called during graceful shutdown.
// Functions run in reverse registration order after the HTTP server stops.
func (s *Server) OnShutdown(name string, fn ShutdownFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shutdownFuncs = append(s.shutdownFuncs, func(ctx context.Context) error {
		s.logger.Info("shutting down component", "name", name)
		if err := fn(ctx); err != nil {
			s.logger.Error("component shutdown error", "name", name, "error", err)
			return err
		}
		s.logger.Info("component stopped", "name", name)
		return nil
	})
}

// Run listens on the configured port and blocks until ctx is done or
// SIGINT/SIGTERM arrives, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutdown requested", "cause", context.Cause(ctx).Error())
		return s.gracefulShutdown()
	}
}

func (s *Server) gracefulShutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	s.logger.Info("stopping HTTP server", "timeout", s.shutdownTimeout)
	s.httpServer.SetKeepAlivesEnabled(false)
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}

	s.mu.Lock()
	funcs := s.shutdownFuncs
	s.mu.Unlock()

	var errs []error
	for i := len(funcs) - 1; i >= 0; i-- {
		if err := funcs[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		s.logger.Error("shutdown completed with errors", "error_count", len(errs))
		return errors.Join(errs...)
	}

	s.logger.Info("server stopped gracefully")
	return nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}
