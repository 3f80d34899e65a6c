// ABOUTME: HTTP service wrapper: chi router, common middleware, and graceful shutdown.
// ABOUTME: Routes are registered by a RoutesRegistry so tests can mount them without a listener.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/2389-research/contentai/internal/logging"
)

// RoutesRegistry is a function that registers routes on a chi.Router
type RoutesRegistry func(r chi.Router)

// Service wraps an HTTP server with its configuration and router
type Service struct {
	// Configuration fields (set before Init)
	Addr              string
	Logger            *slog.Logger
	Routes            RoutesRegistry
	RateLimitRequests int // per client IP per window, 0 disables
	RateLimitWindow   time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	Metrics           *Metrics // created by Init when nil

	// Runtime fields (populated by Init)
	HTTPServer *http.Server
	Router     *chi.Mux
}

// Init initializes the service by setting up the router and HTTP server
func (s *Service) Init() {
	if s.Logger == nil {
		s.Logger = slog.Default()
	}
	if s.Metrics == nil {
		s.Metrics = NewMetrics()
	}
	s.Router = chi.NewRouter()

	s.Router.Use(middleware.RequestID)
	s.Router.Use(logging.RequestLogger(s.Logger))
	s.Router.Use(middleware.Logger)
	s.Router.Use(middleware.Recoverer)
	s.Router.Use(s.Metrics.Middleware)
	if s.RateLimitRequests > 0 {
		window := s.RateLimitWindow
		if window == 0 {
			window = time.Minute
		}
		s.Router.Use(httprate.LimitByIP(s.RateLimitRequests, window))
	}

	s.Router.Method(http.MethodGet, "/metrics", s.Metrics.Handler())
	if s.Routes != nil {
		s.Routes(s.Router)
	}

	readTimeout := s.ReadTimeout
	if readTimeout == 0 {
		readTimeout = 15 * time.Second
	}
	writeTimeout := s.WriteTimeout
	if writeTimeout == 0 {
		writeTimeout = 15 * time.Second
	}
	idleTimeout := s.IdleTimeout
	if idleTimeout == 0 {
		idleTimeout = 60 * time.Second
	}

	s.HTTPServer = &http.Server{
		Addr:         s.Addr,
		Handler:      s.Router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Service) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("starting http service", slog.String("addr", s.HTTPServer.Addr))
		errCh <- s.HTTPServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.Logger.Info("shutting down http service")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.HTTPServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
