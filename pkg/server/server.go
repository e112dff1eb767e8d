// Package server assembles the HTTP server: routes, middleware chain,
// and graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"ideaforge-hq/ideaforge/pkg/api"
	"ideaforge-hq/ideaforge/pkg/api/middleware"
	"ideaforge-hq/ideaforge/pkg/config"
	"ideaforge-hq/ideaforge/pkg/ratelimit"
	"ideaforge-hq/ideaforge/pkg/telemetry/health"
	"ideaforge-hq/ideaforge/pkg/telemetry/metrics"
)

// Server is the HTTP server for the idea-generation API.
type Server struct {
	config       *config.Config
	client       api.CompletionClient
	limiter      *ratelimit.FixedWindow
	checker      *health.Checker
	metrics      *metrics.Collector
	version      VersionInfo
	httpServer   *http.Server
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// VersionInfo is the build information served at /version.
type VersionInfo struct {
	Version   string
	Commit    string
	BuildTime string
}

// New creates a server. collector may be nil when metrics are disabled.
func New(cfg *config.Config, client api.CompletionClient, limiter *ratelimit.FixedWindow, checker *health.Checker, collector *metrics.Collector, version VersionInfo) *Server {
	return &Server{
		config:  cfg,
		client:  client,
		limiter: limiter,
		checker: checker,
		metrics: collector,
		version: version,
	}
}

// Start starts the HTTP server and blocks until shutdown, which is
// triggered by ctx cancellation or SIGINT/SIGTERM.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	s.httpServer = &http.Server{
		Addr:         s.config.Server.ListenAddress,
		Handler:      s.setupRoutes(),
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			"address", s.config.Server.ListenAddress,
			"rate_limit", s.config.RateLimit.MaxRequests,
			"window", s.config.RateLimit.Window.String(),
		)

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-ctx.Done():
		slog.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig.String())
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	}
}

// Shutdown gracefully shuts down the server, allowing in-flight requests
// to finish within the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		slog.Info("initiating graceful shutdown", "timeout", s.config.Server.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
		defer cancel()

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("error during server shutdown", "error", err)
				shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			}
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		slog.Info("server stopped")
	})

	return shutdownErr
}

// setupRoutes configures routes and the middleware chain.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	// The ideas route carries its own guards: declared-size check plus
	// hard byte cap, then the per-caller rate limit. The rate check runs
	// before body parsing, so invalid requests still consume a slot.
	var ideasHandler http.Handler = api.NewIdeasHandler(s.client, s.metrics)
	ideasHandler = middleware.RateLimit(s.limiter, s.metrics)(ideasHandler)
	ideasHandler = middleware.SizeLimit(api.MaxRequestBytes)(ideasHandler)
	mux.Handle("/v1/ideas", s.instrument("/v1/ideas", ideasHandler))

	mux.HandleFunc("/healthz", s.checker.LivenessHandler())
	mux.HandleFunc("/readyz", s.checker.ReadinessHandler())
	mux.HandleFunc("/version", health.VersionHandler(s.version.Version, s.version.Commit, s.version.BuildTime))

	if s.metrics != nil && s.config.Telemetry.Metrics.Enabled {
		mux.Handle(s.config.Telemetry.Metrics.Path, s.metrics.Handler())
	}

	var handler http.Handler = mux
	handler = middleware.CORS(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Logging(handler)
	handler = middleware.Recovery(handler)

	return handler
}

// instrument records request count and latency for a route.
func (s *Server) instrument(route string, next http.Handler) http.Handler {
	if s.metrics == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		start := middleware.GetStartTime(r.Context())
		if start.IsZero() {
			return
		}
		s.metrics.RecordRequest(route, rec.status, time.Since(start))
	})
}

// statusRecorder captures the response status for instrumentation.
type statusRecorder struct {
	http.ResponseWriter
	status  int
	written bool
}

func (rec *statusRecorder) WriteHeader(code int) {
	if !rec.written {
		rec.status = code
		rec.written = true
	}
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	if !rec.written {
		rec.status = http.StatusOK
		rec.written = true
	}
	return rec.ResponseWriter.Write(b)
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Handler returns the configured HTTP handler, used by tests to exercise
// the full chain without binding a port.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}
