// Package server exposes the forcegraph pipeline over HTTP.
//
// Routes:
//
//	POST /v1/render   graph record in, one rendered figure out
//	POST /v1/layout   graph record in, layout JSON out
//	GET  /healthz     liveness probe
//	GET  /version     build information
//
// Request bodies are the same JSON (or TOML, with Content-Type
// application/toml) records the CLI reads. Query parameters override the
// server's configured defaults, e.g.
//
//	POST /v1/render?format=svg&backend=plot&engine=spring&weight_scale=10
//
// Errors are returned as {"code": "...", "message": "..."} with a status
// derived from the error code.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/forcegraph/pkg/pipeline"
)

// Defaults used when Config leaves a field zero.
const (
	DefaultAddr           = ":8080"
	DefaultRequestTimeout = 60 * time.Second
	DefaultMaxBodyBytes   = 10 << 20
	shutdownTimeout       = 10 * time.Second
)

// Config configures the HTTP server.
type Config struct {
	Addr           string
	RequestTimeout time.Duration
	MaxBodyBytes   int64
}

func (c Config) withDefaults() Config {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return c
}

// Server serves the rendering API.
type Server struct {
	runner   *pipeline.Runner
	defaults pipeline.Options
	cfg      Config
	logger   *log.Logger
}

// New creates a server rendering through runner. defaults are the pipeline
// options applied before each request's query parameters.
func New(runner *pipeline.Runner, defaults pipeline.Options, cfg Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner:   runner,
		defaults: defaults,
		cfg:      cfg.withDefaults(),
		logger:   logger,
	}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.cfg.Addr }

// Handler returns the API router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(observe)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(s.cfg.RequestTimeout))
		r.Post("/render", s.handleRender)
		r.Post("/layout", s.handleLayout)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, errNotFound(r.URL.Path))
	})
	r.MethodNotAllowed(writeMethodNotAllowed)
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
// A clean shutdown returns nil.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
