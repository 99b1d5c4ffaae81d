// Package server exposes layouts and interactive transitions over HTTP.
//
// Clients create a session from a scene, then drive transitions on it:
//
//	POST   /v1/sessions                      create from a scene (JSON or TOML body)
//	GET    /v1/sessions/{id}                 engine state
//	DELETE /v1/sessions/{id}                 drop the session
//	GET    /v1/sessions/{id}/attributes      placements, optionally within x,y,w,h
//	GET    /v1/sessions/{id}/snapshot        current frame as svg or json
//	POST   /v1/sessions/{id}/layout          switch layouts without a transition
//	POST   /v1/sessions/{id}/transition      begin an interactive transition
//	POST   /v1/sessions/{id}/progress        set progress or apply a pinch scale
//	POST   /v1/sessions/{id}/finish          commit
//	POST   /v1/sessions/{id}/cancel          abandon
//	POST   /v1/sessions/{id}/release         settle from the final gesture sample
//	POST   /v1/render                        stateless pipeline run, cached
//
// Each session's engine is used by one request at a time.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/shelfview/pkg/buildinfo"
	"github.com/matzehuels/shelfview/pkg/observability"
	"github.com/matzehuels/shelfview/pkg/pipeline"
)

// Defaults for Config.
const (
	DefaultAddr            = ":8080"
	DefaultMaxBodyBytes    = 1 << 20
	DefaultCleanupInterval = time.Minute
)

// Config configures a Server.
type Config struct {
	Addr            string        `json:"addr" toml:"addr"`
	SessionTTL      time.Duration `json:"session_ttl" toml:"session_ttl"`
	MaxBodyBytes    int64         `json:"max_body_bytes" toml:"max_body_bytes"`
	CleanupInterval time.Duration `json:"cleanup_interval" toml:"cleanup_interval"`
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.CleanupInterval <= 0 {
		c.CleanupInterval = DefaultCleanupInterval
	}
}

// Server serves the session API.
type Server struct {
	cfg    Config
	store  *Store
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New builds a server. A nil runner disables the render endpoint's cache
// but keeps the endpoint.
func New(cfg Config, runner *pipeline.Runner, logger *log.Logger) *Server {
	cfg.setDefaults()
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	s := &Server{
		cfg:    cfg,
		store:  NewStore(cfg.SessionTTL),
		runner: runner,
		logger: logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// Store returns the session store.
func (s *Server) Store() *Store { return s.store }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.handleCreate)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGet)
				r.Delete("/", s.handleDelete)
				r.Get("/attributes", s.handleAttributes)
				r.Get("/snapshot", s.handleSnapshot)
				r.Post("/layout", s.handleSetLayout)
				r.Post("/transition", s.handleBegin)
				r.Post("/progress", s.handleProgress)
				r.Post("/finish", s.handleFinish)
				r.Post("/cancel", s.handleCancel)
				r.Post("/release", s.handleRelease)
			})
		})
	})
	return r
}

// instrument logs each request and reports it to the HTTP hooks under its
// route pattern.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		w.Header().Set("Server", buildinfo.UserAgent())
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		hooks := observability.HTTP()

		next.ServeHTTP(ww, r)

		route := routeOf(r)
		hooks.OnRequest(r.Context(), r.Method, route)
		hooks.OnResponse(r.Context(), r.Method, route, ww.Status(), time.Since(start))
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

func routeOf(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
		return rc.RoutePattern()
	}
	return r.URL.Path
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go s.cleanupLoop(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.store.Cleanup(); n > 0 {
				s.logger.Debug("expired sessions removed", "count", n)
			}
		}
	}
}
