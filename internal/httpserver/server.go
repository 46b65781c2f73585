// internal/httpserver/server.go
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/navdir/internal/config"
	"github.com/MrSnakeDoc/navdir/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navdir/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/navdir/internal/httpserver/mw"
	"github.com/MrSnakeDoc/navdir/internal/httpserver/routes"
	"github.com/MrSnakeDoc/navdir/internal/logger"
)

const defaultMaxBodyBytes = 1 << 20

// Server wraps the HTTP server and its dependencies.
type Server struct {
	http    *http.Server
	logger  logger.Logger
	started time.Time
}

// New builds the HTTP server (router, middlewares, route registration).
func New(cfg *config.Config, loggerClient logger.Logger, d deps.Deps) (*Server, error) {
	handler, err := NewHandler(cfg.RequestTimeout, loggerClient, d)
	if err != nil {
		return nil, err
	}

	s := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return &Server{
		http:    s,
		logger:  loggerClient,
		started: d.StartTime,
	}, nil
}

// NewHandler builds the router alone, for tests and embedding.
func NewHandler(timeout time.Duration, loggerClient logger.Logger, d deps.Deps) (http.Handler, error) {
	if d.Store == nil || d.Renderer == nil {
		return nil, errors.New("httpserver: store and renderer are required")
	}
	if d.Logger == nil {
		d.Logger = loggerClient
	}
	if d.MaxBodyBytes <= 0 {
		d.MaxBodyBytes = defaultMaxBodyBytes
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	compress, err := mw.Compress()
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	// --- Global middlewares (safe defaults)
	r.Use(middleware.GetHead)
	r.Use(middleware.RequestID)               // X-Request-ID on each request
	r.Use(middleware.Recoverer)               // never crash the process on panic
	r.Use(middleware.Timeout(timeout))        // per-request timeout, writes are detached from it
	r.Use(mw.Log(loggerClient, d.TrustProxy)) // structured access logs
	r.Use(mw.CORS())                          // allow-all, answers preflights
	r.Use(compress)

	r.NotFound(handlers.NotFound())
	r.MethodNotAllowed(handlers.MethodNotAllowed())

	routes.RegisterAll(r, d)

	return r, nil
}

// Start runs the HTTP server (blocks until error or shutdown).
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.http.Addr, err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until shutdown.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Infof("HTTP server listening on %s", ln.Addr())
	err := s.http.Serve(ln)
	// http.ErrServerClosed is expected on graceful shutdown.
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop gracefully shuts down the server with the provided context deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down...",
		logger.Duration("uptime", time.Since(s.started)))
	return s.http.Shutdown(ctx)
}
