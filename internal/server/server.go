package server

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/welcome/webapp/internal/config"
	appmw "github.com/welcome/webapp/internal/middleware"
	"go.uber.org/zap"
)

// Server serves the greeting and health routes.
type Server struct {
	cfg    *config.Config
	log    *zap.Logger
	router chi.Router
	http   *http.Server
}

// New creates a new server.
func New(cfg *config.Config, log *zap.Logger) *Server {
	return newServer(cfg, log, Routes)
}

func newServer(cfg *config.Config, log *zap.Logger, routes []Route) *Server {
	r := chi.NewRouter()

	r.Use(appmw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(appmw.Metrics)
	r.Use(appmw.Logging(log))
	// Inside Metrics and Logging so recovered panics are logged and counted as 500.
	r.Use(chimw.Recoverer)

	for _, rt := range routes {
		r.Method(rt.Method, rt.Pattern, rt.Handler)
	}
	for pattern, methods := range allowedMethods(routes) {
		r.Method(http.MethodOptions, pattern, optionsHandler(methods))
	}
	if cfg.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return &Server{
		cfg:    cfg,
		log:    log,
		router: r,
		http: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      r,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
			ErrorLog:     zap.NewStdLog(log.Named("http")),
		},
	}
}

// Handler returns the routed handler, including middleware.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start binds the configured address and serves until Shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Shutdown. It returns
// http.ErrServerClosed after a graceful stop.
func (s *Server) Serve(ln net.Listener) error {
	s.log.Info("starting server",
		zap.String("addr", ln.Addr().String()),
		zap.Bool("debug", s.cfg.Debug),
		zap.Bool("metrics", s.cfg.MetricsEnabled),
	)
	return s.http.Serve(ln)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.log.Info("server stopped")
	return nil
}
