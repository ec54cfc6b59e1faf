// Package server exposes the frame solver over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/alexiusacademia/goframe/internal/config"
	"github.com/alexiusacademia/goframe/internal/frame"
	"github.com/alexiusacademia/goframe/internal/metrics"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ShutdownTimeout bounds how long Run waits for in-flight requests
const ShutdownTimeout = 5 * time.Second

// Server wires the solver, metrics and middleware into an HTTP handler
type Server struct {
	cfg     *config.Config
	logger  *zap.Logger
	solver  *frame.Solver
	metrics *metrics.Registry
	limiter *IPRateLimiter
	router  *mux.Router
}

// New builds a server. A nil logger disables logging and a nil registry
// gets a fresh one.
func New(cfg *config.Config, logger *zap.Logger, reg *metrics.Registry) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if reg == nil {
		reg = metrics.NewRegistry()
	}

	solver := frame.NewSolver(logger.Named("solver"))
	solver.ConditionLimit = cfg.ConditionLimit

	s := &Server{
		cfg:     cfg,
		logger:  logger,
		solver:  solver,
		metrics: reg,
		limiter: NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		router:  mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(requestID, s.observe)

	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(s.limiter.LimitMiddleware)

	api.HandleFunc("/solve", s.handleSolve).Methods(http.MethodPost)
	api.HandleFunc("/combinations", s.handleCombinations).Methods(http.MethodPost)
	api.HandleFunc("/report", s.handleReport).Methods(http.MethodPost)
}

// Handler returns the root handler with CORS applied
func (s *Server) Handler() http.Handler {
	return CORS(s.router)
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.limiter.Run(sweepCtx, LimiterSweepInterval, LimiterIdleTimeout)

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", zap.String("addr", s.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("Server stopped")
	return nil
}
