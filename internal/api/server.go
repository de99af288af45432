package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/holdi/holdi/internal/calculation"
	"github.com/holdi/holdi/internal/domain"
	"github.com/holdi/holdi/internal/logging"
	"github.com/holdi/holdi/internal/store"
)

// Config holds the HTTP server settings.
type Config struct {
	Addr string
	// RateLimit is the sustained requests per second allowed per client IP;
	// zero disables limiting.
	RateLimit       float64
	RateBurst       int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns the settings used by `holdi serve`.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		RateLimit:       10,
		RateBurst:       20,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Server is the holdi HTTP service.
type Server struct {
	cfg     Config
	handler http.Handler
	metrics *Metrics
	logger  *logging.ZapLogger
	limiter *RateLimiter // nil when rate limiting is off
	srv     *http.Server
}

// NewServer builds the routes. A nil logger discards logs.
func NewServer(cfg Config, engine *calculation.CalculationEngine, plans store.PlanStore, catalog domain.Catalog, logger *logging.ZapLogger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.With("component", "api")
	metrics := NewMetrics()
	h := NewHandler(engine, plans, catalog, metrics, logger)

	var limiter *RateLimiter
	limit := func(next http.HandlerFunc) http.Handler { return next }
	if cfg.RateLimit > 0 {
		limiter = NewRateLimiter(cfg.RateLimit, cfg.RateBurst)
		limit = func(next http.HandlerFunc) http.Handler {
			return RateLimitMiddleware(limiter, metrics, logger, next)
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.Health)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.Handle("GET /catalog", limit(h.Catalog))
	mux.Handle("POST /allocation", limit(h.Allocation))
	mux.Handle("POST /projection", limit(h.Projection))
	mux.Handle("GET /plans", limit(h.ListPlans))
	mux.Handle("POST /plans", limit(h.SavePlan))
	mux.Handle("GET /plans/{id}", limit(h.GetPlan))
	mux.Handle("GET /plans/{id}/projection", limit(h.PlanProjection))
	mux.Handle("DELETE /plans/{id}", limit(h.DeletePlan))

	return &Server{
		cfg:     cfg,
		handler: instrument(metrics, logger, mux),
		metrics: metrics,
		logger:  logger,
		limiter: limiter,
	}
}

// Handler returns the fully wrapped router.
func (s *Server) Handler() http.Handler { return s.handler }

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.srv = &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	if s.limiter != nil {
		go s.limiter.Run(ctx, sweepInterval)
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", s.cfg.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err, ok := <-errChan:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("server exited")
	return nil
}
