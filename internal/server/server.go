// Package server exposes the bigcalc evaluator as an HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/service"
	"github.com/agbru/bigcalc/pkg/models"
)

// operationEndpoints maps registered operation names to their routes.
var operationEndpoints = map[string]string{
	"add": "/add",
	"sub": "/subtract",
	"mul": "/multiply",
}

// Server represents the HTTP server of the bigcalc API.
// It wraps the standard http.Server and adds application-specific configuration
// and graceful shutdown capabilities.
type Server struct {
	service        service.Service
	cfg            config.AppConfig
	httpServer     *http.Server
	logger         logging.Logger
	shutdownSignal chan os.Signal
	rateLimiter    *RateLimiter
	securityConfig SecurityConfig
	metrics        *Metrics
	timeouts       Timeouts
	version        models.VersionResponse
	operations     []models.OperationInfo
}

// NewServer creates a Server evaluating through svc. The request timeout and
// the body size limit are derived from cfg; options are applied afterwards
// and take precedence.
func NewServer(svc service.Service, cfg config.AppConfig, opts ...Option) *Server {
	s := &Server{
		service:        svc,
		cfg:            cfg,
		logger:         logging.NewLogger(os.Stdout, "server"),
		shutdownSignal: make(chan os.Signal, 1),
		securityConfig: DefaultSecurityConfig(),
		metrics:        NewMetrics(),
		timeouts:       DefaultServerTimeouts(),
		version: models.VersionResponse{
			Version:   "dev",
			GoVersion: runtime.Version(),
			OS:        runtime.GOOS,
			Arch:      runtime.GOARCH,
		},
	}
	if cfg.Timeout > 0 {
		s.timeouts.RequestTimeout = cfg.Timeout
	}
	if limit := bodyLimitFor(cfg.MaxDigits); limit > s.securityConfig.MaxBodyBytes {
		s.securityConfig.MaxBodyBytes = limit
	}

	for _, opt := range opts {
		opt(s)
	}

	// Responses must be writable for as long as an evaluation may run.
	if floor := s.timeouts.RequestTimeout + 10*time.Second; s.timeouts.WriteTimeout < floor {
		s.timeouts.WriteTimeout = floor
	}

	if s.rateLimiter == nil {
		s.rateLimiter = NewRateLimiter(DefaultRateLimiterConfig())
	}

	mux := http.NewServeMux()

	// Middleware chain: Security -> RateLimit -> Logging -> Metrics -> Handler
	s.handle(mux, "/evaluate", s.handleEvaluate)
	for _, op := range svc.Operations() {
		path, ok := operationEndpoints[op.Name()]
		info := models.OperationInfo{Name: op.Name(), Symbol: op.Symbol()}
		if ok {
			info.Endpoint = path
			s.handle(mux, path, s.handleOperation(op.Name(), op.Symbol()))
		}
		s.operations = append(s.operations, info)
	}
	s.handle(mux, "/operations", s.handleOperations)
	s.handle(mux, "/health", s.handleHealth)
	s.handle(mux, "/version", s.handleVersion)
	s.handle(mux, "/metrics", s.handleMetrics)

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  s.timeouts.ReadTimeout,
		WriteTimeout: s.timeouts.WriteTimeout,
		IdleTimeout:  s.timeouts.IdleTimeout,
	}

	return s
}

func (s *Server) handle(mux *http.ServeMux, path string, handler http.HandlerFunc) {
	mux.HandleFunc(path, s.wrapWithMiddleware(path, handler))
}

// wrapWithMiddleware applies the full middleware chain to a handler.
func (s *Server) wrapWithMiddleware(endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	wrapped := s.metricsMiddleware(endpoint, handler)
	wrapped = s.loggingMiddleware(wrapped)
	wrapped = RateLimitMiddleware(s.rateLimiter, wrapped)
	wrapped = SecurityMiddleware(s.securityConfig, wrapped)
	return wrapped
}

// Handler returns the root handler with every route and middleware mounted.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start listens on the configured port and blocks until SIGINT or SIGTERM,
// then shuts down gracefully within the shutdown timeout.
func (s *Server) Start() error {
	signal.Notify(s.shutdownSignal, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(s.shutdownSignal)
	defer s.rateLimiter.Stop()

	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("starting server",
			logging.String("addr", s.httpServer.Addr),
			logging.Duration("request_timeout", s.timeouts.RequestTimeout),
			logging.Int("max_digits", s.cfg.MaxDigits))
		s.logger.Println("Available endpoints:")
		s.logger.Println("  GET  /evaluate?expr=<expression>")
		s.logger.Println("  POST /evaluate {\"expression\": \"...\"}")
		for _, op := range s.operations {
			if op.Endpoint != "" {
				s.logger.Printf("  GET  %s?a=<integer>&b=<integer>", op.Endpoint)
			}
		}
		s.logger.Println("  GET  /operations, /health, /version, /metrics")

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-s.shutdownSignal:
		s.logger.Info("shutdown signal received, draining requests")
	case err := <-errCh:
		return apperrors.NewServerError("server failed to start", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeouts.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return apperrors.NewServerError("failed to gracefully shutdown server", err)
	}

	s.logger.Info("server stopped gracefully")
	return nil
}

// bodyLimitFor sizes the request body limit so that an expression holding a
// few maximal operands still fits.
func bodyLimitFor(maxDigits int) int {
	if maxDigits <= 0 {
		return 0
	}
	return 4*maxDigits + 4096
}
