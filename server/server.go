package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/s0up4200/qbitgate/filter"
	"github.com/s0up4200/qbitgate/gateway"
)

// Server exposes the gateway over HTTP
type Server struct {
	router    *chi.Mux
	service   *gateway.Service
	compiler  filter.Compiler
	evaluator *filter.Evaluator
	logger    zerolog.Logger

	addr            string
	basePath        string
	shutdownTimeout time.Duration
}

// Option configures a Server
type Option func(*Server)

// WithAddr sets the listen address used by Start
func WithAddr(addr string) Option {
	return func(s *Server) {
		s.addr = addr
	}
}

// WithBasePath mounts the API under path instead of /api/qbittorrent
func WithBasePath(path string) Option {
	return func(s *Server) {
		s.basePath = path
	}
}

// WithCompiler sets the compiler used for ?filter= expressions
func WithCompiler(c filter.Compiler) Option {
	return func(s *Server) {
		s.compiler = c
	}
}

// WithShutdownTimeout bounds how long Start waits for in-flight requests
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.shutdownTimeout = d
	}
}

// New creates a Server with all routes registered
func New(service *gateway.Service, logger zerolog.Logger, opts ...Option) *Server {
	s := &Server{
		router:          chi.NewRouter(),
		service:         service,
		evaluator:       filter.NewEvaluator(),
		logger:          logger,
		addr:            ":4000",
		basePath:        "/api/qbittorrent",
		shutdownTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.compiler == nil {
		s.compiler = filter.NewCompiler()
	}
	s.basePath = strings.TrimRight(s.basePath, "/")

	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(forwardCookie)
	s.routes(s.router)

	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts
// down gracefully
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.addr).Str("base_path", s.basePath).Msg("Server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
