// Package gin exposes the summarization pipeline over HTTP using the Gin
// web framework.
package gin

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/blogsumm"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// Server defaults.
const (
	DefaultMaxBodyBytes    = 1 << 20
	DefaultShutdownTimeout = 10 * time.Second
)

// Server serves the blogsumm HTTP API.
type Server struct {
	engine *gin.Engine

	pipeline  blogsumm.Pipeline
	summaries blogsumm.SummaryService
	logger    *slog.Logger

	allowedOrigins  []string
	production      bool
	maxBodyBytes    int64
	shutdownTimeout time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for request and error logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithAllowedOrigins sets the CORS origins. Empty or "*" allows all.
func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) {
		s.allowedOrigins = origins
	}
}

// WithProduction hides internal error details from responses.
func WithProduction(production bool) Option {
	return func(s *Server) {
		s.production = production
	}
}

// WithMaxBodyBytes caps request body size.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		s.maxBodyBytes = n
	}
}

// WithShutdownTimeout bounds graceful shutdown in Run.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.shutdownTimeout = d
	}
}

// NewServer creates a Server running pipeline and serving history from
// summaries.
func NewServer(pipeline blogsumm.Pipeline, summaries blogsumm.SummaryService, opts ...Option) *Server {
	s := &Server{
		pipeline:        pipeline,
		summaries:       summaries,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxBodyBytes:    DefaultMaxBodyBytes,
		shutdownTimeout: DefaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	engine := gin.New()
	engine.Use(Recovery(s.logger))
	engine.Use(RequestLogger(s.logger))
	engine.Use(CORS(s.allowedOrigins))
	engine.Use(MaxBodySize(s.maxBodyBytes))
	s.registerRoutes(engine)
	s.engine = engine

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

// Run listens on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("http server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
