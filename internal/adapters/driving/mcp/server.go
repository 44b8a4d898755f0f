package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/fragments-cli/internal/core/domain"
	"github.com/custodia-labs/fragments-cli/internal/logger"
)

// Version is the MCP server version reported to clients. The CLI sets it
// to the build version.
var Version = "dev"

// Server is the MCP server for the fragment collection.
type Server struct {
	ports   *Ports
	server  *mcp.Server
	metrics *metrics
	limiter *rate.Limiter

	closeOnce   sync.Once
	unsubscribe func()
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "fragments",
		Version: Version,
	}

	defaults := domain.DefaultAppSettings().MCP
	s := &Server{
		ports:       ports,
		server:      mcp.NewServer(impl, nil),
		metrics:     newMetrics(),
		limiter:     rate.NewLimiter(rate.Limit(defaults.RateLimit), defaults.Burst),
		unsubscribe: func() {},
	}

	if ports.Changes != nil {
		s.unsubscribe = ports.Changes.Subscribe(s.metrics.observe)
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// SetLimits changes the HTTP rate limit. It is safe to call while serving.
func (s *Server) SetLimits(perSecond float64, burst int) {
	s.limiter.SetLimit(rate.Limit(perSecond))
	s.limiter.SetBurst(burst)
	logger.Debug("MCP rate limit: %g/s burst %d", perSecond, burst)
}

// Close detaches the server from the change feed.
func (s *Server) Close() {
	s.closeOnce.Do(s.unsubscribe)
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	defer s.Close()
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler returns the HTTP routes: the rate-limited MCP endpoint at /mcp,
// a liveness probe at /health and Prometheus metrics at /metrics.
func (s *Server) Handler() http.Handler {
	streamable := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	r := chi.NewRouter()
	r.Get("/health", handleHealth)
	r.Handle("/metrics", s.metrics.handler())
	r.With(s.rateLimit).Handle("/mcp", streamable)
	return r
}

// RunHTTP starts the MCP server over HTTP on the specified address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	defer s.Close()

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			s.metrics.rateLimited.Inc()
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
