// Package web serves the calculator widget and its JSON key-press API.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/averycrespi/calc-mcp/internal/session"
	"github.com/averycrespi/calc-mcp/pkg/types"
)

const (
	sessionCookieName = "calc_session"
	shutdownTimeout   = 5 * time.Second
	maxRequestBytes   = 4 << 10
)

var _ types.Server = &Server{}

// Server serves the calculator widget over HTTP
type Server struct {
	config   types.Config
	sessions *session.Store
	logger   *slog.Logger
	assets   map[string]staticAsset
	handler  http.Handler
}

// NewServer creates the widget server
func NewServer(config types.Config, logger *slog.Logger) (*Server, error) {
	assets, err := loadStaticAssets()
	if err != nil {
		return nil, err
	}

	s := &Server{
		config: config,
		sessions: session.NewStore(
			session.WithTTL(config.SessionTTL),
			session.WithMaxSessions(config.MaxSessions),
		),
		logger: logger,
		assets: assets,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /static/{name}", s.handleStatic)
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("POST /api/press", s.handlePress)
	mux.HandleFunc("POST /api/clear", s.handleClear)
	s.handler = logRequests(logger, mux)

	return s, nil
}

// Handler returns the HTTP handler for the widget
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Serve listens on the configured address until ctx is done
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr, err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener serves on ln until ctx is done, then shuts down gracefully
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.sessions.RunJanitor(ctx, s.config.JanitorInterval)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Serving calculator widget", "addr", ln.Addr().String())
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve HTTP: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down calculator widget")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	return nil
}
