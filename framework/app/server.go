package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// ReadHeaderTimeout is the default timeout for reading request headers.
const ReadHeaderTimeout = 10 * time.Second

var (
	ErrNilHandler     = errors.New("app: handler must not be nil")
	ErrListenFailed   = errors.New("app: failed to listen")
	ErrShutdownFailed = errors.New("app: shutdown failed")
)

// Server manages the HTTP server lifecycle.
type Server struct {
	server     *http.Server
	listener   net.Listener
	logger     *slog.Logger
	onServeErr func()
}

// NewServer creates a Server for handler on address. The onServeErr
// callback, if non-nil, is called when serving stops with a fatal error.
func NewServer(address string, handler http.Handler, logger *slog.Logger, onServeErr func()) (*Server, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		server: &http.Server{ //nolint:exhaustruct // only relevant fields needed
			Addr:              address,
			Handler:           handler,
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		logger:     logger,
		onServeErr: onServeErr,
	}, nil
}

// Start begins listening on TCP and serves HTTP requests in a background goroutine.
func (s *Server) Start(ctx context.Context) error {
	listenCfg := net.ListenConfig{} //nolint:exhaustruct // zero-value defaults are fine

	listener, err := listenCfg.Listen(ctx, "tcp", s.server.Addr)
	if err != nil {
		s.logger.Error("failed to listen", "address", s.server.Addr, "error", err)

		return fmt.Errorf("%w: %w", ErrListenFailed, err)
	}

	s.listener = listener

	s.logger.Info("starting HTTP server", "address", listener.Addr().String())

	go func() {
		serveErr := s.server.Serve(listener)
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			s.logger.Error("HTTP server error", "error", serveErr)

			if s.onServeErr != nil {
				s.onServeErr()
			}
		}
	}()

	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Error("shutdown failed", "error", err)

		return fmt.Errorf("%w: %w", ErrShutdownFailed, err)
	}

	return nil
}

// Addr returns the address the server listens on, or the configured one
// before Start.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.server.Addr
}
