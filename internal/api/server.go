package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"hybrid/internal/protocol"

	"github.com/klauspost/compress/gzhttp"
)

// Dispatcher is the protocol handler the bridge forwards to.
type Dispatcher interface {
	Handle(ctx context.Context, req protocol.Request) (*protocol.Response, error)
}

// ServerConfig configures the HTTP bridge
type ServerConfig struct {
	// Scheme is prefixed to every forwarded URL, e.g. "hybrid"
	Scheme string
	// Compress enables gzip for clients that accept it. It is off by
	// default. When on, the transport adds Content-Encoding and Vary on top
	// of the dispatcher's headers; every other header is passed unchanged.
	Compress bool
}

// Server exposes a Dispatcher over HTTP
type Server struct {
	router     *http.ServeMux
	server     *http.Server
	addr       string
	logger     *slog.Logger
	dispatcher Dispatcher
	config     ServerConfig
	started    time.Time
}

// NewServer creates a new HTTP server instance
func NewServer(addr string, dispatcher Dispatcher, logger *slog.Logger, config ServerConfig) *Server {
	s := &Server{
		addr:       addr,
		logger:     logger,
		dispatcher: dispatcher,
		config:     config,
		router:     http.NewServeMux(),
		started:    time.Now(),
	}

	s.registerRoutes()

	// No write timeout: bodies are streamed from the store
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.applyMiddleware(s.router),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", "addr", s.addr, "scheme", s.config.Scheme)

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	s.logger.Info("Server shut down successfully")
	return nil
}

// ServeHTTP implements http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.server.Handler.ServeHTTP(w, r)
}

// applyMiddleware wraps the handler with middleware in the correct order
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	// Apply middleware in reverse order (last one wraps first)
	handler = RecoveryMiddleware(s.logger)(handler)
	handler = LoggingMiddleware(s.logger)(handler)
	handler = RequestIDMiddleware()(handler)
	if s.config.Compress {
		handler = gzhttp.GzipHandler(handler)
	}
	return handler
}
