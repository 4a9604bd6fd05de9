// Package gateway is the HTTP entry point the host application calls.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/wellspring-ai/wellspring/internal/assistant"
	"github.com/wellspring-ai/wellspring/internal/config"
	"github.com/wellspring-ai/wellspring/internal/logging"
)

// Server serves the assistant over HTTP.
type Server struct {
	cfg        config.GatewayConfig
	assistant  *assistant.Assistant
	log        *logging.Logger
	httpServer *http.Server
}

// New creates a gateway server around an assistant.
func New(cfg config.GatewayConfig, a *assistant.Assistant, log *logging.Logger) *Server {
	return &Server{
		cfg:       cfg,
		assistant: a,
		log:       log.Component("gateway"),
	}
}

// Addr returns the listen address derived from the bind mode.
func (s *Server) Addr() string {
	host := "127.0.0.1"
	if s.cfg.Bind == "all" {
		host = "0.0.0.0"
	}
	return net.JoinHostPort(host, fmt.Sprintf("%d", s.cfg.Port))
}

// Start begins serving and blocks until the listener fails or Shutdown is
// called.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.log.Info().Str("addr", s.httpServer.Addr).Msg("gateway listening")
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// Handler returns the full handler chain. Used by tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/chat", s.requireAuth(s.handleChat))
	mux.HandleFunc("GET /v1/health", s.handleHealth)
	return s.withLogging(mux)
}

// withLogging logs each HTTP request.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sw.status).
			Dur("duration", time.Since(start)).
			Str("remote", r.RemoteAddr).
			Msg("http request")
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
