package infra

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"
)

// HTTPServer owns the API listener and its graceful shutdown.
type HTTPServer struct {
	server *http.Server
}

// NewHTTPServer applies the configured timeouts to handler. Server-level
// errors such as broken connections are written to logger.
func NewHTTPServer(cfg *Config, handler http.Handler, logger Logger) *HTTPServer {
	errLog := logger.With().Str("component", "http").Logger()
	return &HTTPServer{server: &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		MaxHeaderBytes:    64 << 10,
		ErrorLog:          log.New(errLog, "", 0),
	}}
}

func (s *HTTPServer) Addr() string {
	if s.server == nil {
		return ""
	}
	return s.server.Addr
}

// Start blocks serving requests. Returning because of Shutdown is not an
// error.
func (s *HTTPServer) Start() error {
	if s.server == nil {
		return nil
	}
	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx expires.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
