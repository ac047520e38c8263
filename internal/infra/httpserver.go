package infra

import (
	"context"
	"net/http"
	"time"
)

// HTTPServer wraps http.Server with startup and graceful-shutdown helpers.
// Read and write timeouts come from config and are sized for multipart
// uploads, which can take far longer than a typical API round trip.
type HTTPServer struct {
	server *http.Server
}

// NewHTTPServer builds the server for the media API. MaxHeaderBytes stays
// small; all large payloads arrive as request bodies and are capped per
// handler via MaxBytesReader against cfg.MaxUploadBytes.
func NewHTTPServer(cfg *Config, handler http.Handler) *HTTPServer {
	return &HTTPServer{
		server: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           handler,
			ReadTimeout:       cfg.HTTPReadTimeout,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      cfg.HTTPWriteTimeout,
			IdleTimeout:       cfg.HTTPIdleTimeout,
			MaxHeaderBytes:    64 << 10,
		},
	}
}

// Start blocks serving requests until the listener fails or Shutdown runs.
func (s *HTTPServer) Start() error {
	if s.server == nil {
		return nil
	}
	return s.server.ListenAndServe()
}

// Shutdown drains in-flight requests until ctx expires.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
