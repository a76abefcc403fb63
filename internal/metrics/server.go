package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/arx-os/ifclite/internal/common/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server serves the Prometheus /metrics endpoint plus a plain /health
// check, for the long-running watch mode of the CLI.
type Server struct {
	server *http.Server
}

// NewServer builds a metrics server listening on addr (e.g. ":9090"),
// serving m's own registry rather than the global default one.
func NewServer(addr string, m *Metrics) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return &Server{
		server: &http.Server{Addr: addr, Handler: mux},
	}
}

// Start runs the server until it fails or is stopped, blocking the caller.
func (s *Server) Start() error {
	logger.Info("Starting metrics server on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("metrics server failed: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the metrics server.
func (s *Server) Stop(ctx context.Context) error {
	logger.Info("Stopping metrics server...")
	return s.server.Shutdown(ctx)
}
