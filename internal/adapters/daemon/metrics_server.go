package daemon

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andrescamacho/rareships-go/internal/infrastructure/config"
)

// MetricsServer exposes a Prometheus registry over HTTP
type MetricsServer struct {
	server *http.Server
}

// NewMetricsServer serves registry at cfg.Path on cfg.Host:cfg.Port
func NewMetricsServer(cfg config.MetricsConfig, registry *prometheus.Registry) *MetricsServer {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, Handler(registry))

	return &MetricsServer{
		server: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Handler returns the scrape handler for registry
func Handler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
}

// Addr is the listen address
func (s *MetricsServer) Addr() string {
	return s.server.Addr
}

// Start listens in the background. Serve errors other than a clean
// shutdown are delivered on the returned channel.
func (s *MetricsServer) Start() (<-chan error, error) {
	listener, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen for metrics on %s: %w", s.server.Addr, err)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	return errCh, nil
}

// Shutdown stops accepting scrapes and waits for in-flight ones
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
