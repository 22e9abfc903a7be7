package metric

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	nherrors "github.com/c360/networkhd/errors"
)

// Server exposes a Collector's registry over HTTP.
type Server struct {
	port      int
	path      string
	collector *Collector

	mu     sync.Mutex // protects server field
	server *http.Server
}

// NewServer creates a metrics server. Port 0 defaults to 9090, an empty
// path to /metrics.
func NewServer(port int, path string, collector *Collector) *Server {
	if path == "" {
		path = "/metrics"
	}
	if port == 0 {
		port = 9090
	}
	return &Server{port: port, path: path, collector: collector}
}

// Start runs the HTTP server. It blocks until the server stops and returns
// http.ErrServerClosed after a clean Stop.
func (s *Server) Start() error {
	s.mu.Lock()
	if s.server != nil {
		s.mu.Unlock()
		return nherrors.WrapInvalid(
			fmt.Errorf("server already running"),
			"Server", "Start", "stop the server before starting it again")
	}
	if s.collector == nil {
		s.mu.Unlock()
		return nherrors.WrapFatal(
			fmt.Errorf("nil collector"),
			"Server", "Start", "construct the server with a metric.Collector")
	}

	mux := http.NewServeMux()
	mux.Handle(s.path, promhttp.HandlerFor(
		s.collector.Registry(),
		promhttp.HandlerOpts{EnableOpenMetrics: true},
	))
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv := s.server
	s.mu.Unlock()

	return srv.ListenAndServe()
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.server
	s.server = nil
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	if err := srv.Shutdown(ctx); err != nil {
		return nherrors.WrapTransient(err, "Server", "Stop", "metrics server shutdown failed")
	}
	return nil
}
