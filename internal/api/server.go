package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"hermes/internal/api/health"
	"hermes/internal/metrics"
	"hermes/internal/tools"
	"hermes/pkg/errors"
	"hermes/pkg/logger"
)

// ServerConfig contains configuration for HTTP server
type ServerConfig struct {
	Addr         string
	ServiceName  string
	Version      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server wraps HTTP server with lifecycle management
type Server struct {
	httpServer *http.Server
	log        *logger.Logger
}

// NewServer creates and configures HTTP server with all routes
func NewServer(cfg ServerConfig, healthHandler *health.Handler, workflowHandler *WorkflowHandler, log *logger.Logger) *Server {
	mux := http.NewServeMux()

	// Workflow endpoints
	mux.HandleFunc("/workflow/run", workflowHandler.HandleRun)
	mux.HandleFunc("/workflow/runs", workflowHandler.HandleRuns)
	mux.HandleFunc("/workflow/runs/", workflowHandler.HandleRuns)

	// Health check endpoints (Kubernetes probes)
	mux.HandleFunc("/health", healthHandler.HandleHealth)
	mux.HandleFunc("/ready", healthHandler.HandleReadiness)
	mux.HandleFunc("/live", healthHandler.HandleLiveness)

	// Prometheus metrics endpoint
	mux.Handle("/metrics", metrics.Handler())

	// Tool catalog
	mux.HandleFunc("/tools", func(w http.ResponseWriter, r *http.Request) {
		catalog, err := tools.MarshalCatalog()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to render tool catalog")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(catalog)
	})

	// Root endpoint (service info)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"service": cfg.ServiceName,
			"version": cfg.Version,
			"status":  "running",
			"endpoints": map[string]string{
				"run_workflow": "/workflow/run",
				"runs":         "/workflow/runs",
				"tools":        "/tools",
				"health":       "/health",
			},
		})
	})

	addr := cfg.Addr
	if addr == "" {
		addr = ":8000"
	}
	readTimeout := cfg.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 30 * time.Second
	}
	// Workflow runs stream through the whole agent pipeline, so the
	// write timeout has to cover the slowest run.
	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 10 * time.Minute
	}

	log.Infof("HTTP server configured on %s", addr)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		log:        log,
	}
}

// Start begins listening for HTTP requests
// Blocks until server is stopped or encounters an error
func (s *Server) Start() error {
	s.log.Infof("Starting HTTP server on %s", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "http server failed")
	}

	return nil
}

// Shutdown gracefully stops the HTTP server
// Waits for active connections to complete within timeout
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Stopping HTTP server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "http server shutdown failed")
	}

	s.log.Info("✓ HTTP server stopped")
	return nil
}

// ServiceBanner returns a short startup line for logs.
func ServiceBanner(name, version, addr string) string {
	return fmt.Sprintf("%s %s listening on %s", name, version, addr)
}
