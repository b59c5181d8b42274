// Package server serves graphs and their column layouts over HTTP.
//
// Routes:
//
//	GET  /health                      build info and status
//	GET  /metrics                     Prometheus exposition (when a registry is set)
//	GET  /api/graphs                  JSON array of graph IDs
//	GET  /api/graphs/{id}             graph wire format
//	PUT  /api/graphs/{id}             store a graph (writable stores only)
//	GET  /api/graphs/{id}/layering    graph.View with columns, names and segments
//	GET  /api/graphs/{id}/svg         rendered graph, ?format=columns|graphviz|dot|png|pdf|json
//
// Errors are JSON objects {"error":{"code":..., "message":...}} with the
// status given by errors.HTTPStatus.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/columnview/pkg/graph"
	"github.com/matzehuels/columnview/pkg/metrics"
	"github.com/matzehuels/columnview/pkg/pipeline"
)

const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 15 * time.Second
	maxBodySize     = 8 << 20
)

// Source provides the graphs the server exposes.
type Source interface {
	List(ctx context.Context) ([]int, error)
	Get(ctx context.Context, id int) (graph.Graph, error)
}

// Writer is implemented by sources that accept PUT.
type Writer interface {
	Put(ctx context.Context, id int, g graph.Graph) error
}

// Server is the HTTP API.
type Server struct {
	source  Source
	runner  *pipeline.Runner
	metrics *metrics.Registry
	logger  *log.Logger
	router  chi.Router
}

// New creates a server. A nil registry disables /metrics and request
// instrumentation; a nil logger uses log.Default.
func New(source Source, runner *pipeline.Runner, reg *metrics.Registry, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	s := &Server{
		source:  source,
		runner:  runner,
		metrics: reg,
		logger:  logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(s.instrument)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(requestTimeout))

	r.Get("/health", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Route("/api/graphs", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Put("/", s.handlePut)
			r.Get("/layering", s.handleLayering)
			r.Get("/svg", s.handleRender)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errNotFoundRoute)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errMethodNotAllowed)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
