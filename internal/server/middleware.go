package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// requestLogger logs one line per request at info level (debug for /health
// and /metrics).
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		logf := s.logger.Info
		if r.URL.Path == "/health" || r.URL.Path == "/metrics" {
			logf = s.logger.Debug
		}
		logf("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond),
			"request_id", chimiddleware.GetReqID(r.Context()),
			"remote", r.RemoteAddr,
		)
	})
}

// instrument records request metrics labelled by route pattern.
func (s *Server) instrument(next http.Handler) http.Handler {
	if s.metrics == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		s.metrics.HTTPRequestsInFlight.Inc()
		defer s.metrics.HTTPRequestsInFlight.Dec()

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		s.metrics.RecordHTTPRequest(r.Method, route, ww.Status(), time.Since(start))
	})
}
