// Package metrics records Prometheus metrics for columnview.
//
// A [Registry] implements every hook interface in pkg/observability, so a
// binary wires it once at startup:
//
//	reg := metrics.NewRegistry()
//	reg.Install()
//	router.Handle("/metrics", reg.Handler())
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cverr "github.com/matzehuels/columnview/pkg/errors"
	"github.com/matzehuels/columnview/pkg/observability"
)

const namespace = "columnview"

// Registry holds all metrics for the application.
type Registry struct {
	// Pipeline
	IndexBuildsTotal *prometheus.CounterVec
	GraphNodes       prometheus.Histogram
	LayersTotal      *prometheus.CounterVec
	LayerDuration    prometheus.Histogram
	LayerColumns     prometheus.Histogram

	// Session
	SelectsTotal      *prometheus.CounterVec
	SwapsTotal        *prometheus.CounterVec
	ProjectedSegments prometheus.Histogram

	// Cache
	CacheOpsTotal *prometheus.CounterVec
	CacheSetBytes prometheus.Histogram

	// Upstream HTTP (graph source client)
	UpstreamRequestsTotal *prometheus.CounterVec
	UpstreamDuration      *prometheus.HistogramVec
	UpstreamErrorsTotal   *prometheus.CounterVec

	// Server HTTP
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	registry *prometheus.Registry
}

var (
	_ observability.PipelineHooks = (*Registry)(nil)
	_ observability.SessionHooks  = (*Registry)(nil)
	_ observability.CacheHooks    = (*Registry)(nil)
	_ observability.HTTPHooks     = (*Registry)(nil)
)

// NewRegistry creates a registry with all metrics plus the Go runtime and
// process collectors.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	r := &Registry{registry: reg}
	r.initPipelineMetrics()
	r.initSessionMetrics()
	r.initCacheMetrics()
	r.initHTTPMetrics()
	return r
}

// Install registers r as every observability hook.
func (r *Registry) Install() {
	observability.SetPipelineHooks(r)
	observability.SetSessionHooks(r)
	observability.SetCacheHooks(r)
	observability.SetHTTPHooks(r)
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Prometheus returns the underlying Prometheus registry.
func (r *Registry) Prometheus() *prometheus.Registry {
	return r.registry
}

func (r *Registry) initPipelineMetrics() {
	f := promauto.With(r.registry)
	r.IndexBuildsTotal = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "index_builds_total",
		Help:      "Graph index constructions by status",
	}, []string{"status"})
	r.GraphNodes = f.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "graph_nodes",
		Help:      "Number of nodes in indexed graphs",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
	})
	r.LayersTotal = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "layerings_total",
		Help:      "Column layering runs by status",
	}, []string{"status"})
	r.LayerDuration = f.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "layering_duration_seconds",
		Help:      "Column layering latency in seconds",
		Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
	})
	r.LayerColumns = f.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "layering_columns",
		Help:      "Number of columns produced per layering",
		Buckets:   []float64{1, 2, 4, 8, 16, 32, 64},
	})
}

func (r *Registry) initSessionMetrics() {
	f := promauto.With(r.registry)
	r.SelectsTotal = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "selects_total",
		Help:      "Graph selections by result code",
	}, []string{"code"})
	r.SwapsTotal = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "swaps_total",
		Help:      "Finished drag gestures by result",
	}, []string{"result"})
	r.ProjectedSegments = f.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "projected_segments",
		Help:      "Connector segments produced per projection",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
	})
}

func (r *Registry) initCacheMetrics() {
	f := promauto.With(r.registry)
	r.CacheOpsTotal = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_operations_total",
		Help:      "Cache lookups and writes by key type and outcome",
	}, []string{"key_type", "op"})
	r.CacheSetBytes = f.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "cache_set_bytes",
		Help:      "Size of cached values in bytes",
		Buckets:   []float64{100, 1000, 10000, 100000, 1000000},
	})
}

func (r *Registry) initHTTPMetrics() {
	f := promauto.With(r.registry)
	r.UpstreamRequestsTotal = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Requests to the graph source by host and status",
	}, []string{"host", "status"})
	r.UpstreamDuration = f.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Graph source latency in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"host"})
	r.UpstreamErrorsTotal = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_errors_total",
		Help:      "Graph source requests that failed before a response",
	}, []string{"host"})

	r.HTTPRequestsTotal = f.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests served",
	}, []string{"method", "route", "status"})
	r.HTTPRequestDuration = f.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
	r.HTTPRequestsInFlight = f.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "http_requests_in_flight",
		Help:      "Current number of HTTP requests being served",
	})
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// OnIndexBuild implements observability.PipelineHooks.
func (r *Registry) OnIndexBuild(_ context.Context, nodeCount, _ int, _ time.Duration, err error) {
	r.IndexBuildsTotal.WithLabelValues(status(err)).Inc()
	if err == nil {
		r.GraphNodes.Observe(float64(nodeCount))
	}
}

// OnLayer implements observability.PipelineHooks.
func (r *Registry) OnLayer(_ context.Context, columns int, d time.Duration, err error) {
	r.LayersTotal.WithLabelValues(status(err)).Inc()
	r.LayerDuration.Observe(d.Seconds())
	if err == nil {
		r.LayerColumns.Observe(float64(columns))
	}
}

// OnSelect implements observability.SessionHooks.
func (r *Registry) OnSelect(_ context.Context, _ int, err error) {
	code := "OK"
	if err != nil {
		code = string(cverr.GetCode(err))
	}
	r.SelectsTotal.WithLabelValues(code).Inc()
}

// OnSwap implements observability.SessionHooks.
func (r *Registry) OnSwap(_ context.Context, _ int, applied bool) {
	result := "noop"
	if applied {
		result = "applied"
	}
	r.SwapsTotal.WithLabelValues(result).Inc()
}

// OnProject implements observability.SessionHooks.
func (r *Registry) OnProject(_ context.Context, _, _, segments int) {
	r.ProjectedSegments.Observe(float64(segments))
}

// OnCacheHit implements observability.CacheHooks.
func (r *Registry) OnCacheHit(_ context.Context, keyType string) {
	r.CacheOpsTotal.WithLabelValues(keyType, "hit").Inc()
}

// OnCacheMiss implements observability.CacheHooks.
func (r *Registry) OnCacheMiss(_ context.Context, keyType string) {
	r.CacheOpsTotal.WithLabelValues(keyType, "miss").Inc()
}

// OnCacheSet implements observability.CacheHooks.
func (r *Registry) OnCacheSet(_ context.Context, keyType string, size int) {
	r.CacheOpsTotal.WithLabelValues(keyType, "set").Inc()
	r.CacheSetBytes.Observe(float64(size))
}

// OnRequest implements observability.HTTPHooks.
func (r *Registry) OnRequest(context.Context, string, string, string) {}

// OnResponse implements observability.HTTPHooks.
func (r *Registry) OnResponse(_ context.Context, _, host, _ string, statusCode int, d time.Duration) {
	r.UpstreamRequestsTotal.WithLabelValues(host, strconv.Itoa(statusCode)).Inc()
	r.UpstreamDuration.WithLabelValues(host).Observe(d.Seconds())
}

// OnError implements observability.HTTPHooks.
func (r *Registry) OnError(_ context.Context, _, host, _ string, _ error) {
	r.UpstreamErrorsTotal.WithLabelValues(host).Inc()
}

// RecordHTTPRequest records a served request. route is the matched route
// pattern, not the raw path, to keep label cardinality bounded.
func (r *Registry) RecordHTTPRequest(method, route string, statusCode int, d time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
