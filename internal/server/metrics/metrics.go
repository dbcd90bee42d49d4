// Package metrics exposes Prometheus metrics for the gRPC server.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// Path is where the metrics handler is mounted.
const Path = "/metrics"

// RPCMetrics counts unary calls by method and status code and records their
// latency.
type RPCMetrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewRPCMetrics creates the collectors and registers them with registry.
func NewRPCMetrics(registry *prometheus.Registry) (*RPCMetrics, error) {
	m := &RPCMetrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "conciencia",
				Name:      "grpc_requests_total",
				Help:      "Total number of unary RPCs handled, by method and status code",
			},
			[]string{"method", "code"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "conciencia",
				Name:      "grpc_request_duration_seconds",
				Help:      "Time taken to handle unary RPCs",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
			},
			[]string{"method"},
		),
	}
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Describe implements prometheus.Collector.
func (m *RPCMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.requestsTotal.Describe(ch)
	m.requestDuration.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *RPCMetrics) Collect(ch chan<- prometheus.Metric) {
	m.requestsTotal.Collect(ch)
	m.requestDuration.Collect(ch)
}

// Observe records one finished call.
func (m *RPCMetrics) Observe(method string, err error, elapsed time.Duration) {
	m.requestsTotal.WithLabelValues(method, status.Code(err).String()).Inc()
	m.requestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// UnaryServerInterceptor observes every unary call.
func (m *RPCMetrics) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		m.Observe(info.FullMethod, err, time.Since(start))
		return resp, err
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *RPCMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RegisterHandlers mounts the metrics handler on mux.
func (m *RPCMetrics) RegisterHandlers(mux *http.ServeMux) {
	mux.Handle(Path, m.Handler())
}
