// Package metrics exposes Prometheus collectors for status queries and default server updates.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mcwho"

var (
	queries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "queries_total",
		Help:      "Server status queries by operation and outcome.",
	}, []string{"operation", "outcome"})

	queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "query_duration_seconds",
		Help:      "Wall time of server status queries, including lookup.",
		Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 10},
	}, []string{"operation"})

	defaultsUpdated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "default_servers_updated_total",
		Help:      "Successful default server updates.",
	})
)

// ObserveQuery records the outcome and duration of a single status query.
func ObserveQuery(operation, outcome string, took time.Duration) {
	queries.WithLabelValues(operation, outcome).Inc()
	queryDuration.WithLabelValues(operation).Observe(took.Seconds())
}

// DefaultUpdated counts a stored default server.
func DefaultUpdated() {
	defaultsUpdated.Inc()
}

// Handler serves the default registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}
