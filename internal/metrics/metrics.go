package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roombook",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint and status code.",
		},
		[]string{"endpoint", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "roombook",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by endpoint.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	storageOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roombook",
			Name:      "storage_operations_total",
			Help:      "Document store loads and saves by collection.",
		},
		[]string{"collection", "op"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, storageOps)
	})
}

// IncHTTP increments the request counter for an endpoint/status pair.
func IncHTTP(endpoint string, status int) {
	httpRequests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
}

// ObserveHTTP records a request duration for an endpoint.
func ObserveHTTP(endpoint string, dur time.Duration) {
	httpDuration.WithLabelValues(endpoint).Observe(dur.Seconds())
}

// IncStorage counts a document store operation.
func IncStorage(collection, op string) {
	storageOps.WithLabelValues(collection, op).Inc()
}
