package remote

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	upstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_upstream_requests_total",
		Help: "Total de llamadas a la API de horarios",
	}, []string{"endpoint", "status"})

	upstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "portal_upstream_request_duration_seconds",
		Help:    "Duración de las llamadas a la API de horarios",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
)

func observeUpstream(endpoint, status string, start time.Time) {
	upstreamRequestsTotal.WithLabelValues(endpoint, status).Inc()
	upstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
