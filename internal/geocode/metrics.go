package geocode

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	searchCtr = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "geocode_search_req_total",
			Help: "Number of place-search requests sent to the geocoder.",
		},
	)
	searchFailureCtr = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "geocode_search_failures_total",
			Help: "Number of place-search requests that failed (transport error, bad status or undecodable body).",
		},
	)
	searchLatHist = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "geocode_search_latency_ms",
		Help:    "Latency (ms) histogram of place-search requests.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})
)

// RegisterMetrics registers the Prometheus metrics for the geocode
// client. This should be called from the main application setup.
func RegisterMetrics() {
	prometheus.MustRegister(searchCtr)
	prometheus.MustRegister(searchFailureCtr)
	prometheus.MustRegister(searchLatHist)
}
