package typeahead

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	lookupCtr = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "typeahead_lookups_total",
			Help: "Number of debounced location lookups issued.",
		},
	)
	staleDropCtr = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "typeahead_stale_dropped_total",
			Help: "Number of lookup responses discarded because a newer lookup was issued before they arrived.",
		},
	)
	lookupFailureCtr = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "typeahead_lookup_failures_total",
			Help: "Number of lookups that failed and degraded to an empty suggestion list.",
		},
	)
)

// RegisterMetrics registers the Prometheus metrics for the typeahead
// engine. This should be called from the main application setup.
func RegisterMetrics() {
	prometheus.MustRegister(lookupCtr)
	prometheus.MustRegister(staleDropCtr)
	prometheus.MustRegister(lookupFailureCtr)
}
