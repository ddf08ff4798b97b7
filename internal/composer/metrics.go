package composer

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	submissionCtr = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "composer_submissions_total",
			Help: "Number of submission attempts started.",
		},
	)
	validationFailureCtr = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "composer_validation_failures_total",
			Help: "Number of submissions rejected by local validation.",
		},
	)
	submissionFailureCtr = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "composer_submission_failures_total",
			Help: "Number of submissions that failed during the post write.",
		},
	)
	photoWarningCtr = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "composer_photo_upload_warnings_total",
			Help: "Number of submissions that completed with a failed photo upload.",
		},
	)
)

// RegisterMetrics registers the Prometheus metrics for the submission
// coordinator. This should be called from the main application setup.
func RegisterMetrics() {
	prometheus.MustRegister(submissionCtr)
	prometheus.MustRegister(validationFailureCtr)
	prometheus.MustRegister(submissionFailureCtr)
	prometheus.MustRegister(photoWarningCtr)
}
