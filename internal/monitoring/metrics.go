package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	draftsOpened = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_drafts_opened_total",
			Help: "Booking drafts created (wizard modal opened)",
		},
	)

	draftsClosed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_drafts_closed_total",
			Help: "Booking drafts discarded (wizard modal closed)",
		},
	)

	submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_submissions_total",
			Help: "Booking submissions by final stage",
		},
		[]string{"stage"},
	)

	upstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Calls to the remote booking API",
		},
		[]string{"endpoint", "status"},
	)

	upstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Latency of remote booking API calls",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

func DraftOpened() { draftsOpened.Inc() }

func DraftClosed() { draftsClosed.Inc() }

// Submission records the final stage of a submit attempt
// (rejected, booked, passengers_saved, complete).
func Submission(stage string) {
	submissions.WithLabelValues(stage).Inc()
}

// UpstreamRequest records one remote API call and its latency.
func UpstreamRequest(endpoint, status string, elapsed time.Duration) {
	upstreamRequests.WithLabelValues(endpoint, status).Inc()
	upstreamDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}
