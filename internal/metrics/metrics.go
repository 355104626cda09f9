package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	OTPSentTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otp_sent_total",
			Help: "OTP send attempts by result.",
		},
		[]string{"result"},
	)

	OTPVerifyTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otp_verify_total",
			Help: "OTP verification attempts by result.",
		},
		[]string{"result"},
	)

	RatingRecomputationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rating_recomputations_total",
			Help: "Average rating recomputations by target entity.",
		},
		[]string{"entity"},
	)
)

var once sync.Once

// MustRegister registers every collector with reg. Later calls are no-ops.
func MustRegister(reg prometheus.Registerer) {
	once.Do(func() {
		reg.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDurationSeconds,
			OTPSentTotal,
			OTPVerifyTotal,
			RatingRecomputationsTotal,
		)
	})
}
