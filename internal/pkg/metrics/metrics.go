package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "certportal"

var (
	RequestsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_submitted_total",
		Help:      "Certificate requests submitted, by certificate type.",
	}, []string{"type"})

	RequestsDecided = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_decided_total",
		Help:      "Officer decisions on certificate requests, by decision.",
	}, []string{"decision"})

	SubmissionFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submission_failures_total",
		Help:      "Submissions rolled back.",
	})

	Grievances = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "grievances_total",
		Help:      "Grievance events (filed, resolved).",
	}, []string{"event"})

	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Login attempts by role and result.",
	}, []string{"role", "result"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)
