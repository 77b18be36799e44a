package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// Oturum
	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_logins_total",
			Help: "Admin login attempts by outcome",
		},
		[]string{"outcome"}, // success|rejected|locked|error
	)
	GuardDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_guard_decisions_total",
			Help: "Route guard decisions on the admin area",
		},
		[]string{"decision"}, // admitted|redirected
	)

	// Form gönderimleri
	SubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_submissions_total",
			Help: "Public form submissions by kind and outcome",
		},
		[]string{"kind", "outcome"}, // booking|contact|review x accepted|invalid|failed
	)

	// Backend çağrıları
	RemoteLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "remote_request_latency_seconds",
			Help:    "Latency of calls to the restaurant backend.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)

	initOnce sync.Once
)

// /metrics endpoint'i için handler
var Handler = promhttp.Handler

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestsTotal)
		prometheus.MustRegister(LoginsTotal)
		prometheus.MustRegister(GuardDecisions)
		prometheus.MustRegister(SubmissionsTotal)
		prometheus.MustRegister(RemoteLatency)
	})
}
