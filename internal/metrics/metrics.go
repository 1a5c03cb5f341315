package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by method, route, and status.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "livekit",
			Subsystem: "token_server",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// RequestDuration tracks HTTP request latency.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "livekit",
			Subsystem: "token_server",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"method", "endpoint"},
	)

	// TokensIssuedTotal counts token requests by outcome.
	TokensIssuedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "livekit",
			Subsystem: "token_server",
			Name:      "tokens_issued_total",
			Help:      "Total token requests by outcome",
		},
		[]string{"status"},
	)

	// BroadcastsTotal counts accepted broadcast payloads.
	BroadcastsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "livekit",
			Subsystem: "token_server",
			Name:      "broadcasts_total",
			Help:      "Total broadcast payloads accepted",
		},
	)
)

// RecordRequest records one HTTP request.
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSec)
}

// RecordTokenRequest records one token request outcome ("success",
// "invalid", or "error").
func RecordTokenRequest(status string) {
	TokensIssuedTotal.WithLabelValues(status).Inc()
}

// RecordBroadcast records one accepted broadcast payload.
func RecordBroadcast() {
	BroadcastsTotal.Inc()
}

// RegisterListenerCount exposes the current hub connection count as a
// gauge. Call once at startup with the hub's Count method.
func RegisterListenerCount(count func() int) {
	promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: "livekit",
			Subsystem: "token_server",
			Name:      "listeners",
			Help:      "Currently connected broadcast listeners",
		},
		func() float64 { return float64(count()) },
	)
}
