// Package metrics defines the Prometheus instruments for the token server,
// exposed at GET /metrics.
package metrics
