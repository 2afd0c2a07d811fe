// Package metrics provides Prometheus metric collection for the HTTP
// surface and the membership workflows.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector gathers request and workflow counters.
type Collector struct {
	httpRequests *prometheus.CounterVec
	httpLatency  prometheus.Histogram
	autoJoins    *prometheus.CounterVec
	teamLeaves   *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "projecthub_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		}, []string{"method", "route", "status_code"}),
		httpLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "projecthub_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		autoJoins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "projecthub_team_autojoin_total",
			Help: "Auto-join attempts by outcome",
		}, []string{"outcome"}),
		teamLeaves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "projecthub_team_leave_total",
			Help: "Leave-team attempts by outcome",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpLatency,
		c.autoJoins,
		c.teamLeaves,
	)

	return c
}

// RecordHTTPRequest records one served request.
func (c *Collector) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	c.httpLatency.Observe(duration.Seconds())
}

// RecordAutoJoin records an auto-join attempt outcome ("success",
// "conflict", "not_found", "invalid", "error").
func (c *Collector) RecordAutoJoin(outcome string) {
	c.autoJoins.WithLabelValues(outcome).Inc()
}

// RecordLeave records a leave-team attempt outcome.
func (c *Collector) RecordLeave(outcome string) {
	c.teamLeaves.WithLabelValues(outcome).Inc()
}

// Handler returns the HTTP handler serving the Prometheus scrape endpoint.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
