// Package metrics defines and registers all custom Prometheus metrics of the
// appointment portal. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on import and
// exposed by the portal's /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Gateway metrics ───────────────────────────────────────────────────────────

// GatewayRequestsTotal counts backend calls issued by the gateways.
// Labels:
//   - gateway: the client name, "auth" or "api"
//   - operation: the gateway method (e.g. "book", "search")
//   - code: HTTP status code, or "transport" when no response arrived
var GatewayRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_requests_total",
		Help:      "Total number of backend requests issued, by gateway, operation and status code.",
	},
	[]string{"gateway", "operation", "code"},
)

// GatewayRequestDuration measures backend round-trip time.
var GatewayRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "gateway_request_duration_seconds",
		Help:      "Duration of backend requests issued by the gateways.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"gateway", "operation"},
)

// ── Booking metrics ───────────────────────────────────────────────────────────

// BookingOutcomesTotal counts settled booking and waitlist submissions.
// Label:
//   - outcome: "confirmed", "conflicted", "failed", "joined" or "waitlist_failed"
var BookingOutcomesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_outcomes_total",
		Help:      "Total number of booking and waitlist submissions, by outcome.",
	},
	[]string{"outcome"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionsActive tracks the number of live portal sessions.
var SessionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Current number of portal sessions held in memory.",
	},
)

// CredentialEvictionsTotal counts credentials dropped by the session.
// Label:
//   - reason: "expired", "unreadable" or "logout"
var CredentialEvictionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "credential_evictions_total",
		Help:      "Total number of stored credentials cleared, by reason.",
	},
	[]string{"reason"},
)
