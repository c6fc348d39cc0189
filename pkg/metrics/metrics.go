package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPRequests counts completed requests by route pattern, method and status.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "twogether",
	Name:      "http_requests_total",
	Help:      "HTTP requests by route, method and status code.",
}, []string{"route", "method", "status"})

// HTTPDuration observes request latency by route pattern and method.
var HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "twogether",
	Name:      "http_request_duration_seconds",
	Help:      "HTTP request latency.",
	Buckets:   prometheus.DefBuckets,
}, []string{"route", "method"})

// PairingCodesIssued counts issued pairing codes.
var PairingCodesIssued = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "twogether",
	Name:      "pairing_codes_issued_total",
	Help:      "Pairing codes issued.",
})

// CouplesPaired counts successful redemptions.
var CouplesPaired = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "twogether",
	Name:      "couples_paired_total",
	Help:      "Couples that filled their second seat.",
})

// PairingFailures counts rejected pairing attempts by reason.
var PairingFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "twogether",
	Name:      "pairing_failures_total",
	Help:      "Rejected pairing requests and redemptions by reason.",
}, []string{"reason"})

// LedgerEntries counts ledger entries by kind and tag.
var LedgerEntries = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "twogether",
	Name:      "ledger_entries_total",
	Help:      "Ledger entries appended by kind and tag.",
}, []string{"kind", "tag"})

// CoinsMoved sums coin amounts by kind.
var CoinsMoved = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "twogether",
	Name:      "coins_total",
	Help:      "Coins earned and spent.",
}, []string{"kind"})

// MomentsRecorded counts recorded moments.
var MomentsRecorded = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "twogether",
	Name:      "moments_recorded_total",
	Help:      "Moments recorded.",
})

// AchievementsGranted counts badge grants by kind.
var AchievementsGranted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "twogether",
	Name:      "achievements_granted_total",
	Help:      "Achievements granted by badge.",
}, []string{"badge"})

// EventPublishFailures counts domain events that could not be delivered.
var EventPublishFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "twogether",
	Name:      "event_publish_failures_total",
	Help:      "Domain events that failed to publish after commit.",
}, []string{"type"})
