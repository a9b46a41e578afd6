package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "frontdesk_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	transitionsTotal  *prometheus.CounterVec
	conflictsTotal    *prometheus.CounterVec
	gateRejections    *prometheus.CounterVec
	folioPostings     *prometheus.CounterVec
	invariantFailures prometheus.Counter

	settingsLookups *prometheus.CounterVec

	activityEvents *prometheus.CounterVec
)

// PoolStatsFunc reports connection pool usage for the DB gauges.
type PoolStatsFunc func() (acquired, idle, total int32)

// Init registers the front-desk metrics. poolStats may be nil when no database is used.
// Recording functions are no-ops until Init runs.
func Init(poolStats PoolStatsFunc) {
	registerOnce.Do(func() {
		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by route and status class",
			},
			[]string{"method", "route", "status"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_latency_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		)

		transitionsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "reservation_transitions_total",
				Help: "Reservation lifecycle operations by operation and result",
			},
			[]string{"operation", "result"},
		)
		conflictsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "availability_conflicts_total",
				Help: "Rejected bookings, moves and check-ins due to room conflicts",
			},
			[]string{"operation"},
		)
		gateRejections = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "business_day_gate_rejections_total",
				Help: "Operations rejected by the business-day gate",
			},
			[]string{"operation"},
		)
		folioPostings = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "folio_postings_total",
				Help: "Folio transactions posted by type and category",
			},
			[]string{"type", "category"},
		)
		invariantFailures = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "folio_invariant_violations_total",
				Help: "Folios whose stored running balance disagreed with replay",
			},
		)

		settingsLookups = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "settings_cache_lookups_total",
				Help: "Settings cache lookups by accessor and outcome",
			},
			[]string{"accessor", "outcome"},
		)

		activityEvents = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "activity_events_total",
				Help: "Activity events by sink and outcome",
			},
			[]string{"sink", "outcome"},
		)

		prometheus.MustRegister(
			httpRequests,
			httpLatency,
			transitionsTotal,
			conflictsTotal,
			gateRejections,
			folioPostings,
			invariantFailures,
			settingsLookups,
			activityEvents,
		)

		if poolStats != nil {
			registerPoolGauges(poolStats)
		}
	})
}

func registerPoolGauges(poolStats PoolStatsFunc) {
	gauge := func(name, help string, pick func(acquired, idle, total int32) int32) prometheus.GaugeFunc {
		return prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{Name: metricPrefix + name, Help: help},
			func() float64 { return float64(pick(poolStats())) },
		)
	}
	prometheus.MustRegister(
		gauge("db_pool_acquired_conns", "Connections currently in use",
			func(a, _, _ int32) int32 { return a }),
		gauge("db_pool_idle_conns", "Idle connections",
			func(_, i, _ int32) int32 { return i }),
		gauge("db_pool_total_conns", "Total connections",
			func(_, _, t int32) int32 { return t }),
	)
}

// ObserveHTTP records one handled request.
func ObserveHTTP(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	if httpRequests != nil {
		httpRequests.WithLabelValues(method, route, statusClass(status)).Inc()
	}
	if httpLatency != nil {
		httpLatency.WithLabelValues(method, route).Observe(duration.Seconds())
	}
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

// ObserveTransition counts a lifecycle operation outcome.
func ObserveTransition(operation string, err error) {
	if transitionsTotal == nil {
		return
	}
	result := resultSuccess
	if err != nil {
		result = resultError
	}
	transitionsTotal.WithLabelValues(operation, result).Inc()
}

// IncConflict counts an availability conflict.
func IncConflict(operation string) {
	if conflictsTotal != nil {
		conflictsTotal.WithLabelValues(operation).Inc()
	}
}

// IncGateRejection counts a business-day gate rejection.
func IncGateRejection(operation string) {
	if gateRejections != nil {
		gateRejections.WithLabelValues(operation).Inc()
	}
}

// IncFolioPosting counts a posted folio transaction.
func IncFolioPosting(txnType, category string) {
	if folioPostings != nil {
		folioPostings.WithLabelValues(txnType, category).Inc()
	}
}

// IncInvariantViolation counts a failed ledger replay.
func IncInvariantViolation() {
	if invariantFailures != nil {
		invariantFailures.Inc()
	}
}

// IncSettingsLookup counts a settings cache hit or miss.
func IncSettingsLookup(accessor string, hit bool) {
	if settingsLookups == nil {
		return
	}
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	settingsLookups.WithLabelValues(accessor, outcome).Inc()
}

// IncActivityEvent counts an activity event by sink and outcome (published, dropped, failed).
func IncActivityEvent(sink, outcome string) {
	if activityEvents != nil {
		activityEvents.WithLabelValues(sink, outcome).Inc()
	}
}

// Exported outcome labels for activity sinks.
const (
	ActivityPublished = "published"
	ActivityDropped   = "dropped"
	ActivityFailed    = "failed"
)
