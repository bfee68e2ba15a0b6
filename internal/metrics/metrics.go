// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"endpoint"},
	)

	// Suggestion Metrics
	SuggestionRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "psalter_suggestion_requests_total",
			Help: "Total number of suggestion requests",
		},
		[]string{"result"}, // "success", "invalid", "error"
	)

	SuggestionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "psalter_suggestion_duration_seconds",
			Help:    "Time to build a suggestion list",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	SuggestionsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "psalter_suggestions_returned",
			Help:    "Number of songs returned per suggestion request",
			Buckets: []float64{0, 1, 3, 5, 10, 20, 50},
		},
	)

	DegradedFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "psalter_degraded_fetches_total",
			Help: "Collaborator fetches that failed and were replaced with empty results",
		},
		[]string{"fetch"}, // "songs", "usage", "preferences", "previous_song", "members", "ratings"
	)

	// Insight Metrics
	InsightReports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "psalter_insight_reports_total",
			Help: "Total number of library-health reports generated",
		},
		[]string{"rotation_status"},
	)

	InsightDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "psalter_insight_duration_seconds",
			Help:    "Time to build a library-health report",
			Buckets: prometheus.DefBuckets,
		},
	)

	RetirementEvaluations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "psalter_retirement_evaluations_total",
			Help: "Total number of auto-retire evaluations by outcome",
		},
		[]string{"retire"},
	)

	RatingWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "psalter_rating_writes_total",
			Help: "Total number of rating writes",
		},
		[]string{"operation"}, // "set", "delete"
	)

	// Backup Metrics
	BackupSnapshots = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "psalter_backup_snapshots_total",
			Help: "Total number of library snapshots by trigger and result",
		},
		[]string{"trigger", "result"},
	)

	BackupSnapshotsDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "psalter_backup_snapshots_deleted_total",
			Help: "Total number of snapshots removed by retention",
		},
	)

	BackupLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "psalter_backup_last_success_timestamp_seconds",
			Help: "Unix time of the last successful library snapshot",
		},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordSuggestionRequest records one suggestion request. degraded lists
// the fetches that failed during it.
func RecordSuggestionRequest(result string, duration time.Duration, returned int, degraded []string) {
	SuggestionRequests.WithLabelValues(result).Inc()
	if result != "success" {
		return
	}
	SuggestionDuration.Observe(duration.Seconds())
	SuggestionsReturned.Observe(float64(returned))
	for _, fetch := range degraded {
		DegradedFetches.WithLabelValues(fetch).Inc()
	}
}

// RecordInsightReport records one library-health report
func RecordInsightReport(status string, duration time.Duration) {
	InsightReports.WithLabelValues(status).Inc()
	InsightDuration.Observe(duration.Seconds())
}

// RecordRetirementEvaluation records an auto-retire decision
func RecordRetirementEvaluation(retire bool) {
	RetirementEvaluations.WithLabelValues(strconv.FormatBool(retire)).Inc()
}

// RecordRatingWrite records a rating set or delete
func RecordRatingWrite(operation string) {
	RatingWrites.WithLabelValues(operation).Inc()
}

// RecordBackupSnapshot records a snapshot attempt
func RecordBackupSnapshot(trigger string, err error, at time.Time) {
	if err != nil {
		BackupSnapshots.WithLabelValues(trigger, "failure").Inc()
		return
	}
	BackupSnapshots.WithLabelValues(trigger, "success").Inc()
	BackupLastSuccess.Set(float64(at.Unix()))
}

// RecordBackupRetention records snapshots deleted by a retention pass
func RecordBackupRetention(deleted int) {
	if deleted > 0 {
		BackupSnapshotsDeleted.Add(float64(deleted))
	}
}

// RecordCacheStats adds hit and miss deltas for a cache.
func RecordCacheStats(cacheType string, hits, misses int64) {
	if hits > 0 {
		CacheHits.WithLabelValues(cacheType).Add(float64(hits))
	}
	if misses > 0 {
		CacheMisses.WithLabelValues(cacheType).Add(float64(misses))
	}
}
