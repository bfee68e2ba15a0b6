// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

/*
Package metrics provides Prometheus metrics for Psalter.

Metrics are registered with promauto at package init and exposed at
/metrics by the API router.

API Metrics:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}

Engine Metrics:
  - psalter_suggestion_requests_total{result}
  - psalter_suggestion_duration_seconds
  - psalter_suggestions_returned
  - psalter_degraded_fetches_total{fetch}
  - psalter_insight_reports_total{rotation_status}
  - psalter_insight_duration_seconds
  - psalter_retirement_evaluations_total{retire}
  - psalter_rating_writes_total{operation}

Cache Metrics:
  - cache_hits_total{cache_type}
  - cache_misses_total{cache_type}

Circuit Breaker Metrics:
  - circuit_breaker_state{name}: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total{name, result}
  - circuit_breaker_consecutive_failures{name}
  - circuit_breaker_state_transitions_total{name, from_state, to_state}
*/
package metrics
