// Psalter - Worship Service Planning and Song Rotation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/psalter

/*
Package api provides the HTTP surface of Psalter on the Chi router.

Routes (all JSON, wrapped in models.APIResponse):

	GET    /api/v1/health                                   overall health
	GET    /api/v1/health/live                              liveness probe
	GET    /api/v1/health/ready                             readiness probe
	GET    /api/v1/churches/{churchID}/suggestions          ranked song suggestions
	GET    /api/v1/churches/{churchID}/insights             library-health report
	GET    /api/v1/churches/{churchID}/songs/{songID}/retirement
	POST   /api/v1/churches/{churchID}/songs/{songID}/retirement
	GET    /api/v1/songs/{songID}/ratings                   aggregate ratings
	PUT    /api/v1/songs/{songID}/rating                    set the caller's rating
	DELETE /api/v1/songs/{songID}/rating                    clear the caller's rating
	GET    /api/v1/stats                                    engine, cache and endpoint stats
	GET    /metrics                                         Prometheus

The caller is identified by the X-User-ID header. Authentication happens
upstream; the header is trusted as-is.

# Middleware

Every route runs behind request IDs, real-IP extraction, panic recovery,
CORS, Prometheus metrics and the performance monitor. The /api/v1 group is
additionally rate limited per IP with go-chi/httprate and gzip-compressed.

# Errors

Handlers map engine errors onto status codes in one place (respondServiceError):

	recommend.ErrInvalidRequest       400 VALIDATION_ERROR
	models.ErrNotFound                404 NOT_FOUND
	circuit breaker open              503 SERVICE_UNAVAILABLE
	anything else                     500 INTERNAL_ERROR
*/
package api
