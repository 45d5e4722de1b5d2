// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

/*
Package middleware provides HTTP middleware components for the application.

Key Components:

  - RequestID: UUID-based request tracking, wired into the logging context
  - PrometheusMetrics: request count, latency and in-flight gauges
  - AccessLog: one structured log line per request, warnings for slow ones
  - SecurityHeaders: CSP and the usual browser hardening headers

All middleware has the chi signature func(http.Handler) http.Handler:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(time.Second))
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.SecurityHeaders)

PrometheusMetrics labels requests by chi route pattern, so it must run inside
a chi router for /files/* style routes to share one series.
*/
package middleware
