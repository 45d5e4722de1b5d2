// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "producthunt_api_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "producthunt_api_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "producthunt_api_active_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)

	// Forms and workflows
	FormSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "producthunt_form_submissions_total",
			Help: "Form submissions by outcome (valid, invalid)",
		},
		[]string{"form", "outcome"},
	)

	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "producthunt_login_attempts_total",
			Help: "Login attempts that reached the auth provider",
		},
		[]string{"result"}, // success, failure
	)

	ProductWorkflow = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "producthunt_product_workflow_total",
			Help: "Product submission workflow runs by outcome",
		},
		[]string{"outcome"}, // created, redirected, image_required, upload_failed, persist_failed
	)

	// Document store
	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "producthunt_db_operation_duration_seconds",
			Help:    "Document store operation latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "collection"},
	)

	DBOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "producthunt_db_operation_errors_total",
			Help: "Document store operation errors",
		},
		[]string{"operation", "collection"},
	)

	// Object storage
	StorageOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "producthunt_storage_operation_duration_seconds",
			Help:    "Object storage operation latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	StorageOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "producthunt_storage_operation_errors_total",
			Help: "Object storage operation errors",
		},
		[]string{"operation"},
	)

	StorageUploadBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "producthunt_storage_upload_bytes",
			Help: "Total bytes written to object storage",
		},
	)

	// Circuit breakers
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "producthunt_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "producthunt_circuit_breaker_requests_total",
			Help: "Requests through a circuit breaker",
		},
		[]string{"name", "result"}, // success, failure, rejected
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "producthunt_circuit_breaker_state_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Auth
	AuthSubscriptionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "producthunt_auth_subscriptions_active",
			Help: "Open auth state subscriptions",
		},
	)

	SessionsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "producthunt_sessions_expired_total",
			Help: "Sessions removed by the cleanup service",
		},
	)

	// Caches
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "producthunt_cache_lookups_total",
			Help: "Cache lookups by cache and result (hit, miss)",
		},
		[]string{"cache", "result"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "producthunt_cache_evictions_total",
			Help: "Entries dropped for capacity or expiry",
		},
		[]string{"cache"},
	)

	// Event bus
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "producthunt_events_published_total",
			Help: "Events published on the in-process bus",
		},
		[]string{"topic"},
	)

	EventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "producthunt_events_consumed_total",
			Help: "Events consumed from the in-process bus",
		},
		[]string{"topic"},
	)

	EventsPoisoned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "producthunt_events_poisoned_total",
			Help: "Events moved to the poison queue after their handler kept failing",
		},
		[]string{"topic"},
	)
)

// RecordAPIRequest records one finished HTTP request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordFormSubmission records a submit that passed or failed validation.
func RecordFormSubmission(form string, valid bool) {
	outcome := "invalid"
	if valid {
		outcome = "valid"
	}
	FormSubmissions.WithLabelValues(form, outcome).Inc()
}

// RecordLoginAttempt records the auth provider's answer to a login.
func RecordLoginAttempt(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	LoginAttempts.WithLabelValues(result).Inc()
}

// RecordProductWorkflow records how a product submission ended.
func RecordProductWorkflow(outcome string) {
	ProductWorkflow.WithLabelValues(outcome).Inc()
}

// RecordDBOperation records a document store call.
func RecordDBOperation(operation, collection string, duration time.Duration, err error) {
	DBOperationDuration.WithLabelValues(operation, collection).Observe(duration.Seconds())
	if err != nil {
		DBOperationErrors.WithLabelValues(operation, collection).Inc()
	}
}

// RecordStorageOperation records an object storage call.
func RecordStorageOperation(operation string, duration time.Duration, err error) {
	StorageOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		StorageOperationErrors.WithLabelValues(operation).Inc()
	}
}

// RecordUploadBytes adds n to the uploaded bytes counter.
func RecordUploadBytes(n int) {
	StorageUploadBytes.Add(float64(n))
}

// RecordCircuitBreakerState sets the state gauge: 0 closed, 1 half-open, 2 open.
func RecordCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordCircuitBreakerRequest counts a call by result.
func RecordCircuitBreakerRequest(name, result string) {
	CircuitBreakerRequests.WithLabelValues(name, result).Inc()
}

// RecordCircuitBreakerTransition counts a state change.
func RecordCircuitBreakerTransition(name, from, to string) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
}

// TrackAuthSubscription increments or decrements the open subscriptions gauge.
func TrackAuthSubscription(inc bool) {
	if inc {
		AuthSubscriptionsActive.Inc()
	} else {
		AuthSubscriptionsActive.Dec()
	}
}

// RecordSessionsExpired adds n removed sessions.
func RecordSessionsExpired(n int) {
	SessionsExpired.Add(float64(n))
}

// RecordEventPublished counts a published event.
func RecordEventPublished(topic string) {
	EventsPublished.WithLabelValues(topic).Inc()
}

// RecordEventConsumed counts a consumed event.
func RecordEventConsumed(topic string) {
	EventsConsumed.WithLabelValues(topic).Inc()
}

// RecordEventPoisoned counts an event that exhausted its retries.
func RecordEventPoisoned(topic string) {
	EventsPoisoned.WithLabelValues(topic).Inc()
}

// RecordCacheLookup counts a cache hit or miss.
func RecordCacheLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookups.WithLabelValues(cache, result).Inc()
}

// RecordCacheEviction counts one dropped entry.
func RecordCacheEviction(cache string) {
	CacheEvictions.WithLabelValues(cache).Inc()
}
