// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/login", "303"))
	RecordAPIRequest("POST", "/login", "303", 20*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/login", "303"))
	if after != before+1 {
		t.Errorf("api_requests_total = %v, want %v", after, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active requests = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active requests = %v, want %v", got, before)
	}
}

func TestRecordFormSubmission(t *testing.T) {
	tests := []struct {
		valid   bool
		outcome string
	}{
		{true, "valid"},
		{false, "invalid"},
	}
	for _, tt := range tests {
		c := FormSubmissions.WithLabelValues("login", tt.outcome)
		before := testutil.ToFloat64(c)
		RecordFormSubmission("login", tt.valid)
		if got := testutil.ToFloat64(c); got != before+1 {
			t.Errorf("form_submissions{outcome=%s} = %v, want %v", tt.outcome, got, before+1)
		}
	}
}

func TestRecordLoginAttempt(t *testing.T) {
	c := LoginAttempts.WithLabelValues("failure")
	before := testutil.ToFloat64(c)
	RecordLoginAttempt(false)
	if got := testutil.ToFloat64(c); got != before+1 {
		t.Errorf("login_attempts{failure} = %v, want %v", got, before+1)
	}
}

func TestRecordDBOperation_CountsErrors(t *testing.T) {
	c := DBOperationErrors.WithLabelValues("insert", "productos")
	before := testutil.ToFloat64(c)

	RecordDBOperation("insert", "productos", time.Millisecond, nil)
	if got := testutil.ToFloat64(c); got != before {
		t.Errorf("errors after success = %v, want %v", got, before)
	}
	RecordDBOperation("insert", "productos", time.Millisecond, errors.New("disk full"))
	if got := testutil.ToFloat64(c); got != before+1 {
		t.Errorf("errors after failure = %v, want %v", got, before+1)
	}
}

func TestRecordStorageOperation(t *testing.T) {
	c := StorageOperationErrors.WithLabelValues("put")
	before := testutil.ToFloat64(c)
	RecordStorageOperation("put", time.Millisecond, errors.New("boom"))
	if got := testutil.ToFloat64(c); got != before+1 {
		t.Errorf("storage errors = %v, want %v", got, before+1)
	}

	bytesBefore := testutil.ToFloat64(StorageUploadBytes)
	RecordUploadBytes(512)
	if got := testutil.ToFloat64(StorageUploadBytes); got != bytesBefore+512 {
		t.Errorf("upload bytes = %v, want %v", got, bytesBefore+512)
	}
}

func TestCircuitBreakerMetrics(t *testing.T) {
	RecordCircuitBreakerState("storage", 2)
	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("storage")); got != 2 {
		t.Errorf("breaker state = %v, want 2", got)
	}
	c := CircuitBreakerTransitions.WithLabelValues("storage", "closed", "open")
	before := testutil.ToFloat64(c)
	RecordCircuitBreakerTransition("storage", "closed", "open")
	if got := testutil.ToFloat64(c); got != before+1 {
		t.Errorf("transitions = %v, want %v", got, before+1)
	}
}

func TestAuthAndEventMetrics(t *testing.T) {
	before := testutil.ToFloat64(AuthSubscriptionsActive)
	TrackAuthSubscription(true)
	TrackAuthSubscription(false)
	if got := testutil.ToFloat64(AuthSubscriptionsActive); got != before {
		t.Errorf("subscriptions gauge = %v, want %v", got, before)
	}

	c := EventsConsumed.WithLabelValues("products.created")
	cb := testutil.ToFloat64(c)
	RecordEventConsumed("products.created")
	if got := testutil.ToFloat64(c); got != cb+1 {
		t.Errorf("events consumed = %v, want %v", got, cb+1)
	}

	pc := EventsPoisoned.WithLabelValues("products.created")
	pb := testutil.ToFloat64(pc)
	RecordEventPoisoned("products.created")
	if got := testutil.ToFloat64(pc); got != pb+1 {
		t.Errorf("events poisoned = %v, want %v", got, pb+1)
	}

	sb := testutil.ToFloat64(SessionsExpired)
	RecordSessionsExpired(3)
	if got := testutil.ToFloat64(SessionsExpired); got != sb+3 {
		t.Errorf("sessions expired = %v, want %v", got, sb+3)
	}
}

func TestCacheMetrics(t *testing.T) {
	hits := testutil.ToFloat64(CacheLookups.WithLabelValues("products", "hit"))
	misses := testutil.ToFloat64(CacheLookups.WithLabelValues("products", "miss"))
	evictions := testutil.ToFloat64(CacheEvictions.WithLabelValues("products"))

	RecordCacheLookup("products", true)
	RecordCacheLookup("products", false)
	RecordCacheEviction("products")

	if got := testutil.ToFloat64(CacheLookups.WithLabelValues("products", "hit")); got != hits+1 {
		t.Errorf("hits = %v, want %v", got, hits+1)
	}
	if got := testutil.ToFloat64(CacheLookups.WithLabelValues("products", "miss")); got != misses+1 {
		t.Errorf("misses = %v, want %v", got, misses+1)
	}
	if got := testutil.ToFloat64(CacheEvictions.WithLabelValues("products")); got != evictions+1 {
		t.Errorf("evictions = %v, want %v", got, evictions+1)
	}
}
