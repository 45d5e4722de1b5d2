// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

/*
Package metrics defines the Prometheus metrics of the site and small helpers
to record them.

Metrics are registered on the default registry through promauto and served at
/metrics:

	curl http://localhost:3000/metrics

# Available Metrics

HTTP:
  - producthunt_api_requests_total{method,endpoint,status}
  - producthunt_api_request_duration_seconds{method,endpoint}
  - producthunt_api_active_requests

Forms and workflows:
  - producthunt_form_submissions_total{form,outcome}
  - producthunt_login_attempts_total{result}
  - producthunt_product_workflow_total{outcome}

Collaborators:
  - producthunt_db_operation_duration_seconds{operation,collection}
  - producthunt_db_operation_errors_total{operation,collection}
  - producthunt_storage_operation_duration_seconds{operation}
  - producthunt_storage_operation_errors_total{operation}
  - producthunt_storage_upload_bytes
  - producthunt_circuit_breaker_state{name}
  - producthunt_circuit_breaker_requests_total{name,result}
  - producthunt_circuit_breaker_state_transitions_total{name,from_state,to_state}

Auth and events:
  - producthunt_auth_subscriptions_active
  - producthunt_sessions_expired_total
  - producthunt_events_published_total{topic}
  - producthunt_events_consumed_total{topic}
*/
package metrics
