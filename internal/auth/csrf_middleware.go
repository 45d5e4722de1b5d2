// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package auth

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/joseluisng17/producthunt-next-replic/internal/logging"
)

// ErrCrossOrigin is reported when a state-changing request comes from a page
// of another, untrusted origin.
var ErrCrossOrigin = errors.New("cross-origin request rejected")

// CSRFConfig holds configuration for the cross-origin request check.
type CSRFConfig struct {
	// TrustedOrigins may post to this site from another origin, written as
	// scheme://host[:port]. "*" trusts every origin.
	TrustedOrigins []string

	// ExemptMethods are never checked.
	// Default: GET, HEAD, OPTIONS, TRACE (safe methods per RFC 7231).
	ExemptMethods []string

	// ErrorHandler is called when a request is rejected.
	// If nil, returns 403 Forbidden with JSON error.
	ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)
}

// DefaultCSRFConfig trusts no other origin.
func DefaultCSRFConfig() *CSRFConfig {
	return &CSRFConfig{
		ExemptMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace},
	}
}

// CSRFMiddleware rejects form posts forged by other sites. Browsers label
// every request with Sec-Fetch-Site or Origin; a state-changing request is
// allowed when it is same-origin, typed by the user, or from a trusted
// origin. Requests carrying neither header are not from a browser page and
// pass, with the session cookie's SameSite=Lax as the remaining guard.
type CSRFMiddleware struct {
	config   *CSRFConfig
	trusted  map[string]struct{}
	trustAll bool
}

// NewCSRFMiddleware creates the middleware. A nil config uses DefaultCSRFConfig.
func NewCSRFMiddleware(config *CSRFConfig) *CSRFMiddleware {
	if config == nil {
		config = DefaultCSRFConfig()
	}
	if len(config.ExemptMethods) == 0 {
		config.ExemptMethods = DefaultCSRFConfig().ExemptMethods
	}

	m := &CSRFMiddleware{config: config, trusted: make(map[string]struct{})}
	for _, origin := range config.TrustedOrigins {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin == "*" {
			m.trustAll = true
			continue
		}
		if origin != "" {
			m.trusted[strings.ToLower(origin)] = struct{}{}
		}
	}
	return m
}

// Protect applies the check to every non-exempt request.
func (m *CSRFMiddleware) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.isExemptMethod(r.Method) {
			if err := m.check(r); err != nil {
				logging.Ctx(r.Context()).Warn().
					Str("path", r.URL.Path).
					Str("origin", r.Header.Get("Origin")).
					Str("sec_fetch_site", r.Header.Get("Sec-Fetch-Site")).
					Msg("Cross-origin request rejected")
				m.handleError(w, r, err)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (m *CSRFMiddleware) check(r *http.Request) error {
	origin := r.Header.Get("Origin")

	switch r.Header.Get("Sec-Fetch-Site") {
	case "same-origin", "none":
		return nil
	case "":
		// Older browsers only send Origin.
		if origin == "" || m.isSameHost(origin, r.Host) || m.isTrusted(origin) {
			return nil
		}
		return ErrCrossOrigin
	default:
		// same-site and cross-site
		if origin != "" && m.isTrusted(origin) {
			return nil
		}
		return ErrCrossOrigin
	}
}

func (m *CSRFMiddleware) isTrusted(origin string) bool {
	if m.trustAll {
		return true
	}
	_, ok := m.trusted[strings.ToLower(strings.TrimRight(origin, "/"))]
	return ok
}

func (m *CSRFMiddleware) isSameHost(origin, host string) bool {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	return strings.EqualFold(u.Host, host)
}

// isExemptMethod checks if the HTTP method is exempt from the check.
func (m *CSRFMiddleware) isExemptMethod(method string) bool {
	for _, exempt := range m.config.ExemptMethods {
		if strings.EqualFold(method, exempt) {
			return true
		}
	}
	return false
}

func (m *CSRFMiddleware) handleError(w http.ResponseWriter, r *http.Request, err error) {
	if m.config.ErrorHandler != nil {
		m.config.ErrorHandler(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	//nolint:errcheck // error response
	w.Write([]byte(`{"error":"csrf_failed","error_description":"` + err.Error() + `"}`))
}
