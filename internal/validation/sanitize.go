// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package validation

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/joseluisng17/producthunt-next-replic/internal/forms"
)

// maxSanitizePasses bounds SanitizeText on nested entities such as
// "&amp;amp;lt;b&gt;".
const maxSanitizePasses = 8

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

// SanitizeText strips all markup from a free-text value and returns trimmed
// plain text. Entities are decoded since records are stored as JSON, and the
// pass repeats until the text is stable, so SanitizeText(SanitizeText(s)) ==
// SanitizeText(s). Input that does not settle within maxSanitizePasses
// sanitizes to "".
func SanitizeText(raw string) string {
	out := strings.TrimSpace(raw)
	for i := 0; i < maxSanitizePasses; i++ {
		if out == "" {
			return ""
		}
		next := strings.TrimSpace(html.UnescapeString(textSanitizer().Sanitize(out)))
		if next == out {
			return out
		}
		out = next
	}
	return ""
}

// SanitizeURL trims a URL value. The http_url rule does the rest.
func SanitizeURL(raw string) string {
	return strings.TrimSpace(raw)
}

// NormalizeProduct returns the new-product values as they are validated and
// stored: free text stripped of markup, the URL trimmed. Keys other than the
// product fields are copied unchanged.
func NormalizeProduct(values forms.Values) forms.Values {
	out := make(forms.Values, len(values))
	for k, v := range values {
		out[k] = v
	}
	for _, field := range []string{"nombre", "empresa", "descripcion"} {
		if v, ok := values[field]; ok {
			out[field] = SanitizeText(v)
		}
	}
	if v, ok := values["url"]; ok {
		out["url"] = SanitizeURL(v)
	}
	return out
}
