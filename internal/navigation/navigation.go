// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

// Package navigation moves the client to another page.
package navigation

import (
	"net/http"
	"sync"
)

// Paths the workflows navigate to.
const (
	PathHome  = "/"
	PathLogin = "/login"
)

// Navigator is fire-and-forget: NavigateTo never fails.
type Navigator interface {
	NavigateTo(path string)
}

// Recorder keeps every requested path. Safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	paths []string
}

// NavigateTo records path.
func (r *Recorder) NavigateTo(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

// Paths returns a copy of the recorded paths in order.
func (r *Recorder) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.paths))
	copy(out, r.paths)
	return out
}

// Last returns the most recent path, or "".
func (r *Recorder) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.paths) == 0 {
		return ""
	}
	return r.paths[len(r.paths)-1]
}

// Redirect answers an HTTP request with the last path navigated to.
// Paths requested after Write are kept for inspection but not sent.
type Redirect struct {
	Recorder
}

// Write sends 303 See Other to the last path and reports whether a
// navigation was pending.
func (r *Redirect) Write(w http.ResponseWriter, req *http.Request) bool {
	path := r.Last()
	if path == "" {
		return false
	}
	http.Redirect(w, req, path, http.StatusSeeOther)
	return true
}
