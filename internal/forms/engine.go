// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package forms

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrUnknownField is returned for a field that was not part of the
	// initial values.
	ErrUnknownField = errors.New("unknown form field")

	// ErrInvalid is returned by HandleSubmit when the rules reported errors.
	ErrInvalid = errors.New("form has validation errors")
)

// Values maps field name to its current value.
type Values map[string]string

// Errors maps field name to its error message. A missing key means valid.
type Errors map[string]string

// RuleFunc evaluates every field of a form at once.
type RuleFunc func(Values) Errors

// Action is the submit action. It reads values through its closure.
type Action func(ctx context.Context) error

// NormalizeFunc maps raw values to the values that are validated and kept.
// It must be idempotent.
type NormalizeFunc func(Values) Values

// SubmitEvent is the event that triggered a submit. HandleSubmit calls
// PreventDefault before doing anything else.
type SubmitEvent interface {
	PreventDefault()
}

// Engine is the form controller.
type Engine struct {
	rules     RuleFunc
	action    Action
	normalize NormalizeFunc

	values    Values
	errors    Errors
	touched   map[string]struct{}
	file      *SelectedFile
	formError string
	submitted bool
}

// New returns an initialized engine. A nil action makes a valid submit a no-op.
func New(initial Values, rules RuleFunc, action Action) *Engine {
	e := &Engine{rules: rules, action: action}
	e.Initialize(initial)
	return e
}

// SetAction replaces the submit action. Workflows that need the engine inside
// their action use it after New.
func (e *Engine) SetAction(action Action) {
	e.action = action
}

// SetNormalizer makes HandleSubmit replace the values with normalize(values)
// before validating, so the action reads exactly what the rules accepted.
func (e *Engine) SetNormalizer(normalize NormalizeFunc) {
	e.normalize = normalize
}

// Initialize resets the engine to initial. The map is copied.
func (e *Engine) Initialize(initial Values) {
	e.values = make(Values, len(initial))
	for k, v := range initial {
		e.values[k] = v
	}
	e.errors = Errors{}
	e.touched = make(map[string]struct{})
	e.file = nil
	e.formError = ""
	e.submitted = false
}

// HandleChange updates one value. It does not validate.
func (e *Engine) HandleChange(field, value string) error {
	if _, ok := e.values[field]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	e.values[field] = value
	return nil
}

// HandleBlur marks field as touched and recomputes all errors.
func (e *Engine) HandleBlur(field string) error {
	if _, ok := e.values[field]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	e.touched[field] = struct{}{}
	e.recompute()
	return nil
}

// HandleSubmit prevents the event default, clears the form error, normalizes
// the values, recomputes errors and runs the action when there are none. It
// returns ErrInvalid without calling the action otherwise, or the action's
// own error.
func (e *Engine) HandleSubmit(ctx context.Context, ev SubmitEvent) error {
	if ev != nil {
		ev.PreventDefault()
	}
	e.submitted = true
	e.formError = ""
	if e.normalize != nil {
		normalized := e.normalize(e.Values())
		for field := range e.values {
			e.values[field] = normalized[field]
		}
	}
	e.recompute()
	if len(e.errors) > 0 {
		return ErrInvalid
	}
	if e.action == nil {
		return nil
	}
	return e.action(ctx)
}

// recompute replaces errors with the rule output, dropping keys that are not
// form fields.
func (e *Engine) recompute() {
	next := Errors{}
	if e.rules != nil {
		for field, msg := range e.rules(e.Values()) {
			if _, ok := e.values[field]; ok {
				next[field] = msg
			}
		}
	}
	e.errors = next
}

// Values returns a copy of the current values.
func (e *Engine) Values() Values {
	out := make(Values, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

// Value returns one field value.
func (e *Engine) Value(field string) string {
	return e.values[field]
}

// Errors returns a copy of the current field errors.
func (e *Engine) Errors() Errors {
	out := make(Errors, len(e.errors))
	for k, v := range e.errors {
		out[k] = v
	}
	return out
}

// Touched reports whether field has been blurred.
func (e *Engine) Touched(field string) bool {
	_, ok := e.touched[field]
	return ok
}

// TouchedFields returns the touched field names, sorted.
func (e *Engine) TouchedFields() []string {
	out := make([]string, 0, len(e.touched))
	for f := range e.touched {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Submitted reports whether a submit has been attempted since Initialize.
func (e *Engine) Submitted() bool {
	return e.submitted
}

// VisibleErrors returns the errors a page should display: those of touched
// fields, or all of them once a submit was attempted.
func (e *Engine) VisibleErrors() Errors {
	if e.submitted {
		return e.Errors()
	}
	out := Errors{}
	for field, msg := range e.errors {
		if _, ok := e.touched[field]; ok {
			out[field] = msg
		}
	}
	return out
}

// SetFormError stores a message that belongs to the whole form rather than a
// field, such as a rejected login. An empty message clears it.
func (e *Engine) SetFormError(msg string) {
	e.formError = msg
}

// FormError returns the form-level message, or "".
func (e *Engine) FormError() string {
	return e.formError
}

// SelectFile replaces the selected file. A nil file is ignored, matching a
// file input whose selection was cancelled.
func (e *Engine) SelectFile(f *SelectedFile) {
	if f == nil {
		return
	}
	e.file = f
}

// File returns the selected file, or nil.
func (e *Engine) File() *SelectedFile {
	return e.file
}
