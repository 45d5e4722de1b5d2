// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

/*
Package forms implements the form state machine shared by the login and
new-product forms.

An Engine owns one form's values, field errors, touched set, selected file and
form-level error. Rules and the submit action are injected:

	engine := forms.New(validation.LoginFields(), validation.LoginRules, action)
	_ = engine.HandleChange("email", "a@b.com")
	_ = engine.HandleBlur("email")
	err := engine.HandleSubmit(ctx, nil)

Errors are never merged. Every blur and every submit replaces them with the
full output of the rule function evaluated over all current values, so blurring
one field can surface or clear errors on another. The submit action runs at
most once per HandleSubmit call and only when that recomputation is empty.

An Engine is not safe for concurrent use. The HTTP layer builds one per
request.
*/
package forms
