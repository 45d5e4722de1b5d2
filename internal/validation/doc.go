// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

// Package validation holds the field rules for the two site forms and the
// go-playground/validator singleton they are built on.
//
// Each form is described by a small struct whose "form" tags name the form
// fields and whose "validate" tags carry the rules:
//
//	type loginForm struct {
//	    Email    string `form:"email" validate:"required,email"`
//	    Password string `form:"password" validate:"required,min=6"`
//	}
//
// LoginRules and ProductRules copy the submitted values into that struct,
// validate it and return one message per failing field, keyed by form field
// name. They are pure and safe for concurrent use; an empty result means the
// values are valid.
//
// The validator stops at the first failing tag of a field, so a field reports
// "required" before any format problem.
package validation
