// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

// Package login runs the login form: credentials in, session out, then home.
package login

import (
	"context"
	"errors"

	"github.com/joseluisng17/producthunt-next-replic/internal/auth"
	"github.com/joseluisng17/producthunt-next-replic/internal/forms"
	"github.com/joseluisng17/producthunt-next-replic/internal/logging"
	"github.com/joseluisng17/producthunt-next-replic/internal/metrics"
	"github.com/joseluisng17/producthunt-next-replic/internal/navigation"
	"github.com/joseluisng17/producthunt-next-replic/internal/validation"
)

// FormName is the metrics and URL name of the form.
const FormName = "login"

// Authenticator creates sessions.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*auth.User, *auth.Session, error)
}

// Workflow owns one login form. It is not safe for concurrent use; each
// request builds its own.
type Workflow struct {
	auth    Authenticator
	nav     navigation.Navigator
	engine  *forms.Engine
	user    *auth.User
	session *auth.Session
}

// New returns a workflow with an empty login form.
func New(a Authenticator, nav navigation.Navigator) *Workflow {
	w := &Workflow{auth: a, nav: nav}
	w.engine = forms.New(validation.LoginFields(), validation.LoginRules, w.login)
	return w
}

// Engine exposes the form for change and blur handling.
func (w *Workflow) Engine() *forms.Engine {
	return w.engine
}

// Session returns the session created by a successful submit.
func (w *Workflow) Session() *auth.Session {
	return w.session
}

// User returns the user logged in by a successful submit.
func (w *Workflow) User() *auth.User {
	return w.user
}

// Submit validates the form and, when valid, makes exactly one login attempt.
// It returns forms.ErrInvalid for field errors, or the login error after
// storing its message as the form error.
func (w *Workflow) Submit(ctx context.Context, ev forms.SubmitEvent) error {
	err := w.engine.HandleSubmit(ctx, ev)
	metrics.RecordFormSubmission(FormName, !errors.Is(err, forms.ErrInvalid))
	return err
}

func (w *Workflow) login(ctx context.Context) error {
	values := w.engine.Values()
	user, session, err := w.auth.Login(ctx, values["email"], values["password"])
	if err != nil {
		w.engine.SetFormError(auth.LoginMessage(err))
		logging.Ctx(ctx).Debug().Err(err).Msg("Login form rejected")
		return err
	}
	w.user = user
	w.session = session
	w.nav.NavigateTo(navigation.PathHome)
	return nil
}
