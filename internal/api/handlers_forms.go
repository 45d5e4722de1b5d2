// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package api

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/joseluisng17/producthunt-next-replic/internal/auth"
	"github.com/joseluisng17/producthunt-next-replic/internal/forms"
	"github.com/joseluisng17/producthunt-next-replic/internal/logging"
	"github.com/joseluisng17/producthunt-next-replic/internal/validation"
)

// maxValidateBody bounds the JSON body of the validate endpoint.
const maxValidateBody = 64 << 10

// secretFields are never echoed back to the client.
var secretFields = map[string]bool{"password": true}

// FormState is the client view of a form.
type FormState struct {
	Form      string       `json:"form"`
	Values    forms.Values `json:"values"`
	Errors    forms.Errors `json:"errors"`
	Touched   []string     `json:"touched,omitempty"`
	FormError string       `json:"form_error,omitempty"`
	User      *auth.User   `json:"user,omitempty"`
}

func formState(name string, e *forms.Engine) FormState {
	values := e.Values()
	for field := range values {
		if secretFields[field] {
			values[field] = ""
		}
	}
	return FormState{
		Form:      name,
		Values:    values,
		Errors:    e.VisibleErrors(),
		Touched:   e.TouchedFields(),
		FormError: e.FormError(),
	}
}

// applyValues copies posted values of the engine's fields. Other posted keys
// are ignored.
func applyValues(e *forms.Engine, posted url.Values) {
	for field := range e.Values() {
		if _, ok := posted[field]; !ok {
			continue
		}
		// the field exists, HandleChange cannot fail
		_ = e.HandleChange(field, posted.Get(field))
	}
}

// formPost is the submit event of an HTTP form post. The browser already
// posted, so there is no default left to prevent.
type formPost struct{}

func (formPost) PreventDefault() {}

// ValidateRequest is the body of POST /api/v1/forms/{form}/validate.
type ValidateRequest struct {
	Values forms.Values `json:"values"`

	// Touched are fields blurred earlier; Blur is the field that just lost focus.
	Touched []string `json:"touched,omitempty"`
	Blur    string   `json:"blur,omitempty"`
}

// ValidateResponse reports the form's errors after the blur.
type ValidateResponse struct {
	Form          string       `json:"form"`
	Errors        forms.Errors `json:"errors"`
	VisibleErrors forms.Errors `json:"visible_errors"`
	Touched       []string     `json:"touched"`
	Valid         bool         `json:"valid"`
}

// ValidateForm runs the blur handling of a form. The client keeps the form
// state and sends it whole, so repeated calls with the same input give the
// same answer.
func (h *Handler) ValidateForm(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	name := chi.URLParam(r, "form")
	form, ok := validation.Forms[name]
	if !ok {
		rw.NotFound("Formulario desconocido")
		return
	}

	var req ValidateRequest
	body, err := io.ReadAll(io.LimitReader(r.Body, maxValidateBody+1))
	if err != nil || len(body) > maxValidateBody {
		rw.BadRequest("Cuerpo de la solicitud inválido")
		return
	}
	if err := json.Unmarshal(body, &req); err != nil {
		rw.BadRequest("JSON inválido")
		return
	}

	engine := forms.New(form.Initial(), form.Rules, nil)
	fields := make([]string, 0, len(req.Values))
	for field := range req.Values {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		if err := engine.HandleChange(field, req.Values[field]); err != nil {
			rw.BadRequest("Campo desconocido: " + field)
			return
		}
	}

	blurred := append([]string{}, req.Touched...)
	if req.Blur != "" {
		blurred = append(blurred, req.Blur)
	}
	for _, field := range blurred {
		if err := engine.HandleBlur(field); err != nil {
			if errors.Is(err, forms.ErrUnknownField) {
				rw.BadRequest("Campo desconocido: " + field)
				return
			}
			logging.Ctx(r.Context()).Error().Err(err).Str("form", name).Msg("Blur handling failed")
			rw.InternalError("Error al validar el formulario")
			return
		}
	}
	// With nothing blurred the engine has not validated yet; the client
	// still gets the full error set to decide whether submit is enabled.
	errs := engine.Errors()
	if len(blurred) == 0 {
		errs = form.Rules(engine.Values())
	}
	rw.Success(ValidateResponse{
		Form:          name,
		Errors:        errs,
		VisibleErrors: engine.VisibleErrors(),
		Touched:       engine.TouchedFields(),
		Valid:         len(errs) == 0,
	})
}
