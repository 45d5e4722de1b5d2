// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package validation

import (
	"strconv"

	"github.com/joseluisng17/producthunt-next-replic/internal/forms"
)

// MinPasswordLength is the shortest password the login form accepts.
// The min tag on loginForm.Password must carry the same number.
const MinPasswordLength = 6

type loginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
}

var loginMessages = map[string]string{
	"email.required":    "El email es obligatorio",
	"email.email":       "Email no válido",
	"password.required": "El password es obligatorio",
	"password.min":      "El password debe ser de al menos " + strconv.Itoa(MinPasswordLength) + " caracteres",
}

// LoginRules validates the login form.
func LoginRules(values forms.Values) forms.Errors {
	return toErrors(ValidateStruct(&loginForm{
		Email:    values["email"],
		Password: values["password"],
	}, loginMessages))
}

type productForm struct {
	Nombre      string `form:"nombre" validate:"required"`
	Empresa     string `form:"empresa" validate:"required"`
	URL         string `form:"url" validate:"required,http_url"`
	Descripcion string `form:"descripcion" validate:"required"`
}

var productMessages = map[string]string{
	"nombre.required":      "El Nombre es obligatorio",
	"empresa.required":     "Nombre de Empresa es obligatorio",
	"url.required":         "La URL del producto es obligatoria",
	"url.http_url":         "URL mal formateada o no válida",
	"descripcion.required": "Agrega una descripción de tu producto",
}

// ProductRules validates the new-product form after NormalizeProduct, so a
// value that only holds markup or blanks fails as required.
func ProductRules(values forms.Values) forms.Errors {
	values = NormalizeProduct(values)
	return toErrors(ValidateStruct(&productForm{
		Nombre:      values["nombre"],
		Empresa:     values["empresa"],
		URL:         values["url"],
		Descripcion: values["descripcion"],
	}, productMessages))
}

// LoginFields and ProductFields are the initial (empty) values of each form.
func LoginFields() forms.Values {
	return forms.Values{"email": "", "password": ""}
}

// ProductFields returns the empty new-product form.
func ProductFields() forms.Values {
	return forms.Values{"nombre": "", "empresa": "", "url": "", "descripcion": ""}
}

// Form pairs a form's initial values with its rules.
type Form struct {
	Name    string
	Initial func() forms.Values
	Rules   forms.RuleFunc
}

// Forms lists the site forms by the name used in URLs.
var Forms = map[string]Form{
	"login":          {Name: "login", Initial: LoginFields, Rules: LoginRules},
	"nuevo-producto": {Name: "nuevo-producto", Initial: ProductFields, Rules: ProductRules},
}

func toErrors(ve *RequestValidationError) forms.Errors {
	if ve == nil {
		return forms.Errors{}
	}
	return forms.Errors(ve.Fields())
}
