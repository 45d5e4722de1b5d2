// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package validation

import (
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/joseluisng17/producthunt-next-replic/internal/forms"
)

func validProduct() forms.Values {
	return forms.Values{
		"nombre":      "Cartógrafo",
		"empresa":     "Mapas SA",
		"url":         "https://mapas.example/app",
		"descripcion": "Mapas interactivos",
	}
}

func TestLoginRules(t *testing.T) {
	tests := []struct {
		name   string
		values forms.Values
		want   forms.Errors
	}{
		{
			name:   "valid",
			values: forms.Values{"email": "a@b.com", "password": "secret1"},
			want:   forms.Errors{},
		},
		{
			name:   "empty",
			values: forms.Values{"email": "", "password": ""},
			want: forms.Errors{
				"email":    "El email es obligatorio",
				"password": "El password es obligatorio",
			},
		},
		{
			name:   "bad email",
			values: forms.Values{"email": "not-an-email", "password": "secret1"},
			want:   forms.Errors{"email": "Email no válido"},
		},
		{
			name:   "short password",
			values: forms.Values{"email": "a@b.com", "password": "12345"},
			want:   forms.Errors{"password": "El password debe ser de al menos 6 caracteres"},
		},
		{
			name:   "password at minimum",
			values: forms.Values{"email": "a@b.com", "password": strings.Repeat("x", MinPasswordLength)},
			want:   forms.Errors{},
		},
		{
			name:   "missing keys treated as empty",
			values: forms.Values{},
			want: forms.Errors{
				"email":    "El email es obligatorio",
				"password": "El password es obligatorio",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LoginRules(tt.values)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("LoginRules() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoginRules_EmptyEmailReportsRequired(t *testing.T) {
	got := LoginRules(forms.Values{"email": "", "password": "x"})
	if got["email"] != "El email es obligatorio" {
		t.Errorf("errors[email] = %q, want required message", got["email"])
	}
}

func TestProductRules_Valid(t *testing.T) {
	if got := ProductRules(validProduct()); len(got) != 0 {
		t.Errorf("ProductRules(valid) = %v, want empty", got)
	}
}

// Emptying any single required field yields exactly that field.
func TestProductRules_ExactlyFailingFields(t *testing.T) {
	for field := range ProductFields() {
		t.Run(field, func(t *testing.T) {
			values := validProduct()
			values[field] = ""
			got := ProductRules(values)
			if len(got) != 1 {
				t.Fatalf("ProductRules() = %v, want exactly %q", got, field)
			}
			if _, ok := got[field]; !ok {
				t.Errorf("ProductRules() = %v, missing %q", got, field)
			}
		})
	}
}

func TestProductRules_URL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr string
	}{
		{"https://ok.example", ""},
		{"http://ok.example/path?q=1", ""},
		{"ok.example", "URL mal formateada o no válida"},
		{"not a url", "URL mal formateada o no válida"},
		{"javascript:alert(1)", "URL mal formateada o no válida"},
		{"mailto:ana@example.com", "URL mal formateada o no válida"},
		{"ftp://files.example/app.zip", "URL mal formateada o no válida"},
		{"  https://ok.example  ", ""},
		{"", "La URL del producto es obligatoria"},
		{"   ", "La URL del producto es obligatoria"},
	}
	for _, tt := range tests {
		values := validProduct()
		values["url"] = tt.url
		got := ProductRules(values)["url"]
		if got != tt.wantErr {
			t.Errorf("url %q: error = %q, want %q", tt.url, got, tt.wantErr)
		}
	}
}

// Blank or markup-only values are empty once normalized and fail as required.
func TestProductRules_NormalizedRequired(t *testing.T) {
	tests := []struct {
		field string
		value string
		want  string
	}{
		{"nombre", "   ", "El Nombre es obligatorio"},
		{"nombre", "<b></b>", "El Nombre es obligatorio"},
		{"empresa", "\t\n", "Nombre de Empresa es obligatorio"},
		{"descripcion", "<script>alert(1)</script>", "Agrega una descripción de tu producto"},
	}
	for _, tt := range tests {
		t.Run(tt.field+"="+strconv.Quote(tt.value), func(t *testing.T) {
			values := validProduct()
			values[tt.field] = tt.value
			got := ProductRules(values)
			if diff := cmp.Diff(forms.Errors{tt.field: tt.want}, got); diff != "" {
				t.Errorf("ProductRules() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoginRules_PasswordTagMatchesMinimum(t *testing.T) {
	field, ok := reflect.TypeOf(loginForm{}).FieldByName("Password")
	if !ok {
		t.Fatal("loginForm has no Password field")
	}
	want := "min=" + strconv.Itoa(MinPasswordLength)
	if tag := field.Tag.Get("validate"); !strings.Contains(tag, want) {
		t.Errorf("Password validate tag = %q, want it to contain %q", tag, want)
	}
	if msg := loginMessages["password.min"]; !strings.Contains(msg, strconv.Itoa(MinPasswordLength)) {
		t.Errorf("password.min message = %q, want it to mention %d", msg, MinPasswordLength)
	}
}

func TestProductRules_AllEmpty(t *testing.T) {
	got := ProductRules(ProductFields())
	want := forms.Errors{
		"nombre":      "El Nombre es obligatorio",
		"empresa":     "Nombre de Empresa es obligatorio",
		"url":         "La URL del producto es obligatoria",
		"descripcion": "Agrega una descripción de tu producto",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ProductRules(empty) mismatch (-want +got):\n%s", diff)
	}
}

func TestForms_Registry(t *testing.T) {
	for name, f := range Forms {
		if f.Name != name {
			t.Errorf("Forms[%q].Name = %q", name, f.Name)
		}
		// Rule output keys are always a subset of the initial keys.
		initial := f.Initial()
		for key := range f.Rules(initial) {
			if _, ok := initial[key]; !ok {
				t.Errorf("form %q: rule produced unknown key %q", name, key)
			}
		}
	}
}
