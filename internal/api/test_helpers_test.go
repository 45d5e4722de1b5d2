// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package api

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/crypto/bcrypt"

	"github.com/joseluisng17/producthunt-next-replic/internal/auth"
	"github.com/joseluisng17/producthunt-next-replic/internal/config"
	"github.com/joseluisng17/producthunt-next-replic/internal/database"
	"github.com/joseluisng17/producthunt-next-replic/internal/events"
	"github.com/joseluisng17/producthunt-next-replic/internal/storage"
)

const (
	testEmail    = "ana@example.com"
	testPassword = "secreto1"
)

// pngBytes is enough of a PNG for content sniffing.
var pngBytes = []byte{
	0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n',
	0, 0, 0, 13, 'I', 'H', 'D', 'R',
	0, 0, 0, 1, 0, 0, 0, 1, 8, 2, 0, 0, 0,
}

// testEnv is a full handler stack over in-memory stores with one account.
type testEnv struct {
	cfg      *config.Config
	db       *database.DB
	docs     *database.DocStore
	auth     *auth.Service
	sessions auth.SessionStore
	cookie   *auth.SessionMiddleware
	bus      *events.Bus
	handler  http.Handler
}

type envOption func(*config.Config, *Dependencies)

func withBlobs(b BlobStore) envOption {
	return func(_ *config.Config, d *Dependencies) { d.Blobs = b }
}

func withConfig(fn func(*config.Config)) envOption {
	return func(c *config.Config, _ *Dependencies) { fn(c) }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, err := database.OpenBadger("", true)
	if err != nil {
		t.Fatalf("OpenBadger() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	users := auth.NewUserStore(db.Badger(), auth.UserStoreConfig{BcryptCost: bcrypt.MinCost})
	if _, err := users.Create(ctx, testEmail, "Ana", testPassword); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	bus := events.NewBus(events.DefaultConfig())
	t.Cleanup(func() { _ = bus.Close() })

	sessions := auth.NewMemorySessionStore()
	svc := auth.NewService(users, sessions, bus, auth.ServiceConfig{})

	signer, err := storage.NewURLSigner("test-signing-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewURLSigner() error = %v", err)
	}

	cfg := &config.Config{}
	cfg.Workflow.RequireImage = true
	cfg.Workflow.Timeout = 5 * time.Second
	cfg.Storage.MaxUploadBytes = 1 << 20
	cfg.Security.RateLimitDisabled = true

	docs := database.NewDocStore(db, database.DocStoreConfig{})
	cookie := auth.NewSessionMiddleware(sessions, auth.DefaultSessionMiddlewareConfig())
	deps := Dependencies{
		Config:    cfg,
		DB:        db,
		Docs:      docs,
		Auth:      svc,
		Sessions:  cookie,
		Blobs:     storage.NewBadgerBlobStore(db.Badger(), signer, storage.BlobStoreConfig{}),
		Publisher: bus,
	}
	for _, opt := range opts {
		opt(cfg, &deps)
	}

	router := NewRouter(NewHandler(deps), cookie, NewChiMiddleware(ChiMiddlewareConfigFromSecurity(cfg.Security)))
	return &testEnv{
		cfg:      cfg,
		db:       db,
		docs:     docs,
		auth:     svc,
		sessions: sessions,
		cookie:   cookie,
		bus:      bus,
		handler:  router.SetupChi(),
	}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// login opens a session directly and returns its cookie.
func (e *testEnv) login(t *testing.T) *http.Cookie {
	t.Helper()
	_, session, err := e.auth.Login(context.Background(), testEmail, testPassword)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	return &http.Cookie{Name: e.cookie.CookieName(), Value: session.ID}
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// productUpload describes a multipart product submission.
type productUpload struct {
	values       map[string]string
	filename     string
	data         []byte
	lastModified string
}

func validProduct() productUpload {
	return productUpload{
		values: map[string]string{
			"nombre":      "Lanzador",
			"empresa":     "Acme",
			"url":         "https://acme.example.com",
			"descripcion": "Lanza productos",
		},
		filename:     "logo.png",
		data:         pngBytes,
		lastModified: "1700000000000",
	}
}

func (p productUpload) request(t *testing.T) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range p.values {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("WriteField() error = %v", err)
		}
	}
	if p.lastModified != "" {
		if err := mw.WriteField(LastModifiedField, p.lastModified); err != nil {
			t.Fatalf("WriteField() error = %v", err)
		}
	}
	if p.filename != "" {
		fw, err := mw.CreateFormFile(ImageField, p.filename)
		if err != nil {
			t.Fatalf("CreateFormFile() error = %v", err)
		}
		if _, err := fw.Write(p.data); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/nuevo-producto", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// formErrorBody decodes an error envelope whose details are a FormState.
type formErrorBody struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string    `json:"code"`
		Message string    `json:"message"`
		Details FormState `json:"details"`
	} `json:"error"`
}

func decodeFormError(t *testing.T, rec *httptest.ResponseRecorder) formErrorBody {
	t.Helper()
	var body formErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to unmarshal response: %v (body %s)", err, rec.Body.String())
	}
	return body
}

// decodeData unmarshals the data field of a success envelope into out.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var body struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to unmarshal response: %v (body %s)", err, rec.Body.String())
	}
	if !body.Success {
		t.Fatalf("Expected success envelope, got %s", rec.Body.String())
	}
	if err := json.Unmarshal(body.Data, out); err != nil {
		t.Fatalf("Failed to unmarshal data: %v", err)
	}
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("Failed to unmarshal response: %v (body %s)", err, rec.Body.String())
	}
}
