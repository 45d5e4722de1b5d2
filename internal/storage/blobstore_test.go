// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package storage

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/joseluisng17/producthunt-next-replic/internal/database"
	"github.com/joseluisng17/producthunt-next-replic/internal/forms"
)

func newTestBlobStore(t *testing.T, baseURL string) *BadgerBlobStore {
	t.Helper()
	db, err := database.OpenBadger("", true)
	if err != nil {
		t.Fatalf("OpenBadger() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	signer, err := NewURLSigner("blob-test-secret", 0)
	if err != nil {
		t.Fatal(err)
	}
	return NewBadgerBlobStore(db.Badger(), signer, BlobStoreConfig{BaseURL: baseURL})
}

func tokenFrom(t *testing.T, raw string) (string, string) {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return strings.TrimPrefix(u.EscapedPath(), "/files/"), u.Query().Get("token")
}

func TestBadgerBlobStore_UploadAndOpen(t *testing.T) {
	store := newTestBlobStore(t, "http://localhost:3000/")
	u := NewUploader(store)
	ctx := context.Background()

	raw, err := u.Upload(ctx, forms.NewSelectedFile("my logo.png", 1700000000000, pngBytes))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if !strings.HasPrefix(raw, "http://localhost:3000/files/products/1700000000000my%20logo.png?token=") {
		t.Fatalf("Upload() = %q", raw)
	}

	escaped, token := tokenFrom(t, raw)
	key, err := url.PathUnescape(escaped)
	if err != nil {
		t.Fatal(err)
	}
	obj, err := store.Open(ctx, key, token)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if obj.ContentType != "image/png" {
		t.Errorf("ContentType = %q, want image/png", obj.ContentType)
	}
	if string(obj.Data) != string(pngBytes) || obj.Size != len(pngBytes) {
		t.Error("Open() returned different bytes")
	}
}

func TestBadgerBlobStore_OpenRejectsBadToken(t *testing.T) {
	store := newTestBlobStore(t, "")
	ctx := context.Background()

	if _, err := store.Put(ctx, "products/1a.png", pngBytes); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Open(ctx, "products/1a.png", "bogus"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Open(bad token) = %v, want ErrInvalidToken", err)
	}
}

func TestBadgerBlobStore_OpenMissing(t *testing.T) {
	store := newTestBlobStore(t, "")
	token, _ := store.signer.Sign("products/ghost.png")
	if _, err := store.Open(context.Background(), "products/ghost.png", token); !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("Open(missing) = %v, want ErrObjectNotFound", err)
	}
}

func TestBadgerBlobStore_InvalidKeys(t *testing.T) {
	store := newTestBlobStore(t, "")
	for _, key := range []string{"", "/abs.png", "products//x.png", "products/../secret", "./x"} {
		if _, err := store.Put(context.Background(), key, pngBytes); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("Put(%q) = %v, want ErrInvalidKey", key, err)
		}
	}
}

func TestFilePath(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"products/1a.png", "/files/products/1a.png"},
		{"products/1my logo.png", "/files/products/1my%20logo.png"},
		{"products/1a?b.png", "/files/products/1a%3Fb.png"},
	}
	for _, tt := range tests {
		if got := FilePath(tt.key); got != tt.want {
			t.Errorf("FilePath(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
