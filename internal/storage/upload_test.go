// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package storage

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/joseluisng17/producthunt-next-replic/internal/forms"
)

// fakeStore records calls and fails on demand.
type fakeStore struct {
	mu      sync.Mutex
	puts    []string
	urls    []string
	putErr  error
	urlErr  error
	objects map[string][]byte
}

func (f *fakeStore) Put(_ context.Context, key string, data []byte) (Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts = append(f.puts, key)
	if f.putErr != nil {
		return Handle{}, f.putErr
	}
	if f.objects == nil {
		f.objects = make(map[string][]byte)
	}
	f.objects[key] = data
	return Handle{Key: key}, nil
}

func (f *fakeStore) DownloadURL(_ context.Context, h Handle) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urls = append(f.urls, h.Key)
	if f.urlErr != nil {
		return "", f.urlErr
	}
	return "https://cdn.test/" + h.Key, nil
}

var pngBytes = []byte{
	0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n',
	0, 0, 0, 13, 'I', 'H', 'D', 'R',
	0, 0, 0, 1, 0, 0, 0, 1, 8, 2, 0, 0, 0,
}

func TestKey(t *testing.T) {
	tests := []struct {
		name         string
		file         string
		lastModified int64
		want         string
	}{
		{"typical", "logo.png", 1700000000000, "products/1700000000000logo.png"},
		{"zero time", "a.jpg", 0, "products/0a.jpg"},
		{"spaces kept", "my logo.png", 42, "products/42my logo.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := forms.NewSelectedFile(tt.file, tt.lastModified, pngBytes)
			if got := Key(f); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUploader_Upload(t *testing.T) {
	store := &fakeStore{}
	u := NewUploader(store)

	url, err := u.Upload(context.Background(), forms.NewSelectedFile("logo.png", 1700000000000, pngBytes))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if url != "https://cdn.test/products/1700000000000logo.png" {
		t.Errorf("Upload() = %q", url)
	}
	if len(store.puts) != 1 || len(store.urls) != 1 {
		t.Errorf("calls = put %d url %d, want 1 and 1", len(store.puts), len(store.urls))
	}
}

func TestUploader_NoFile(t *testing.T) {
	store := &fakeStore{}
	u := NewUploader(store)

	if _, err := u.Upload(context.Background(), nil); !errors.Is(err, ErrNoFile) {
		t.Errorf("Upload(nil) error = %v, want ErrNoFile", err)
	}
	if len(store.puts) != 0 {
		t.Error("store called without a file")
	}
}

func TestUploader_Failures(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name   string
		store  *fakeStore
		wantOp string
	}{
		{"put fails", &fakeStore{putErr: boom}, "put"},
		{"url fails", &fakeStore{urlErr: boom}, "url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := NewUploader(tt.store)
			_, err := u.Upload(context.Background(), forms.NewSelectedFile("logo.png", 1, pngBytes))

			var upErr *UploadError
			if !errors.As(err, &upErr) {
				t.Fatalf("error = %v, want *UploadError", err)
			}
			if upErr.Op != tt.wantOp {
				t.Errorf("Op = %q, want %q", upErr.Op, tt.wantOp)
			}
			if upErr.Key != "products/1logo.png" {
				t.Errorf("Key = %q", upErr.Key)
			}
			if !errors.Is(err, boom) {
				t.Error("cause not wrapped")
			}
		})
	}
}

func TestUploader_SameKeyOverwrites(t *testing.T) {
	store := &fakeStore{}
	u := NewUploader(store)
	ctx := context.Background()

	first := forms.NewSelectedFile("logo.png", 5, pngBytes)
	second := forms.NewSelectedFile("logo.png", 5, []byte("other"))
	if _, err := u.Upload(ctx, first); err != nil {
		t.Fatal(err)
	}
	if _, err := u.Upload(ctx, second); err != nil {
		t.Fatal(err)
	}
	if string(store.objects["products/5logo.png"]) != "other" {
		t.Error("second upload did not replace the first")
	}
}
