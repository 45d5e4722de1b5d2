// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/joseluisng17/producthunt-next-replic/internal/forms"
	"github.com/joseluisng17/producthunt-next-replic/internal/logging"
)

// KeyPrefix is prepended to every uploaded product image key.
const KeyPrefix = "products/"

// ErrNoFile is returned by Upload when no file was selected.
var ErrNoFile = errors.New("no file selected")

// Handle identifies a stored object.
type Handle struct {
	Key string
}

// ObjectStore is the object storage collaborator.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte) (Handle, error)
	DownloadURL(ctx context.Context, h Handle) (string, error)
}

// UploadError reports which step of an upload failed.
type UploadError struct {
	Key string
	Op  string // "put" or "url"
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s: %s failed: %v", e.Key, e.Op, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// Key returns the object key for f.
func Key(f *forms.SelectedFile) string {
	return KeyPrefix + strconv.FormatInt(f.LastModified, 10) + f.Name
}

// Uploader stores selected files and resolves their URLs.
type Uploader struct {
	store ObjectStore
}

// NewUploader creates an Uploader over store.
func NewUploader(store ObjectStore) *Uploader {
	return &Uploader{store: store}
}

// Upload stores f and returns its download URL. It does not retry.
func (u *Uploader) Upload(ctx context.Context, f *forms.SelectedFile) (string, error) {
	if f == nil {
		return "", ErrNoFile
	}
	key := Key(f)
	start := time.Now()

	handle, err := u.store.Put(ctx, key, f.Data)
	if err != nil {
		return "", &UploadError{Key: key, Op: "put", Err: err}
	}
	url, err := u.store.DownloadURL(ctx, handle)
	if err != nil {
		return "", &UploadError{Key: key, Op: "url", Err: err}
	}

	logging.Ctx(ctx).Debug().Str("key", key).Int("bytes", f.Size()).
		Dur("duration", time.Since(start)).Msg("File uploaded")
	return url, nil
}
