// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package forms

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	// ErrNotImage is returned when a selected file is not an image.
	ErrNotImage = errors.New("selected file is not an image")

	// ErrFileTooLarge is returned when a selected file exceeds the upload limit.
	ErrFileTooLarge = errors.New("selected file is too large")
)

// SelectedFile is a file picked in a file input.
type SelectedFile struct {
	Name string

	// LastModified is the file's modification time in Unix milliseconds, as
	// reported by the browser.
	LastModified int64

	// ContentType is sniffed from Data, never taken from the client.
	ContentType string

	Data []byte
}

// Size returns the content length in bytes.
func (f *SelectedFile) Size() int {
	return len(f.Data)
}

// NewSelectedFile sniffs the content type of data.
func NewSelectedFile(name string, lastModified int64, data []byte) *SelectedFile {
	return &SelectedFile{
		Name:         name,
		LastModified: lastModified,
		ContentType:  mimetype.Detect(data).String(),
		Data:         data,
	}
}

// IsImage reports whether the sniffed type is image/*.
func (f *SelectedFile) IsImage() bool {
	return strings.HasPrefix(f.ContentType, "image/")
}

// ReadImage reads a multipart file part into a SelectedFile, rejecting
// anything over maxBytes or not sniffed as an image.
func ReadImage(fh *multipart.FileHeader, lastModified int64, maxBytes int64) (*SelectedFile, error) {
	if fh.Size > maxBytes {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrFileTooLarge, fh.Size, maxBytes)
	}
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: limit %d", ErrFileTooLarge, maxBytes)
	}

	f := NewSelectedFile(fh.Filename, lastModified, data)
	if !f.IsImage() {
		return nil, fmt.Errorf("%w: %s", ErrNotImage, f.ContentType)
	}
	return f, nil
}
