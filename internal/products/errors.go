// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package products

import (
	"errors"
	"fmt"

	"github.com/joseluisng17/producthunt-next-replic/internal/storage"
)

var (
	// ErrImageRequired is returned by Submit when no file was selected and
	// an image is required.
	ErrImageRequired = errors.New("product image is required")

	// ErrAlreadyMounted is returned by a second Mount.
	ErrAlreadyMounted = errors.New("workflow already mounted")
)

// PersistError reports a failed insert of a product record.
type PersistError struct {
	Collection string
	Err        error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("insert into %s: %v", e.Collection, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// FormMessage returns the form-level message shown for a failed submission.
func FormMessage(err error) string {
	var upErr *storage.UploadError
	var persistErr *PersistError
	switch {
	case errors.Is(err, ErrImageRequired):
		return "Selecciona una imagen para tu producto"
	case errors.Is(err, storage.ErrNoFile):
		return "Selecciona una imagen para tu producto"
	case errors.As(err, &upErr):
		return "Hubo un error al subir la imagen, intenta de nuevo"
	case errors.As(err, &persistErr):
		return "Hubo un error al guardar el producto, intenta de nuevo"
	default:
		return "Hubo un error al crear el producto"
	}
}
