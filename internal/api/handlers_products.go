// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/joseluisng17/producthunt-next-replic/internal/forms"
	"github.com/joseluisng17/producthunt-next-replic/internal/logging"
	"github.com/joseluisng17/producthunt-next-replic/internal/navigation"
	"github.com/joseluisng17/producthunt-next-replic/internal/products"
	"github.com/joseluisng17/producthunt-next-replic/internal/storage"
)

// Multipart field names of the product form.
const (
	ImageField        = "image"
	LastModifiedField = "lastModified"
)

// multipartOverhead is allowed on top of the image limit for the text
// fields and part headers.
const multipartOverhead = 1 << 20

// NewProductPage returns the empty product form, or redirects to /login
// when the browser has no session.
func (h *Handler) NewProductPage(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	redirect := &navigation.Redirect{}
	wf := h.newProductWorkflow(redirect)
	if err := wf.Mount(r.Context(), h.sessions.SessionID(r)); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to read auth state")
		rw.InternalError("Hubo un error al cargar el formulario")
		return
	}
	user := wf.User()
	wf.Unmount()

	if redirect.Write(w, r) {
		return
	}
	state := formState(products.FormName, wf.Engine())
	state.User = user
	rw.Success(state)
}

// CreateProduct submits the product form. The request is multipart with the
// text fields, an optional "image" file part and its "lastModified" time in
// Unix milliseconds.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	ctx := r.Context()
	log := logging.Ctx(ctx)

	redirect := &navigation.Redirect{}
	wf := h.newProductWorkflow(redirect)
	if err := wf.Mount(ctx, h.sessions.SessionID(r)); err != nil {
		log.Error().Err(err).Msg("Failed to read auth state")
		rw.InternalError("Hubo un error al crear el producto")
		return
	}
	defer wf.Unmount()

	// without a session the page has already been sent to /login
	if wf.User() == nil && redirect.Write(w, r) {
		return
	}

	maxBytes := h.maxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			rw.ValidationError(imageMessage(forms.ErrFileTooLarge), imageErrorState(wf, forms.ErrFileTooLarge))
			return
		}
		rw.BadRequest("Formulario inválido")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	applyValues(wf.Engine(), r.PostForm)

	file, err := selectedImage(r, maxBytes)
	if err != nil {
		log.Debug().Err(err).Msg("Rejected selected file")
		rw.ValidationError(imageMessage(err), imageErrorState(wf, err))
		return
	}
	wf.Engine().SelectFile(file)

	result, err := wf.Submit(ctx, formPost{})
	wf.Unmount()

	state := formState(products.FormName, wf.Engine())
	state.User = wf.User()

	var uploadErr *storage.UploadError
	var persistErr *products.PersistError
	switch {
	case errors.Is(err, forms.ErrInvalid):
		rw.ValidationError("El formulario tiene errores", state)
		return
	case errors.Is(err, products.ErrImageRequired):
		rw.ValidationError(state.FormError, state)
		return
	case errors.As(err, &uploadErr):
		rw.ExternalServiceError("storage", state.FormError, err)
		return
	case errors.As(err, &persistErr):
		rw.DatabaseError(state.FormError, err)
		return
	case err != nil:
		log.Error().Err(err).Msg("Product submission failed")
		rw.InternalError(products.FormMessage(err))
		return
	}

	if result.ProductID != "" {
		h.invalidateListing()
		w.Header().Set("X-Product-ID", result.ProductID)
	}
	if !redirect.Write(w, r) {
		rw.Success(result)
	}
}

// selectedImage reads the image part, or returns nil when none was sent.
func selectedImage(r *http.Request, maxBytes int64) (*forms.SelectedFile, error) {
	if r.MultipartForm == nil || len(r.MultipartForm.File[ImageField]) == 0 {
		return nil, nil
	}
	fh := r.MultipartForm.File[ImageField][0]

	lastModified, err := strconv.ParseInt(r.PostFormValue(LastModifiedField), 10, 64)
	if err != nil || lastModified <= 0 {
		lastModified = time.Now().UnixMilli()
	}
	return forms.ReadImage(fh, lastModified, maxBytes)
}

func imageMessage(err error) string {
	switch {
	case errors.Is(err, forms.ErrFileTooLarge):
		return "La imagen es demasiado grande"
	case errors.Is(err, forms.ErrNotImage):
		return "El archivo seleccionado no es una imagen"
	default:
		return "No se pudo leer la imagen"
	}
}

func imageErrorState(wf *products.Workflow, err error) FormState {
	state := formState(products.FormName, wf.Engine())
	state.Errors[ImageField] = imageMessage(err)
	state.User = wf.User()
	return state
}
