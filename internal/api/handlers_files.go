// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package api

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"
	"path"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/joseluisng17/producthunt-next-replic/internal/logging"
	"github.com/joseluisng17/producthunt-next-replic/internal/storage"
)

// File serves an uploaded object when ?token= is a valid download token for
// its key.
func (h *Handler) File(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	key := chi.URLParam(r, "*")
	// chi matches on RawPath when the path needed escaping
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(key); err == nil {
			key = unescaped
		}
	}

	obj, err := h.blobs.Open(r.Context(), key, r.URL.Query().Get("token"))
	switch {
	case errors.Is(err, storage.ErrInvalidKey):
		rw.BadRequest("Ruta de archivo inválida")
		return
	case errors.Is(err, storage.ErrInvalidToken):
		rw.Forbidden("Enlace de descarga inválido o expirado")
		return
	case errors.Is(err, storage.ErrObjectNotFound):
		rw.NotFound("Archivo no encontrado")
		return
	case err != nil:
		logging.Ctx(r.Context()).Error().Err(err).Str("key", key).Msg("Failed to open stored file")
		rw.InternalError("No se pudo leer el archivo")
		return
	}

	w.Header().Set("Content-Type", obj.ContentType)
	w.Header().Set("Cache-Control", "private, max-age="+strconv.Itoa(3600))
	http.ServeContent(w, r, path.Base(obj.Key), obj.StoredAt, bytes.NewReader(obj.Data))
}
