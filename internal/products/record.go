// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package products

import (
	"context"
	"fmt"
	"time"

	"github.com/joseluisng17/producthunt-next-replic/internal/auth"
	"github.com/joseluisng17/producthunt-next-replic/internal/database"
	"github.com/joseluisng17/producthunt-next-replic/internal/forms"
)

// Creator identifies who submitted a product.
type Creator struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
}

// Comment is an entry of Record.Comentarios.
type Comment struct {
	UsuarioID string `json:"usuarioId"`
	Nombre    string `json:"usuarioNombre"`
	Mensaje   string `json:"mensaje"`
}

// Record is a product document.
type Record struct {
	Nombre      string    `json:"nombre"`
	Empresa     string    `json:"empresa"`
	URL         string    `json:"url"`
	URLImagen   string    `json:"urlimagen"`
	Descripcion string    `json:"descripcion"`
	Votos       int       `json:"votos"`
	Comentarios []Comment `json:"comentarios"`
	Creado      int64     `json:"creado"`
	Creador     Creator   `json:"creador"`
	HaVotado    []string  `json:"haVotado"`
}

// NewRecord assembles a fresh record from validated form values, which are
// stored as given. The lists start empty and serialize as [].
func NewRecord(values forms.Values, imageURL string, creator *auth.User, now time.Time) Record {
	return Record{
		Nombre:      values["nombre"],
		Empresa:     values["empresa"],
		URL:         values["url"],
		URLImagen:   imageURL,
		Descripcion: values["descripcion"],
		Votos:       0,
		Comentarios: []Comment{},
		Creado:      now.UnixMilli(),
		Creador:     Creator{ID: creator.ID, Nombre: creator.DisplayName},
		HaVotado:    []string{},
	}
}

// Product is a stored record with its document ID.
type Product struct {
	ID string `json:"id"`
	Record
}

// Lister reads a collection newest first.
type Lister interface {
	List(ctx context.Context, collection string, limit int) ([]database.Document, error)
}

// List returns up to limit products of collection, newest first.
// limit <= 0 returns all of them.
func List(ctx context.Context, db Lister, collection string, limit int) ([]Product, error) {
	docs, err := db.List(ctx, collection, limit)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	out := make([]Product, 0, len(docs))
	for _, doc := range docs {
		p := Product{ID: doc.ID}
		if err := doc.Decode(&p.Record); err != nil {
			return nil, fmt.Errorf("decode product %s: %w", doc.ID, err)
		}
		if p.Comentarios == nil {
			p.Comentarios = []Comment{}
		}
		if p.HaVotado == nil {
			p.HaVotado = []string{}
		}
		out = append(out, p)
	}
	return out, nil
}
