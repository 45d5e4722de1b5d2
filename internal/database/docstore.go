// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package database

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/joseluisng17/producthunt-next-replic/internal/metrics"
	"github.com/joseluisng17/producthunt-next-replic/internal/resilience"
)

const docKeyPrefix = "doc:"

var (
	// ErrNotFound is returned by Get for a missing document.
	ErrNotFound = errors.New("document not found")

	// ErrInvalidCollection is returned for empty names or names containing ':'.
	ErrInvalidCollection = errors.New("invalid collection name")
)

// Document is a stored document with its ID.
type Document struct {
	ID   string
	Data json.RawMessage
}

// Decode unmarshals the document into out.
func (d Document) Decode(out interface{}) error {
	return json.Unmarshal(d.Data, out)
}

// DocStoreConfig configures a DocStore.
type DocStoreConfig struct {
	// Breaker guards writes. Nil disables it.
	Breaker *resilience.Breaker
}

// DocStore stores JSON documents in collections.
type DocStore struct {
	db      *DB
	breaker *resilience.Breaker
}

// NewDocStore creates a store over db.
func NewDocStore(db *DB, cfg DocStoreConfig) *DocStore {
	return &DocStore{db: db, breaker: cfg.Breaker}
}

func validateCollection(collection string) error {
	if collection == "" || strings.Contains(collection, ":") {
		return fmt.Errorf("%w: %q", ErrInvalidCollection, collection)
	}
	return nil
}

func docKey(collection, id string) []byte {
	return []byte(docKeyPrefix + collection + ":" + id)
}

func collectionPrefix(collection string) []byte {
	return []byte(docKeyPrefix + collection + ":")
}

// Insert stores record as JSON under a new ID and returns the ID.
func (s *DocStore) Insert(ctx context.Context, collection string, record interface{}) (string, error) {
	if err := validateCollection(collection); err != nil {
		return "", err
	}
	data, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate document id: %w", err)
	}

	start := time.Now()
	write := func() (struct{}, error) {
		if err := ctx.Err(); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, s.db.badger.Update(func(txn *badger.Txn) error {
			return txn.Set(docKey(collection, id.String()), data)
		})
	}
	if s.breaker != nil {
		_, err = resilience.Execute(s.breaker, write)
	} else {
		_, err = write()
	}
	metrics.RecordDBOperation("insert", collection, time.Since(start), err)
	if err != nil {
		return "", fmt.Errorf("insert into %s: %w", collection, err)
	}
	return id.String(), nil
}

// Get loads one document into out.
func (s *DocStore) Get(ctx context.Context, collection, id string, out interface{}) error {
	if err := validateCollection(collection); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	err := s.db.badger.View(func(txn *badger.Txn) error {
		item, err := txn.Get(docKey(collection, id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, out)
		})
	})
	if errors.Is(err, ErrNotFound) {
		metrics.RecordDBOperation("get", collection, time.Since(start), nil)
		return err
	}
	metrics.RecordDBOperation("get", collection, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return nil
}

// List returns up to limit documents, newest first. limit <= 0 means all.
func (s *DocStore) List(ctx context.Context, collection string, limit int) ([]Document, error) {
	if err := validateCollection(collection); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := collectionPrefix(collection)
	// Seeking in reverse starts at the last key <= the seek key.
	seek := append(bytes.Clone(prefix), 0xFF)

	start := time.Now()
	var docs []Document
	err := s.db.badger.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(docs) >= limit {
				break
			}
			item := it.Item()
			data, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			docs = append(docs, Document{
				ID:   string(item.Key()[len(prefix):]),
				Data: data,
			})
		}
		return nil
	})
	metrics.RecordDBOperation("list", collection, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	return docs, nil
}

// Count returns the number of documents in collection.
func (s *DocStore) Count(ctx context.Context, collection string) (int, error) {
	if err := validateCollection(collection); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	prefix := collectionPrefix(collection)
	n := 0
	err := s.db.badger.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.ValidForPrefix(prefix); it.Next() {
			n++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	return n, nil
}
