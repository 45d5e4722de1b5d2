// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gabriel-vasile/mimetype"
	"github.com/goccy/go-json"

	"github.com/joseluisng17/producthunt-next-replic/internal/metrics"
	"github.com/joseluisng17/producthunt-next-replic/internal/resilience"
)

const (
	blobKeyPrefix = "blob:"
	metaKeyPrefix = "blobmeta:"
)

var (
	// ErrObjectNotFound is returned by Open for a missing key.
	ErrObjectNotFound = errors.New("object not found")

	// ErrInvalidKey is returned for empty keys or keys with empty path segments.
	ErrInvalidKey = errors.New("invalid object key")
)

// ObjectInfo is stored next to each object.
type ObjectInfo struct {
	Key         string    `json:"key"`
	ContentType string    `json:"content_type"`
	Size        int       `json:"size"`
	StoredAt    time.Time `json:"stored_at"`
}

// Object is a stored object with its metadata.
type Object struct {
	ObjectInfo
	Data []byte
}

// BlobStoreConfig configures a BadgerBlobStore.
type BlobStoreConfig struct {
	// BaseURL prefixes download URLs. Empty yields host-relative URLs.
	BaseURL string

	// Breaker guards Put. Nil disables it.
	Breaker *resilience.Breaker
}

// BadgerBlobStore keeps objects in Badger and serves them through signed URLs.
type BadgerBlobStore struct {
	db      *badger.DB
	signer  *URLSigner
	baseURL string
	breaker *resilience.Breaker
}

// NewBadgerBlobStore creates a store over db.
func NewBadgerBlobStore(db *badger.DB, signer *URLSigner, cfg BlobStoreConfig) *BadgerBlobStore {
	return &BadgerBlobStore{
		db:      db,
		signer:  signer,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		breaker: cfg.Breaker,
	}
}

func validateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
	}
	return nil
}

// Put stores data under key, replacing any previous object.
func (s *BadgerBlobStore) Put(ctx context.Context, key string, data []byte) (Handle, error) {
	if err := validateKey(key); err != nil {
		return Handle{}, err
	}
	info := ObjectInfo{
		Key:         key,
		ContentType: mimetype.Detect(data).String(),
		Size:        len(data),
		StoredAt:    time.Now().UTC(),
	}
	meta, err := json.Marshal(info)
	if err != nil {
		return Handle{}, fmt.Errorf("marshal object info: %w", err)
	}

	start := time.Now()
	write := func() (struct{}, error) {
		if err := ctx.Err(); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, s.db.Update(func(txn *badger.Txn) error {
			if err := txn.Set([]byte(blobKeyPrefix+key), data); err != nil {
				return fmt.Errorf("set object: %w", err)
			}
			return txn.Set([]byte(metaKeyPrefix+key), meta)
		})
	}
	if s.breaker != nil {
		_, err = resilience.Execute(s.breaker, write)
	} else {
		_, err = write()
	}
	metrics.RecordStorageOperation("put", time.Since(start), err)
	if err != nil {
		return Handle{}, err
	}
	metrics.RecordUploadBytes(len(data))
	return Handle{Key: key}, nil
}

// DownloadURL returns a signed URL for the object behind h.
func (s *BadgerBlobStore) DownloadURL(ctx context.Context, h Handle) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	start := time.Now()
	token, err := s.signer.Sign(h.Key)
	metrics.RecordStorageOperation("url", time.Since(start), err)
	if err != nil {
		return "", err
	}
	return s.baseURL + FilePath(h.Key) + "?token=" + url.QueryEscape(token), nil
}

// FilePath returns the escaped /files/ path for key.
func FilePath(key string) string {
	segs := strings.Split(key, "/")
	for i, seg := range segs {
		segs[i] = url.PathEscape(seg)
	}
	return "/files/" + strings.Join(segs, "/")
}

// Open returns the object stored under key after checking token.
func (s *BadgerBlobStore) Open(ctx context.Context, key, token string) (*Object, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	if err := s.signer.Verify(key, token); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	obj := &Object{}
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(metaKeyPrefix + key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrObjectNotFound
		}
		if err != nil {
			return err
		}
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &obj.ObjectInfo)
		}); err != nil {
			return err
		}

		item, err = txn.Get([]byte(blobKeyPrefix + key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrObjectNotFound
		}
		if err != nil {
			return err
		}
		obj.Data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, ErrObjectNotFound) {
		return nil, err
	}
	metrics.RecordStorageOperation("get", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("open object %s: %w", key, err)
	}
	return obj, nil
}
