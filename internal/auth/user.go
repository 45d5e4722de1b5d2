// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	userKeyPrefix      = "user:"
	userEmailKeyPrefix = "user_email:"

	// DefaultBcryptCost is used for stored password hashes.
	DefaultBcryptCost = 12
)

// User is an account as seen by the rest of the application.
type User struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
}

// userRecord is the persisted form of a User.
type userRecord struct {
	User
	PasswordHash []byte `json:"password_hash"`
}

// UserStoreConfig configures a UserStore.
type UserStoreConfig struct {
	// BcryptCost defaults to DefaultBcryptCost.
	BcryptCost int
}

// UserStore keeps accounts in Badger, indexed by ID and by lowercased email.
type UserStore struct {
	db   *badger.DB
	cost int
}

// NewUserStore creates a store over db.
func NewUserStore(db *badger.DB, cfg UserStoreConfig) *UserStore {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	return &UserStore{db: db, cost: cost}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create stores a new account. The password policy is the caller's concern.
func (s *UserStore) Create(ctx context.Context, email, displayName, password string) (*User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if password == "" {
		return nil, fmt.Errorf("password is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	rec := userRecord{
		User: User{
			ID:          uuid.NewString(),
			DisplayName: strings.TrimSpace(displayName),
			Email:       email,
			CreatedAt:   time.Now().UTC(),
		},
		PasswordHash: hash,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal user: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		emailKey := []byte(userEmailKeyPrefix + email)
		if _, err := txn.Get(emailKey); err == nil {
			return ErrUserExists
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if err := txn.Set([]byte(userKeyPrefix+rec.ID), data); err != nil {
			return fmt.Errorf("set user: %w", err)
		}
		return txn.Set(emailKey, []byte(rec.ID))
	})
	if err != nil {
		return nil, err
	}
	u := rec.User
	return &u, nil
}

func (s *UserStore) getRecord(txn *badger.Txn, id string) (*userRecord, error) {
	item, err := txn.Get([]byte(userKeyPrefix + id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	var rec userRecord
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &rec)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	return &rec, nil
}

func (s *UserStore) getRecordByEmail(email string) (*userRecord, error) {
	var rec *userRecord
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(userEmailKeyPrefix + normalizeEmail(email)))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("get user email index: %w", err)
		}
		id, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		rec, err = s.getRecord(txn, string(id))
		return err
	})
	return rec, err
}

// GetByID returns the account with the given ID.
func (s *UserStore) GetByID(ctx context.Context, id string) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rec *userRecord
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		rec, err = s.getRecord(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	u := rec.User
	return &u, nil
}

// GetByEmail returns the account registered under email.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rec, err := s.getRecordByEmail(email)
	if err != nil {
		return nil, err
	}
	u := rec.User
	return &u, nil
}

// Authenticate checks email and password.
// Returns ErrUserNotFound or ErrInvalidCredentials on failure.
func (s *UserStore) Authenticate(ctx context.Context, email, password string) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rec, err := s.getRecordByEmail(email)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword(rec.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	u := rec.User
	return &u, nil
}

// List returns every account ordered by email.
func (s *UserStore) List(ctx context.Context) ([]*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var users []*User
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(userEmailKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			id, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			rec, err := s.getRecord(txn, string(id))
			if err != nil {
				continue // index entry without a record
			}
			u := rec.User
			users = append(users, &u)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
