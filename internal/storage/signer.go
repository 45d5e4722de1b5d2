// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a download token does not authorize a key.
var ErrInvalidToken = errors.New("invalid download token")

const tokenIssuer = "producthunt-files"

// fileClaims name the object a download token grants.
type fileClaims struct {
	jwt.RegisteredClaims
}

// URLSigner issues and checks download tokens.
type URLSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewURLSigner creates a signer. ttl 0 issues tokens without expiry.
func NewURLSigner(secret string, ttl time.Duration) (*URLSigner, error) {
	if secret == "" {
		return nil, fmt.Errorf("download token secret is required")
	}
	return &URLSigner{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Sign returns a token for key.
func (s *URLSigner) Sign(key string) (string, error) {
	now := s.now()
	claims := fileClaims{RegisteredClaims: jwt.RegisteredClaims{
		Issuer:   tokenIssuer,
		Subject:  key,
		IssuedAt: jwt.NewNumericDate(now),
	}}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign download token: %w", err)
	}
	return token, nil
}

// Verify checks that token was issued by this signer for key.
func (s *URLSigner) Verify(key, token string) error {
	claims := &fileClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Subject != key {
		return ErrInvalidToken
	}
	return nil
}
