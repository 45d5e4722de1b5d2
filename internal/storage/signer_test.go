// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package storage

import (
	"errors"
	"testing"
	"time"
)

func TestNewURLSigner_RequiresSecret(t *testing.T) {
	if _, err := NewURLSigner("", 0); err == nil {
		t.Error("NewURLSigner(\"\") error = nil")
	}
}

func TestURLSigner_RoundTrip(t *testing.T) {
	s, err := NewURLSigner("test-secret-that-is-long-enough", 0)
	if err != nil {
		t.Fatal(err)
	}
	token, err := s.Sign("products/1logo.png")
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	if err := s.Verify("products/1logo.png", token); err != nil {
		t.Errorf("Verify() error = %v", err)
	}
}

func TestURLSigner_Rejects(t *testing.T) {
	s, _ := NewURLSigner("secret-a", 0)
	other, _ := NewURLSigner("secret-b", 0)
	token, _ := s.Sign("products/1logo.png")

	tests := []struct {
		name   string
		signer *URLSigner
		key    string
		token  string
	}{
		{"other key", s, "products/2logo.png", token},
		{"other secret", other, "products/1logo.png", token},
		{"garbage", s, "products/1logo.png", "not-a-token"},
		{"empty", s, "products/1logo.png", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.signer.Verify(tt.key, tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Verify() = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestURLSigner_Expiry(t *testing.T) {
	s, _ := NewURLSigner("secret", time.Minute)
	base := time.Now()
	s.now = func() time.Time { return base }

	token, err := s.Sign("products/1a.png")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Verify("products/1a.png", token); err != nil {
		t.Fatalf("Verify() before expiry = %v", err)
	}

	s.now = func() time.Time { return base.Add(2 * time.Minute) }
	if err := s.Verify("products/1a.png", token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() after expiry = %v, want ErrInvalidToken", err)
	}
}
