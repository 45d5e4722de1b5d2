// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package events

import (
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
)

// SchemaVersion is stamped on every published event.
const SchemaVersion = 1

const (
	TopicAuthState      = "auth.state"
	TopicProductCreated = "products.created"
)

// ErrInvalidEvent is returned for events that fail Validate.
var ErrInvalidEvent = errors.New("invalid event")

// AuthStateEvent reports the user behind a session. Present is false when the
// session ended (logout, expiry).
type AuthStateEvent struct {
	SchemaVersion int       `json:"schema_version"`
	SessionID     string    `json:"session_id"`
	Present       bool      `json:"present"`
	UserID        string    `json:"user_id,omitempty"`
	DisplayName   string    `json:"display_name,omitempty"`
	Email         string    `json:"email,omitempty"`
	Reason        string    `json:"reason,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// Validate checks required fields.
func (e *AuthStateEvent) Validate() error {
	if e.SessionID == "" {
		return fmt.Errorf("%w: session_id is required", ErrInvalidEvent)
	}
	if e.Present && e.UserID == "" {
		return fmt.Errorf("%w: user_id is required when present", ErrInvalidEvent)
	}
	return nil
}

// ProductCreatedEvent is published once a product record is persisted.
type ProductCreatedEvent struct {
	SchemaVersion int       `json:"schema_version"`
	ProductID     string    `json:"product_id"`
	Collection    string    `json:"collection"`
	Nombre        string    `json:"nombre"`
	CreatorID     string    `json:"creator_id"`
	ImageURL      string    `json:"image_url,omitempty"`
	Creado        int64     `json:"creado"`
	Timestamp     time.Time `json:"timestamp"`
}

// Validate checks required fields.
func (e *ProductCreatedEvent) Validate() error {
	if e.ProductID == "" {
		return fmt.Errorf("%w: product_id is required", ErrInvalidEvent)
	}
	if e.Collection == "" {
		return fmt.Errorf("%w: collection is required", ErrInvalidEvent)
	}
	return nil
}

// DecodeAuthState unmarshals and validates an auth.state message.
func DecodeAuthState(msg *message.Message) (*AuthStateEvent, error) {
	var ev AuthStateEvent
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		return nil, fmt.Errorf("decode auth state %s: %w", msg.UUID, err)
	}
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	return &ev, nil
}

// DecodeProductCreated unmarshals and validates a products.created message.
func DecodeProductCreated(msg *message.Message) (*ProductCreatedEvent, error) {
	var ev ProductCreatedEvent
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		return nil, fmt.Errorf("decode product created %s: %w", msg.UUID, err)
	}
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	return &ev, nil
}
