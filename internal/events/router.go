// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package events

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"

	"github.com/joseluisng17/producthunt-next-replic/internal/cache"
	"github.com/joseluisng17/producthunt-next-replic/internal/logging"
)

// TopicPoison receives events whose handler failed after every retry.
const TopicPoison = "events.poison"

// dedupCapacity bounds the set of recently handled message IDs.
const dedupCapacity = 10000

// RouterConfig configures a Router.
type RouterConfig struct {
	// CloseTimeout is how long Close waits for in-flight handlers.
	CloseTimeout time.Duration

	RetryMaxRetries      int
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
	RetryMultiplier      float64

	// PoisonTopic is where failed events are republished. Empty disables it.
	PoisonTopic string

	// DeduplicationTTL is how long a handled message ID is remembered.
	// Zero disables deduplication.
	DeduplicationTTL time.Duration
}

// DefaultRouterConfig returns the configuration used by the server.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		CloseTimeout:         10 * time.Second,
		RetryMaxRetries:      3,
		RetryInitialInterval: 100 * time.Millisecond,
		RetryMaxInterval:     2 * time.Second,
		RetryMultiplier:      2.0,
		PoisonTopic:          TopicPoison,
		DeduplicationTTL:     5 * time.Minute,
	}
}

// Router runs consumer handlers over the bus with panic recovery, retry,
// deduplication and a poison queue. A Router runs once; build a new one to
// restart consumption.
type Router struct {
	router *message.Router
	sub    message.Subscriber
}

// seenMessages implements middleware.ExpiringKeyRepository. Keys are scoped
// by handler name, since a poisoned copy keeps the original UUID.
type seenMessages struct {
	lru *cache.LRU[struct{}]
}

func (s seenMessages) IsDuplicate(_ context.Context, key string) (bool, error) {
	return !s.lru.SetIfAbsent(key, struct{}{}), nil
}

// routerSubscriber hands the bus to the watermill router. The router closes
// its subscribers on shutdown, so Close must leave the shared bus open.
type routerSubscriber struct {
	bus *Bus
}

func (s routerSubscriber) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return s.bus.Subscribe(ctx, topic)
}

func (s routerSubscriber) Close() error { return nil }

// NewRouter creates a router consuming from bus.
//
// Middleware runs outermost first: poison queue, deduplication, retry, panic
// recovery. A retried message is therefore never seen as a duplicate.
func (b *Bus) NewRouter(cfg RouterConfig) (*Router, error) {
	logger := watermill.NewSlogLogger(logging.NewSlogLogger())

	wm, err := message.NewRouter(message.RouterConfig{CloseTimeout: cfg.CloseTimeout}, logger)
	if err != nil {
		return nil, fmt.Errorf("create event router: %w", err)
	}

	if cfg.PoisonTopic != "" {
		poison, err := middleware.PoisonQueue(b.pubsub, cfg.PoisonTopic)
		if err != nil {
			return nil, fmt.Errorf("create poison queue middleware: %w", err)
		}
		wm.AddMiddleware(poison)
	}

	if cfg.DeduplicationTTL > 0 {
		dedup := middleware.Deduplicator{
			KeyFactory: func(msg *message.Message) (string, error) {
				return message.HandlerNameFromCtx(msg.Context()) + "/" + msg.UUID, nil
			},
			Repository: seenMessages{lru: cache.NewLRU[struct{}]("event-dedup", dedupCapacity, cfg.DeduplicationTTL)},
		}
		wm.AddMiddleware(dedup.Middleware)
	}

	retry := middleware.Retry{
		MaxRetries:      cfg.RetryMaxRetries,
		InitialInterval: cfg.RetryInitialInterval,
		MaxInterval:     cfg.RetryMaxInterval,
		Multiplier:      cfg.RetryMultiplier,
		Logger:          logger,
	}
	wm.AddMiddleware(retry.Middleware)
	wm.AddMiddleware(middleware.Recoverer)

	return &Router{router: wm, sub: routerSubscriber{bus: b}}, nil
}

// AddConsumer registers a handler for topic. A nil return acks the message;
// an error triggers retry and finally the poison queue.
func (r *Router) AddConsumer(name, topic string, handler message.NoPublishHandlerFunc) {
	r.router.AddConsumerHandler(name, topic, r.sub, handler)
}

// Run subscribes every handler and blocks until ctx is cancelled, Close is
// called, or every handler's stream has ended.
func (r *Router) Run(ctx context.Context) error {
	return r.router.Run(ctx)
}

// Running is closed once every handler is subscribed.
func (r *Router) Running() <-chan struct{} {
	return r.router.Running()
}

// Close stops the router, waiting up to CloseTimeout for in-flight handlers.
func (r *Router) Close() error {
	return r.router.Close()
}
