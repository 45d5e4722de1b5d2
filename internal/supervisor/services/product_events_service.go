// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/rs/zerolog"

	"github.com/joseluisng17/producthunt-next-replic/internal/events"
	"github.com/joseluisng17/producthunt-next-replic/internal/logging"
	"github.com/joseluisng17/producthunt-next-replic/internal/metrics"
)

// RouterFactory builds event routers. Satisfied by *events.Bus.
type RouterFactory interface {
	NewRouter(cfg events.RouterConfig) (*events.Router, error)
}

// ProductHandler is called for every decoded products.created event.
type ProductHandler func(ctx context.Context, ev *events.ProductCreatedEvent) error

// ProductEventsService consumes products.created and records an audit log
// line per new product. Extra handlers can be chained with OnProduct.
// Events whose handlers keep failing end up on the poison topic, which the
// service also consumes to log and count them.
type ProductEventsService struct {
	bus      RouterFactory
	config   events.RouterConfig
	handlers []ProductHandler
	logger   zerolog.Logger
}

// NewProductEventsService creates the consumer.
func NewProductEventsService(bus RouterFactory, cfg events.RouterConfig) *ProductEventsService {
	return &ProductEventsService{
		bus:    bus,
		config: cfg,
		logger: logging.WithComponent("product-events"),
	}
}

// OnProduct registers h. Must be called before Serve.
func (s *ProductEventsService) OnProduct(h ProductHandler) {
	s.handlers = append(s.handlers, h)
}

// Serve implements suture.Service. Each call runs a fresh router. It returns
// an error when the router stops while ctx is still live, so the supervisor
// starts a new one.
func (s *ProductEventsService) Serve(ctx context.Context) error {
	r, err := s.bus.NewRouter(s.config)
	if err != nil {
		return err
	}
	r.AddConsumer("product-created", events.TopicProductCreated, s.handle)
	if s.config.PoisonTopic != "" {
		r.AddConsumer("poisoned-events", s.config.PoisonTopic, s.handlePoisoned)
	}

	if err := r.Run(ctx); err != nil {
		return fmt.Errorf("run event router: %w", err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return errors.New("event router stopped")
}

// handle drops malformed events. Handler errors are returned so the router
// retries the event.
func (s *ProductEventsService) handle(msg *message.Message) error {
	metrics.RecordEventConsumed(events.TopicProductCreated)

	ev, err := events.DecodeProductCreated(msg)
	if err != nil {
		s.logger.Warn().Err(err).Str("message_id", msg.UUID).Msg("Dropping malformed product event")
		return nil
	}

	s.logger.Info().
		Str("product_id", ev.ProductID).
		Str("collection", ev.Collection).
		Str("nombre", ev.Nombre).
		Str("creator_id", ev.CreatorID).
		Str("correlation_id", msg.Metadata.Get("correlation_id")).
		Msg("Product created")

	var errs []error
	for _, h := range s.handlers {
		if err := h(msg.Context(), ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *ProductEventsService) handlePoisoned(msg *message.Message) error {
	topic := msg.Metadata.Get(middleware.PoisonedTopicKey)
	metrics.RecordEventPoisoned(topic)
	s.logger.Error().
		Str("message_id", msg.UUID).
		Str("topic", topic).
		Str("handler", msg.Metadata.Get(middleware.PoisonedHandlerKey)).
		Str("reason", msg.Metadata.Get(middleware.ReasonForPoisonedKey)).
		Msg("Event moved to poison queue")
	return nil
}

// String implements fmt.Stringer.
func (s *ProductEventsService) String() string {
	return "product-events"
}
