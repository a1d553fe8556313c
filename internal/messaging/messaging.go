// Package messaging publishes storefront analytics events.
package messaging

import (
	"context"
	"log/slog"
	"time"
)

// DefaultTopic receives every storefront analytics event.
const DefaultTopic = "storefront.events"

// Publisher defines an interface for publishing events to a message broker.
type Publisher interface {
	PublishEvent(ctx context.Context, topic string, key string, event any) error
	Close() error
}

// Subscriber defines an interface for subscribing to a message topic.
type Subscriber interface {
	Consume(ctx context.Context, topic string, groupID string, handler func(ctx context.Context, payload []byte) error)
}

// DomainEvent is anything an aggregate records.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// Envelope is the wire shape of a published event.
type Envelope struct {
	Type        string    `json:"type"`
	AggregateID string    `json:"aggregateId"`
	OccurredAt  time.Time `json:"occurredAt"`
	Data        any       `json:"data"`
}

// Wrap puts an event in an envelope.
func Wrap(event DomainEvent, at time.Time) Envelope {
	return Envelope{
		Type:        event.EventType(),
		AggregateID: event.AggregateID(),
		OccurredAt:  at,
		Data:        event,
	}
}

// PublishAll publishes events keyed by aggregate id. Analytics are not a
// correctness dependency: failures are logged and the rest still go out.
func PublishAll[E DomainEvent](ctx context.Context, pub Publisher, topic string, logger *slog.Logger, at time.Time, events []E) {
	if pub == nil || len(events) == 0 {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}
	for _, ev := range events {
		if err := pub.PublishEvent(ctx, topic, ev.AggregateID(), Wrap(ev, at)); err != nil {
			logger.Warn("failed to publish event",
				"type", ev.EventType(),
				"aggregate_id", ev.AggregateID(),
				"error", err,
			)
		}
	}
}
