// Package persist runs a cart mutation as load, change, save and publish,
// retrying when another request saved the same cart first.
package persist

import (
	"context"
	"errors"
	"log/slog"

	"github.com/light-bringer/storefront-service/internal/app/cart/contracts"
	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/messaging"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
	"github.com/light-bringer/storefront-service/internal/pkg/committer"
)

// MaxAttempts bounds retries after version conflicts.
const MaxAttempts = 3

// Mutator applies changes to carts.
type Mutator struct {
	store     contracts.CartStore
	publisher messaging.Publisher
	topic     string
	clock     clock.Clock
	logger    *slog.Logger
}

// NewMutator creates a Mutator. publisher may be nil.
func NewMutator(store contracts.CartStore, publisher messaging.Publisher, topic string, clk clock.Clock, logger *slog.Logger) *Mutator {
	if topic == "" {
		topic = messaging.DefaultTopic
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Mutator{
		store:     store,
		publisher: publisher,
		topic:     topic,
		clock:     clk,
		logger:    logger,
	}
}

// Store exposes the underlying cart store for reads.
func (m *Mutator) Store() contracts.CartStore {
	return m.store
}

// Mutate loads the cart, applies fn and saves. fn may run more than once and
// must not have side effects outside the cart. Events are published after
// the save succeeds.
func (m *Mutator) Mutate(ctx context.Context, cartID string, fn func(cart *domain.Cart) error) (*domain.Cart, error) {
	var lastErr error
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		cart, err := m.store.Load(ctx, cartID)
		if err != nil {
			return nil, err
		}
		if err := fn(cart); err != nil {
			return nil, err
		}

		events := cart.DomainEvents()
		err = m.store.Save(ctx, cart)
		if err == nil {
			messaging.PublishAll(ctx, m.publisher, m.topic, m.logger, m.clock.Now(), events)
			cart.ClearEvents()
			return cart, nil
		}
		if !errors.Is(err, committer.ErrVersionConflict) {
			return nil, err
		}
		lastErr = err
		m.logger.Debug("cart version conflict, retrying", "cart_id", cartID, "attempt", attempt)
	}
	return nil, lastErr
}
