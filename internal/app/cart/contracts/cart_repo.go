package contracts

import (
	"context"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
)

// CartRepository persists carts in Spanner.
// Repositories return mutations, they don't apply them (Golden Mutation Pattern).
type CartRepository interface {
	// SaveMuts creates the mutations for the cart's dirty parts
	SaveMuts(cart *domain.Cart) ([]*spanner.Mutation, error)

	// DeleteMut removes a cart and, by cascade, its items
	DeleteMut(cartID string) *spanner.Mutation

	// GetByID loads a cart with its items
	GetByID(ctx context.Context, cartID string) (*domain.Cart, error)

	// ListStale returns ids of carts not updated since before
	ListStale(ctx context.Context, before time.Time, limit int) ([]string, error)

	// CountStale counts carts not updated since before
	CountStale(ctx context.Context, before time.Time) (int64, error)
}

// CartCache is a best-effort snapshot cache in front of the repository.
type CartCache interface {
	Get(ctx context.Context, cartID string) (*domain.Snapshot, error)
	Set(ctx context.Context, snapshot domain.Snapshot) error
	Delete(ctx context.Context, cartID string) error
}

// CartStore is the explicit cart handle given to use cases.
type CartStore interface {
	// Load returns the stored cart, or a new empty one when none exists
	Load(ctx context.Context, cartID string) (*domain.Cart, error)

	// Save persists the cart's changes and marks it committed.
	// Returns committer.ErrVersionConflict when the cart changed underneath.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes the cart entirely
	Delete(ctx context.Context, cartID string) error
}
