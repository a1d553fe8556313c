// Package carttest provides in-memory cart infrastructure for tests.
package carttest

import (
	"context"
	"sync"

	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
	"github.com/light-bringer/storefront-service/internal/pkg/committer"
)

// Store is an in-memory CartStore with the same version semantics as the
// Spanner-backed one.
type Store struct {
	mu    sync.Mutex
	carts map[string]domain.Snapshot
	clock clock.Clock

	// SaveErr, when set, is returned by the next Save.
	SaveErr error
	Saves   int
}

func NewStore(clk clock.Clock) *Store {
	return &Store{
		carts: make(map[string]domain.Snapshot),
		clock: clk,
	}
}

func (s *Store) Load(_ context.Context, cartID string) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok := s.carts[cartID]
	if !ok {
		return domain.NewCart(cartID, s.clock), nil
	}
	return domain.FromSnapshot(snap, s.clock), nil
}

func (s *Store) Save(_ context.Context, cart *domain.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.SaveErr; err != nil {
		s.SaveErr = nil
		return err
	}
	if !cart.Changes().HasChanges() {
		return nil
	}
	if stored, ok := s.carts[cart.ID()]; ok && stored.Version != cart.Version() {
		return committer.ErrVersionConflict
	}
	if _, ok := s.carts[cart.ID()]; !ok && cart.Version() != 0 {
		return committer.ErrVersionConflict
	}

	cart.MarkCommitted()
	s.carts[cart.ID()] = cart.Snapshot()
	s.Saves++
	return nil
}

func (s *Store) Delete(_ context.Context, cartID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, cartID)
	return nil
}

// Put stores a cart directly, bypassing version checks.
func (s *Store) Put(cart *domain.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := cart.Snapshot()
	if snap.Version == 0 {
		snap.Version = 1
	}
	s.carts[cart.ID()] = snap
}

// Get returns the stored snapshot.
func (s *Store) Get(cartID string) (domain.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.carts[cartID]
	return snap, ok
}
