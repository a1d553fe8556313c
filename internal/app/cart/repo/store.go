package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/spanner"
	"golang.org/x/sync/singleflight"

	"github.com/light-bringer/storefront-service/internal/app/cart/contracts"
	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/models/m_cart"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
	"github.com/light-bringer/storefront-service/internal/pkg/committer"
)

// Store is the CartStore backed by Spanner with a Redis read-through cache.
// Cache failures are logged and never fail a request.
type Store struct {
	repo      contracts.CartRepository
	cache     contracts.CartCache
	committer *committer.Committer
	clock     clock.Clock
	logger    *slog.Logger

	loads singleflight.Group
}

// NewStore wires the repository, cache and committer. cache may be nil.
func NewStore(repo contracts.CartRepository, cache contracts.CartCache, comm *committer.Committer, clk clock.Clock, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		repo:      repo,
		cache:     cache,
		committer: comm,
		clock:     clk,
		logger:    logger,
	}
}

// loadTimeout bounds a shared load, which runs detached from its callers.
const loadTimeout = 10 * time.Second

// Load returns the cart, reading the cache first. Concurrent loads of the
// same cart share one backend read. The shared read ignores the callers'
// cancellation; each caller only stops waiting on its own ctx.
func (s *Store) Load(ctx context.Context, cartID string) (*domain.Cart, error) {
	ch := s.loads.DoChan(cartID, func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		if s.cache != nil {
			snap, err := s.cache.Get(ctx, cartID)
			if err == nil {
				return *snap, nil
			}
			if !errors.Is(err, ErrCacheMiss) {
				s.logger.Warn("cart cache get failed", "cart_id", cartID, "error", err)
			}
		}

		cart, err := s.repo.GetByID(ctx, cartID)
		if errors.Is(err, domain.ErrCartNotFound) {
			return domain.NewCart(cartID, s.clock).Snapshot(), nil
		}
		if err != nil {
			return nil, err
		}

		snap := cart.Snapshot()
		s.fill(ctx, snap)
		return snap, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if res.Err != nil {
		return nil, res.Err
	}

	// Each caller gets its own aggregate built from the shared snapshot.
	snap := res.Val.(domain.Snapshot)
	if snap.Version == 0 {
		return domain.NewCart(cartID, s.clock), nil
	}
	return domain.FromSnapshot(snap, s.clock), nil
}

// Save commits the cart's changes under a version check, then refreshes the
// cache.
func (s *Store) Save(ctx context.Context, cart *domain.Cart) error {
	muts, err := s.repo.SaveMuts(cart)
	if err != nil {
		return err
	}
	plan := committer.NewPlan()
	plan.AddMultiple(muts)
	if plan.IsEmpty() {
		return nil
	}

	if err := s.committer.ApplyWithVersionCheck(ctx, m_cart.TableName, spanner.Key{cart.ID()}, cart.Version(), plan); err != nil {
		if errors.Is(err, committer.ErrVersionConflict) {
			s.evict(ctx, cart.ID())
		}
		return err
	}

	cart.MarkCommitted()
	s.fill(ctx, cart.Snapshot())
	return nil
}

// Delete removes the cart from Spanner and the cache.
func (s *Store) Delete(ctx context.Context, cartID string) error {
	plan := committer.NewPlan()
	plan.Add(s.repo.DeleteMut(cartID))
	if err := s.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	s.evict(ctx, cartID)
	return nil
}

func (s *Store) fill(ctx context.Context, snap domain.Snapshot) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, snap); err != nil {
		s.logger.Warn("cart cache set failed", "cart_id", snap.ID, "error", err)
	}
}

func (s *Store) evict(ctx context.Context, cartID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cartID); err != nil {
		s.logger.Warn("cart cache delete failed", "cart_id", cartID, "error", err)
	}
}
