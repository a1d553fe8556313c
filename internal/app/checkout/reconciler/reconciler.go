// Package reconciler fetches current product records for a cart and diffs
// the cart against them.
package reconciler

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	cartdomain "github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/catalog/contracts"
	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
)

// DefaultConcurrency bounds parallel product lookups.
const DefaultConcurrency = 8

type Reconciler struct {
	catalog     contracts.Catalog
	concurrency int
	logger      *slog.Logger
}

func New(catalog contracts.Catalog, concurrency int, logger *slog.Logger) *Reconciler {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		catalog:     catalog,
		concurrency: concurrency,
		logger:      logger,
	}
}

// FetchProducts looks up each distinct id. Products the backend reports as
// missing are absent from the map; any other failure aborts the batch so a
// network error is never mistaken for a removed product.
func (r *Reconciler) FetchProducts(ctx context.Context, ids []string) (map[string]catalog.Product, error) {
	var (
		mu       sync.Mutex
		products = make(map[string]catalog.Product, len(ids))
		seen     = make(map[string]struct{}, len(ids))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		g.Go(func() error {
			p, err := r.catalog.GetProduct(gctx, id)
			if errors.Is(err, catalog.ErrProductNotFound) {
				return nil
			}
			if err != nil {
				r.logger.Warn("product lookup failed", "product_id", id, "error", err)
				return err
			}
			mu.Lock()
			products[id] = *p
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return products, nil
}

// Reconcile diffs the cart's lines against fresh product data. The cart is
// not modified.
func (r *Reconciler) Reconcile(ctx context.Context, c *cartdomain.Cart) (cartdomain.ReconcileResult, error) {
	items := c.Items()
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}

	products, err := r.FetchProducts(ctx, ids)
	if err != nil {
		return cartdomain.ReconcileResult{}, err
	}
	return cartdomain.Reconcile(items, products), nil
}
