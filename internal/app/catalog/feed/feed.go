// Package feed keeps a paginated, filtered product listing for one browse
// session. Filter changes are paced by a throttle and every fetch carries a
// generation so a late response from an older request never overwrites newer
// state.
package feed

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/light-bringer/storefront-service/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
	"github.com/light-bringer/storefront-service/internal/pkg/throttle"
)

const (
	DefaultLimit    = 12
	DefaultInterval = 500 * time.Millisecond
)

// Options configures a Feed. Zero values fall back to defaults.
type Options struct {
	Limit    int
	Interval time.Duration
	Clock    clock.Clock
	Logger   *slog.Logger
}

// State is a point-in-time copy of a feed.
type State struct {
	Items         []domain.Product `json:"items"`
	Loading       bool             `json:"loading"`
	CurrentPage   int              `json:"currentPage"`
	TotalPages    int              `json:"totalPages"`
	TotalProducts int              `json:"totalProducts"`
	Filter        domain.Filter    `json:"filter"`
	Facets        domain.Facets    `json:"facets"`
}

// Feed is safe for concurrent use.
type Feed struct {
	catalog   contracts.Catalog
	throttler *throttle.Throttler
	logger    *slog.Logger
	limit     int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu            sync.Mutex
	items         []domain.Product
	loading       bool
	page          int
	totalPages    int
	totalProducts int
	filter        domain.Filter
	facets        domain.Facets
	gen           uint64
	facetGen      uint64
	closed        bool
}

// New creates an idle feed. Call Start to load the first page.
func New(catalog contracts.Catalog, opts Options) *Feed {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Feed{
		catalog:   catalog,
		throttler: throttle.New(opts.Interval, opts.Clock),
		logger:    opts.Logger,
		limit:     opts.Limit,
		ctx:       ctx,
		cancel:    cancel,
		page:      1,
	}
}

// Start loads page 1 and the facets for the initial filter.
func (f *Feed) Start(filter domain.Filter) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.filter = filter
	f.page = 1
	f.startFacetsLocked(filter.CategoryID)
	f.mu.Unlock()

	f.throttler.Trigger(f.refetch)
}

// SetFilter replaces the filter, resets to page 1 and schedules a refetch
// through the throttle. Facets are refetched at once when the category
// changes.
func (f *Feed) SetFilter(filter domain.Filter) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	if filter.CategoryID != f.filter.CategoryID {
		f.startFacetsLocked(filter.CategoryID)
	}
	f.filter = filter
	f.page = 1
	// Invalidate whatever is in flight for the old filter.
	f.gen++
	f.loading = true
	f.mu.Unlock()

	f.throttler.Trigger(f.refetch)
}

// LoadMore fetches the next page. It returns false when there is no next
// page or a fetch is already running.
func (f *Feed) LoadMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed || f.loading || f.page >= f.totalPages {
		return false
	}
	f.page++
	f.startFetchLocked()
	return true
}

// Snapshot returns a copy of the current state.
func (f *Feed) Snapshot() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	items := make([]domain.Product, len(f.items))
	copy(items, f.items)
	return State{
		Items:         items,
		Loading:       f.loading,
		CurrentPage:   f.page,
		TotalPages:    f.totalPages,
		TotalProducts: f.totalProducts,
		Filter:        f.filter,
		Facets:        f.facets,
	}
}

// Wait blocks until every fetch started so far has settled.
func (f *Feed) Wait() {
	f.wg.Wait()
}

// Close cancels the pending throttled call and in-flight fetches and waits
// for them to return. Later calls on the feed are no-ops.
func (f *Feed) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	f.mu.Unlock()

	f.throttler.Stop()
	f.cancel()
	f.wg.Wait()
}

func (f *Feed) refetch() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.page = 1
	f.startFetchLocked()
}

func (f *Feed) startFetchLocked() {
	f.gen++
	gen := f.gen
	page := f.page
	q := domain.ListQuery{Page: page, Limit: f.limit, Filter: f.filter}
	f.loading = true

	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		res, err := f.catalog.ListProducts(f.ctx, q)
		f.applyPage(gen, page, res, err)
	}()
}

func (f *Feed) applyPage(gen uint64, page int, res *domain.Page, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.gen {
		f.logger.Debug("discarding stale product page", "page", page, "generation", gen, "current", f.gen)
		return
	}
	f.loading = false

	if err != nil {
		if f.ctx.Err() == nil {
			f.logger.Error("failed to fetch products", "page", page, "filter", f.filter, "error", err)
		}
		if page > 1 {
			f.page = page - 1
		}
		return
	}

	if page == 1 {
		f.items = append([]domain.Product(nil), res.Products...)
	} else {
		f.items = append(f.items, res.Products...)
	}
	f.totalProducts = res.TotalProducts
	f.totalPages = res.TotalPages(f.limit)
}

func (f *Feed) startFacetsLocked(categoryID string) {
	f.facetGen++
	gen := f.facetGen

	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		facets, err := f.catalog.FilterData(f.ctx, categoryID)

		f.mu.Lock()
		defer f.mu.Unlock()
		if gen != f.facetGen {
			return
		}
		if err != nil {
			if f.ctx.Err() == nil {
				f.logger.Error("failed to fetch filter data", "category_id", categoryID, "error", err)
			}
			return
		}
		f.facets = *facets
	}()
}
