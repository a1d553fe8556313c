package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/committer"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeRepo keeps last-updated times per cart and deletes on Apply.
type fakeRepo struct {
	updated map[string]time.Time
	listErr error
}

func (f *fakeRepo) SaveMuts(*domain.Cart) ([]*spanner.Mutation, error) { return nil, nil }

func (f *fakeRepo) DeleteMut(cartID string) *spanner.Mutation {
	return spanner.Delete("carts", spanner.Key{cartID})
}

func (f *fakeRepo) GetByID(context.Context, string) (*domain.Cart, error) {
	return nil, domain.ErrCartNotFound
}

func (f *fakeRepo) ListStale(_ context.Context, before time.Time, limit int) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var ids []string
	for id, at := range f.updated {
		if at.Before(before) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (f *fakeRepo) CountStale(ctx context.Context, before time.Time) (int64, error) {
	ids, err := f.ListStale(ctx, before, len(f.updated)+1)
	return int64(len(ids)), err
}

type fakeApplier struct {
	repo    *fakeRepo
	batches []int
	err     error
}

func (a *fakeApplier) Apply(_ context.Context, plan *committer.CommitPlan) error {
	if a.err != nil {
		return a.err
	}
	a.batches = append(a.batches, plan.Count())
	// Batches are applied in ListStale order, so drop the oldest ids.
	ids, _ := a.repo.ListStale(context.Background(), time.Now().Add(24*time.Hour*365), plan.Count())
	for _, id := range ids {
		delete(a.repo.updated, id)
	}
	return nil
}

func newFixture(stale, fresh int, now time.Time) (*fakeRepo, *fakeApplier) {
	repo := &fakeRepo{updated: make(map[string]time.Time)}
	for i := 0; i < stale; i++ {
		repo.updated[string(rune('a'+i))] = now.AddDate(0, 0, -40)
	}
	for i := 0; i < fresh; i++ {
		repo.updated[string(rune('A'+i))] = now.AddDate(0, 0, -1)
	}
	return repo, &fakeApplier{repo: repo}
}

func TestCleanupCarts_DeletesInBatches(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	repo, app := newFixture(5, 0, now)

	deleted, err := cleanupCarts(context.Background(), repo, app, now, Config{RetentionDays: 30, BatchSize: 2}, discard)
	require.NoError(t, err)

	assert.Equal(t, 5, deleted)
	assert.Equal(t, []int{2, 2, 1}, app.batches)
	assert.Empty(t, repo.updated)
}

func TestCleanupCarts_KeepsRecentCarts(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	repo, app := newFixture(0, 3, now)

	deleted, err := cleanupCarts(context.Background(), repo, app, now, Config{RetentionDays: 30, BatchSize: 10}, discard)
	require.NoError(t, err)

	assert.Zero(t, deleted)
	assert.Empty(t, app.batches)
	assert.Len(t, repo.updated, 3)
}

func TestCleanupCarts_DryRun(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	repo, app := newFixture(3, 1, now)

	deleted, err := cleanupCarts(context.Background(), repo, app, now, Config{RetentionDays: 30, BatchSize: 2, DryRun: true}, discard)
	require.NoError(t, err)

	assert.Equal(t, 3, deleted, "counts past the first page")
	assert.Empty(t, app.batches)
	assert.Len(t, repo.updated, 4)
}

func TestCleanupCarts_ApplyError(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	repo, app := newFixture(3, 0, now)
	app.err = errors.New("aborted")

	_, err := cleanupCarts(context.Background(), repo, app, now, Config{RetentionDays: 30, BatchSize: 10}, discard)
	assert.ErrorContains(t, err, "aborted")
}
