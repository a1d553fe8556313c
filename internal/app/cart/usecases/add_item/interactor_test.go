package add_item

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/app/catalog/catalogtest"
	"github.com/light-bringer/storefront-service/internal/app/cart/carttest"
	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/persist"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
	"github.com/light-bringer/storefront-service/internal/pkg/committer"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
	"github.com/light-bringer/storefront-service/internal/testutil"
)

type fixture struct {
	store      *carttest.Store
	publisher  *carttest.Publisher
	catalog    *catalogtest.Fake
	interactor *Interactor
}

func setup(t *testing.T, products ...catalog.Product) *fixture {
	t.Helper()
	clk := clock.NewMockClock(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	store := carttest.NewStore(clk)
	pub := &carttest.Publisher{}
	fake := catalogtest.NewFake(products...)
	mutator := persist.NewMutator(store, pub, "", clk, nil)
	return &fixture{
		store:      store,
		publisher:  pub,
		catalog:    fake,
		interactor: NewInteractor(fake, mutator),
	}
}

func TestAddItem_NewLine(t *testing.T) {
	f := setup(t, testutil.DiscountedProduct("p1", 500, 450, 10))

	view, err := f.interactor.Execute(context.Background(), &Request{CartID: "c1", ProductID: "p1", Quantity: 2})
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.TotalItems)
	assert.True(t, view.TotalPrice.Equals(money.FromInt(900)))
	assert.Equal(t, int64(1), view.Version)

	snap, ok := f.store.Get("c1")
	require.True(t, ok)
	assert.Len(t, snap.Items, 1)
	assert.Equal(t, []string{"cart.item_added"}, f.publisher.Types())
}

func TestAddItem_MergesSameProduct(t *testing.T) {
	f := setup(t, testutil.Product("p1", 100, 10))
	ctx := context.Background()

	_, err := f.interactor.Execute(ctx, &Request{CartID: "c1", ProductID: "p1", Quantity: 2})
	require.NoError(t, err)
	view, err := f.interactor.Execute(ctx, &Request{CartID: "c1", ProductID: "p1", Quantity: 3})
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	assert.Equal(t, 5, view.Items[0].Quantity)
	assert.Equal(t, int64(2), view.Version)
}

func TestAddItem_Variations(t *testing.T) {
	f := setup(t, testutil.VariantProduct("p1", 300, map[string]int{"M": 2, "L": 4}))
	ctx := context.Background()

	_, err := f.interactor.Execute(ctx, &Request{CartID: "c1", ProductID: "p1", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrVariationRequired)

	_, err = f.interactor.Execute(ctx, &Request{CartID: "c1", ProductID: "p1", VariationID: "p1-XL", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrVariationNotFound)

	view, err := f.interactor.Execute(ctx, &Request{CartID: "c1", ProductID: "p1", VariationID: "p1-M", Quantity: 2})
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "p1-M", view.Items[0].VariationID())

	_, err = f.interactor.Execute(ctx, &Request{CartID: "c1", ProductID: "p1", VariationID: "p1-M", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrQuantityExceedsStock)
}

func TestAddItem_Errors(t *testing.T) {
	f := setup(t, testutil.Product("out", 100, 0))
	ctx := context.Background()

	_, err := f.interactor.Execute(ctx, &Request{CartID: "c1", ProductID: "p1", Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.interactor.Execute(ctx, &Request{CartID: "c1", ProductID: "missing", Quantity: 1})
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)

	_, err = f.interactor.Execute(ctx, &Request{CartID: "c1", ProductID: "out", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrOutOfStock)

	_, ok := f.store.Get("c1")
	assert.False(t, ok)
	assert.Empty(t, f.publisher.Events)
}

func TestAddItem_RetriesVersionConflict(t *testing.T) {
	f := setup(t, testutil.Product("p1", 100, 10))
	f.store.SaveErr = committer.ErrVersionConflict

	view, err := f.interactor.Execute(context.Background(), &Request{CartID: "c1", ProductID: "p1", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, view.TotalItems)
	assert.Equal(t, 1, f.store.Saves)
}

func TestAddItem_StoreFailure(t *testing.T) {
	f := setup(t, testutil.Product("p1", 100, 10))
	f.store.SaveErr = errors.New("spanner unavailable")

	_, err := f.interactor.Execute(context.Background(), &Request{CartID: "c1", ProductID: "p1", Quantity: 1})
	require.Error(t, err)
	assert.Empty(t, f.publisher.Events)
}
