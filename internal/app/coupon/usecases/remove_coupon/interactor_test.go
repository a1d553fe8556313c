package remove_coupon

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-service/internal/app/cart/carttest"
	cart "github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/persist"
	"github.com/light-bringer/storefront-service/internal/app/coupon/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
	"github.com/light-bringer/storefront-service/internal/testutil"
)

func TestRemoveCoupon(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	clk := clock.NewMockClock(t0)
	store := carttest.NewStore(clk)
	applied := &domain.Coupon{Code: "X", DiscountType: domain.DiscountFixed, DiscountValue: money.FromInt(10), DiscountAmount: money.FromInt(10)}
	store.Put(cart.ReconstructCart("c1", []cart.CartItem{testutil.Item("p1", 1, 100)}, applied, 1, t0, t0, clk))
	pub := &carttest.Publisher{}
	interactor := NewInteractor(persist.NewMutator(store, pub, "", clk, nil))

	view, err := interactor.Execute(context.Background(), &Request{CartID: "c1"})
	require.NoError(t, err)
	assert.Nil(t, view.Coupon)
	assert.True(t, view.Payable.Equals(money.FromInt(100)))
	assert.Equal(t, []string{"cart.coupon_removed"}, pub.Types())

	_, err = interactor.Execute(context.Background(), &Request{CartID: "c1"})
	assert.ErrorIs(t, err, cart.ErrNoCouponApplied)
}
