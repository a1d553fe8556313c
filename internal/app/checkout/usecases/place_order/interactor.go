package place_order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	cart "github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/persist"
	"github.com/light-bringer/storefront-service/internal/app/checkout/contracts"
	"github.com/light-bringer/storefront-service/internal/app/checkout/domain"
	"github.com/light-bringer/storefront-service/internal/app/checkout/reconciler"
	couponcontracts "github.com/light-bringer/storefront-service/internal/app/coupon/contracts"
	coupon "github.com/light-bringer/storefront-service/internal/app/coupon/domain"
	"github.com/light-bringer/storefront-service/internal/messaging"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

// Request carries the checkout form.
type Request struct {
	CartID        string
	Customer      domain.Customer
	PaymentMethod string
	CallbackURL   string
}

// Deps groups the collaborators of the interactor.
type Deps struct {
	Mutator    *persist.Mutator
	Reconciler *reconciler.Reconciler
	Orders     contracts.OrderService
	Coupons    couponcontracts.CouponService
	Publisher  messaging.Publisher
	Topic      string
	Clock      clock.Clock
	Logger     *slog.Logger
}

// Interactor places an order for a cart.
//
// The cart must match current product data; if reconciliation finds drift
// the order is refused with a *domain.CartChangedError and the shopper has
// to confirm the changes first. A provisional coupon is re-validated by the
// backend before submission. On success the cart is cleared.
type Interactor struct {
	deps Deps
}

func NewInteractor(deps Deps) *Interactor {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Topic == "" {
		deps.Topic = messaging.DefaultTopic
	}
	return &Interactor{deps: deps}
}

func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.PlacedOrder, error) {
	if err := req.Customer.Validate(); err != nil {
		return nil, err
	}
	method, err := domain.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	// 1. Cart must be current
	current, err := i.deps.Mutator.Store().Load(ctx, req.CartID)
	if err != nil {
		return nil, err
	}
	if current.IsEmpty() {
		return nil, cart.ErrCartEmpty
	}
	res, err := i.deps.Reconciler.Reconcile(ctx, current)
	if err != nil {
		return nil, err
	}
	if res.HasChanges {
		return nil, &domain.CartChangedError{Result: res}
	}

	// 2. Coupon confirmed by the backend
	applied, err := i.confirmCoupon(ctx, current, req.Customer.Phone)
	if err != nil {
		return nil, err
	}

	// 3. Submit
	order := buildOrder(current, applied, req.Customer, method)
	placed, err := i.deps.Orders.CreateOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	if method == domain.PaymentBkash {
		redirect, err := i.deps.Orders.BkashCheckout(ctx, domain.PaymentRequest{
			OrderID:       placed.OrderID,
			Amount:        placed.Total,
			CustomerPhone: req.Customer.Phone,
			CallbackURL:   req.CallbackURL,
		})
		if err != nil {
			i.deps.Logger.Warn("bkash checkout failed", "order_id", placed.OrderID, "error", err)
		}
		placed.PaymentURL = redirect
	}

	// 4. Clear the cart; the order stands even if this fails
	i.clearOrdered(ctx, req.CartID, current.Version(), placed.OrderID)

	messaging.PublishAll(ctx, i.deps.Publisher, i.deps.Topic, i.deps.Logger, i.deps.Clock.Now(), []*domain.OrderPlacedEvent{{
		CartID:        req.CartID,
		OrderID:       placed.OrderID,
		PaymentMethod: method,
		CouponCode:    order.CouponCode,
		ItemCount:     current.TotalItems(),
		Total:         placed.Total,
		PlacedAt:      i.deps.Clock.Now(),
	}})

	return placed, nil
}

// errCartMovedOn stops the post-order clear when the cart was saved again
// after the ordered version was read.
var errCartMovedOn = errors.New("cart changed after the order was built")

// clearOrdered empties the cart only while it is still the version that was
// ordered. Lines added in the meantime were never ordered, so the cart is
// left alone for the shopper to review.
func (i *Interactor) clearOrdered(ctx context.Context, cartID string, ordered int64, orderID string) {
	_, err := i.deps.Mutator.Mutate(ctx, cartID, func(c *cart.Cart) error {
		if c.Version() != ordered {
			return errCartMovedOn
		}
		c.Clear()
		return nil
	})
	switch {
	case err == nil:
	case errors.Is(err, errCartMovedOn):
		i.deps.Logger.Warn("cart changed during checkout, not cleared", "cart_id", cartID, "order_id", orderID, "ordered_version", ordered)
	default:
		i.deps.Logger.Error("failed to clear cart after order", "cart_id", cartID, "order_id", orderID, "error", err)
	}
}

// confirmCoupon returns the coupon to submit. A provisional coupon is sent
// to the backend; if it is refused it is removed from the cart and the
// refusal is returned.
func (i *Interactor) confirmCoupon(ctx context.Context, c *cart.Cart, phone string) (*coupon.Coupon, error) {
	applied := c.Coupon()
	if applied == nil || !applied.Provisional {
		return applied, nil
	}

	result, err := i.deps.Coupons.Validate(ctx, coupon.ValidationRequest{
		Code:          applied.Code,
		CustomerPhone: phone,
		OrderTotal:    c.TotalPrice(),
		Products:      c.OrderLines(),
	})
	if err != nil {
		i.deps.Logger.Warn("coupon re-validation failed", "code", applied.Code, "error", err)
		return nil, fmt.Errorf("%w: %v", coupon.ErrValidationFailed, err)
	}
	if !result.Valid || result.Coupon == nil {
		if _, err := i.deps.Mutator.Mutate(ctx, c.ID(), func(c *cart.Cart) error {
			err := c.RemoveCoupon()
			if errors.Is(err, cart.ErrNoCouponApplied) {
				return nil
			}
			return err
		}); err != nil {
			i.deps.Logger.Warn("failed to drop refused coupon", "cart_id", c.ID(), "error", err)
		}
		return nil, coupon.NewInvalidCouponError(result.Reason)
	}

	confirmed := *result.Coupon
	confirmed.Source = applied.Source
	confirmed.Provisional = false
	return &confirmed, nil
}

func buildOrder(c *cart.Cart, applied *coupon.Coupon, customer domain.Customer, method domain.PaymentMethod) domain.OrderRequest {
	items := c.Items()
	order := domain.OrderRequest{
		CartID:        c.ID(),
		Customer:      customer,
		PaymentMethod: method,
		Items:         make([]domain.OrderItem, 0, len(items)),
		SubTotal:      c.TotalPrice(),
	}
	for idx := range items {
		it := &items[idx]
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:   it.ProductID,
			VariationID: it.VariationID(),
			SKU:         it.SKU,
			Name:        it.Name,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Price:       it.EffectivePrice(),
			TotalPrice:  it.TotalPrice,
		})
	}
	if applied != nil {
		order.CouponCode = applied.Code
		order.Discount = applied.DiscountAmount.Min(order.SubTotal)
	}
	order.Total = order.SubTotal.Sub(order.Discount)
	return order
}
