package list_my_coupons

import (
	"context"
	"strings"

	cartcontracts "github.com/light-bringer/storefront-service/internal/app/cart/contracts"
	"github.com/light-bringer/storefront-service/internal/app/coupon/contracts"
	"github.com/light-bringer/storefront-service/internal/app/coupon/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// Request lists a customer's coupons. When CartID is set each coupon is
// checked against that cart's total.
type Request struct {
	CustomerPhone string
	CartID        string
}

// Entry is a pre-issued coupon with its local eligibility.
type Entry struct {
	domain.MyCoupon
	Applicable bool   `json:"applicable"`
	Reason     string `json:"reason,omitempty"`
}

// Query handles the list my coupons query.
type Query struct {
	coupons contracts.CouponService
	carts   cartcontracts.CartStore
	clock   clock.Clock
}

func NewQuery(coupons contracts.CouponService, carts cartcontracts.CartStore, clk clock.Clock) *Query {
	return &Query{
		coupons: coupons,
		carts:   carts,
		clock:   clk,
	}
}

func (q *Query) Execute(ctx context.Context, req *Request) ([]Entry, error) {
	if strings.TrimSpace(req.CustomerPhone) == "" {
		return nil, domain.ErrPhoneRequired
	}

	issued, err := q.coupons.MyCoupons(ctx, req.CustomerPhone)
	if err != nil {
		return nil, err
	}

	total := money.Zero
	if req.CartID != "" {
		c, err := q.carts.Load(ctx, req.CartID)
		if err != nil {
			return nil, err
		}
		total = c.TotalPrice()
	}

	now := q.clock.Now()
	entries := make([]Entry, 0, len(issued))
	for _, m := range issued {
		e := Entry{MyCoupon: m, Applicable: true}
		orderTotal := total
		if req.CartID == "" {
			orderTotal = m.MinOrderAmount
		}
		if err := m.Check(orderTotal, now); err != nil {
			e.Applicable = false
			e.Reason = err.Error()
		}
		entries = append(entries, e)
	}
	return entries, nil
}
