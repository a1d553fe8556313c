package commerceapi

import (
	"context"
	"net/url"

	"github.com/light-bringer/storefront-service/internal/adapters/commerceapi/dto"
	"github.com/light-bringer/storefront-service/internal/app/coupon/contracts"
	coupon "github.com/light-bringer/storefront-service/internal/app/coupon/domain"
)

var _ contracts.CouponService = (*Client)(nil)

func (c *Client) Validate(ctx context.Context, req coupon.ValidationRequest) (*coupon.ValidationResult, error) {
	var resp dto.ValidateResponse
	if err := c.postJSON(ctx, "/coupon/validate", dto.NewCouponRequest(req), &resp); err != nil {
		return nil, err
	}
	result := resp.ToDomain(req.OrderTotal)
	return &result, nil
}

// MyCoupons skips records that fail validation.
func (c *Client) MyCoupons(ctx context.Context, phone string) ([]coupon.MyCoupon, error) {
	var resp dto.MyCouponsResponse
	if err := c.getJSON(ctx, "/coupon/my-coupons/"+url.PathEscape(phone), nil, &resp); err != nil {
		return nil, err
	}
	out := make([]coupon.MyCoupon, 0, len(resp.Data))
	for _, m := range resp.Data {
		mc, ok := m.ToDomain()
		if !ok {
			c.logger.Warn("skipped malformed coupon", "code", m.Code)
			continue
		}
		out = append(out, mc)
	}
	return out, nil
}

func (c *Client) AutoApply(ctx context.Context, req coupon.ValidationRequest) (*coupon.Coupon, error) {
	var resp dto.AutoApplyResponse
	if err := c.postJSON(ctx, "/coupon/auto-apply", dto.NewCouponRequest(req), &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, nil
	}
	cp, err := resp.Data.ToDomain(req.OrderTotal)
	if err != nil {
		c.logger.Warn("ignoring malformed auto-apply coupon", "error", err)
		return nil, nil
	}
	return &cp, nil
}
