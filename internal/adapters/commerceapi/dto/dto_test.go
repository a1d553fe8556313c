package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

func amount(v int64) *money.Money {
	m := money.FromInt(v)
	return &m
}

func qty(n int) *int { return &n }

func TestProductDto_ToDomain(t *testing.T) {
	t.Run("explicit discounted price wins", func(t *testing.T) {
		p, err := ProductDto{ID: "p1", Name: "Shirt", Price: amount(500), DiscountedPrice: amount(420), Quantity: qty(3)}.ToDomain()
		require.NoError(t, err)
		require.NotNil(t, p.DiscountedPrice)
		assert.True(t, p.DiscountedPrice.Equals(money.FromInt(420)))
	})

	t.Run("discounted price not below unit price is dropped", func(t *testing.T) {
		p, err := ProductDto{ID: "p1", Name: "Shirt", Price: amount(500), DiscountedPrice: amount(500)}.ToDomain()
		require.NoError(t, err)
		assert.Nil(t, p.DiscountedPrice)
	})

	t.Run("fixed discount derives the price", func(t *testing.T) {
		p, err := ProductDto{ID: "p1", Name: "Shirt", Price: amount(500), DiscountType: "flat", DiscountAmount: amount(75)}.ToDomain()
		require.NoError(t, err)
		require.NotNil(t, p.DiscountedPrice)
		assert.True(t, p.DiscountedPrice.Equals(money.FromInt(425)))
	})

	t.Run("out of range percentage is ignored", func(t *testing.T) {
		p, err := ProductDto{ID: "p1", Name: "Shirt", Price: amount(500), DiscountType: "percentage", DiscountAmount: amount(150)}.ToDomain()
		require.NoError(t, err)
		assert.Nil(t, p.DiscountedPrice)
	})

	t.Run("status inactive", func(t *testing.T) {
		p, err := ProductDto{ID: "p1", Name: "Shirt", Price: amount(1), Status: "Inactive"}.ToDomain()
		require.NoError(t, err)
		assert.False(t, p.Active)
	})

	t.Run("negative quantity becomes zero", func(t *testing.T) {
		p, err := ProductDto{ID: "p1", Name: "Shirt", Price: amount(1), Quantity: qty(-4)}.ToDomain()
		require.NoError(t, err)
		assert.Equal(t, 0, p.AvailableQuantity)
	})

	t.Run("rejections", func(t *testing.T) {
		for _, d := range []ProductDto{
			{Name: "no id", Price: amount(1)},
			{ID: "p1", Price: amount(1)},
			{ID: "p1", Name: "no price"},
			{ID: "p1", Name: "negative", Price: amount(-1)},
		} {
			_, err := d.ToDomain()
			assert.ErrorIs(t, err, catalog.ErrInvalidProduct)
		}

		_, err := ProductDto{ID: "p1", Name: "x", Price: amount(1), DiscountType: "bogo"}.ToDomain()
		assert.ErrorIs(t, err, catalog.ErrUnknownDiscountType)
	})
}

func TestParseRedirectURL(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`https://pay.example.com/x`, "https://pay.example.com/x"},
		{`"https://pay.example.com/x"`, "https://pay.example.com/x"},
		{`{"bkashURL": "https://pay.example.com/x"}`, "https://pay.example.com/x"},
		{`{"url": "https://pay.example.com/y"}`, "https://pay.example.com/y"},
		{`{"error": "nope"}`, ""},
		{`  `, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseRedirectURL([]byte(tt.body)), tt.body)
	}
}

func TestValidateResponse_ToDomain(t *testing.T) {
	r := ValidateResponse{Success: false, Message: "Coupon not found"}
	res := r.ToDomain(money.FromInt(100))
	assert.False(t, res.Valid)
	assert.Equal(t, "Coupon not found", res.Reason)

	r = ValidateResponse{Data: &ValidateData{Valid: true, Coupon: &CouponDto{Code: "X", DiscountType: "weird"}}}
	assert.False(t, r.ToDomain(money.FromInt(100)).Valid)

	r = ValidateResponse{Data: &ValidateData{Valid: true, Coupon: &CouponDto{Code: "x", DiscountType: "fixed", DiscountValue: amount(30), DiscountAmount: amount(25)}}}
	res = r.ToDomain(money.FromInt(100))
	require.True(t, res.Valid)
	assert.True(t, res.Coupon.DiscountAmount.Equals(money.FromInt(25)), "backend amount wins")
}
