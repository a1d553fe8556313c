package domain

import "errors"

var (
	// Cart errors
	ErrCartNotFound    = errors.New("cart not found")
	ErrCartEmpty       = errors.New("cart is empty")
	ErrInvalidIndex    = errors.New("cart index out of range")
	ErrItemNotFound    = errors.New("cart item not found")
	ErrNoCouponApplied = errors.New("no coupon applied")

	// Item errors
	ErrInvalidItem          = errors.New("cart item must reference a product")
	ErrInvalidQuantity      = errors.New("quantity must be positive")
	ErrVariationRequired    = errors.New("product requires a variation")
	ErrVariationNotFound    = errors.New("variation not found")
	ErrOutOfStock           = errors.New("product is out of stock")
	ErrQuantityExceedsStock = errors.New("quantity exceeds available stock")
)
