package m_cart

// Field name constants for the carts table.
const (
	TableName = "carts"

	CartID    = "cart_id"
	Coupon    = "coupon"
	Version   = "version"
	CreatedAt = "created_at"
	UpdatedAt = "updated_at"
)

// AllColumns lists the columns read when loading a cart.
var AllColumns = []string{CartID, Coupon, Version, CreatedAt, UpdatedAt}
