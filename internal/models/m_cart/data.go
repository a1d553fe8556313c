package m_cart

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the carts table.
// Coupon holds the applied coupon as JSON, or NULL.
type Data struct {
	CartID    string           `spanner:"cart_id"`
	Coupon    spanner.NullJSON `spanner:"coupon"`
	Version   int64            `spanner:"version"`
	CreatedAt time.Time        `spanner:"created_at"`
	UpdatedAt time.Time        `spanner:"updated_at"`
}
