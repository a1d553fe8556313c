package m_cart_item

import (
	"math/big"

	"cloud.google.com/go/spanner"
)

// Data represents one row of cart_items. Prices are NUMERIC.
type Data struct {
	CartID          string              `spanner:"cart_id"`
	LineNo          int64               `spanner:"line_no"`
	ProductID       string              `spanner:"product_id"`
	VariationID     spanner.NullString  `spanner:"variation_id"`
	SKU             string              `spanner:"sku"`
	Name            string              `spanner:"name"`
	Active          bool                `spanner:"active"`
	Quantity        int64               `spanner:"quantity"`
	UnitPrice       big.Rat             `spanner:"unit_price"`
	DiscountedPrice spanner.NullNumeric `spanner:"discounted_price"`
	Thumbnail       string              `spanner:"thumbnail"`
	ProductCode     string              `spanner:"product_code"`
	CategoryID      string              `spanner:"category_id"`
	CategoryName    string              `spanner:"category_name"`
	HasVariations   bool                `spanner:"has_variations"`
	Variation       spanner.NullJSON    `spanner:"variation"`
	MaxQuantity     int64               `spanner:"max_quantity"`
}
