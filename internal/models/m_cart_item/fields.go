package m_cart_item

// Field name constants for the cart_items table, interleaved in carts.
const (
	TableName = "cart_items"

	CartID          = "cart_id"
	LineNo          = "line_no"
	ProductID       = "product_id"
	VariationID     = "variation_id"
	SKU             = "sku"
	Name            = "name"
	Active          = "active"
	Quantity        = "quantity"
	UnitPrice       = "unit_price"
	DiscountedPrice = "discounted_price"
	Thumbnail       = "thumbnail"
	ProductCode     = "product_code"
	CategoryID      = "category_id"
	CategoryName    = "category_name"
	HasVariations   = "has_variations"
	Variation       = "variation"
	MaxQuantity     = "max_quantity"
)

// AllColumns lists every column in table order.
var AllColumns = []string{
	CartID, LineNo, ProductID, VariationID, SKU, Name, Active, Quantity,
	UnitPrice, DiscountedPrice, Thumbnail, ProductCode, CategoryID,
	CategoryName, HasVariations, Variation, MaxQuantity,
}
