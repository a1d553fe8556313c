package m_cart_item

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the cart_items table.
type Model struct{}

func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation for one cart line.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		AllColumns,
		[]interface{}{
			data.CartID,
			data.LineNo,
			data.ProductID,
			data.VariationID,
			data.SKU,
			data.Name,
			data.Active,
			data.Quantity,
			&data.UnitPrice,
			data.DiscountedPrice,
			data.Thumbnail,
			data.ProductCode,
			data.CategoryID,
			data.CategoryName,
			data.HasVariations,
			data.Variation,
			data.MaxQuantity,
		},
	)
}

// DeleteAllMut removes every line of a cart.
func (m *Model) DeleteAllMut(cartID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{cartID}.AsPrefix())
}
