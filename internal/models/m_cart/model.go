package m_cart

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the carts table.
type Model struct{}

func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation that writes a whole cart row.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		[]string{CartID, Coupon, Version, CreatedAt, UpdatedAt},
		[]interface{}{
			data.CartID,
			data.Coupon,
			data.Version,
			data.CreatedAt,
			spanner.CommitTimestamp,
		},
	)
}

// UpdateMut creates a mutation for specific cart columns. UpdatedAt is
// always set to the commit timestamp.
func (m *Model) UpdateMut(cartID string, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}
	updates[UpdatedAt] = spanner.CommitTimestamp

	columns := make([]string, 0, len(updates)+1)
	values := make([]interface{}, 0, len(updates)+1)
	columns = append(columns, CartID)
	values = append(values, cartID)
	for col, val := range updates {
		columns = append(columns, col)
		values = append(values, val)
	}

	return spanner.Update(TableName, columns, values)
}

// DeleteMut deletes the cart row; cart_items rows go with it by cascade.
func (m *Model) DeleteMut(cartID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{cartID})
}
