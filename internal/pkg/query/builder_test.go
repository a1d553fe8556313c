package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var cutoff = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestBuilder_SelectAllColumns(t *testing.T) {
	assert.Equal(t, "SELECT * FROM carts", From("carts").Build().SQL)
}

func TestBuilder_StaleCarts(t *testing.T) {
	stmt := From("carts").
		Select("cart_id").
		Where(Lt("updated_at", cutoff)).
		OrderBy("updated_at", Asc).
		Limit(500).
		Build()

	assert.Equal(t, "SELECT cart_id FROM carts WHERE updated_at < @p0 ORDER BY updated_at ASC LIMIT @limit", stmt.SQL)
	assert.Equal(t, map[string]interface{}{"p0": cutoff, "limit": int64(500)}, stmt.Params)
}

func TestBuilder_ParamsAreNumberedInOrder(t *testing.T) {
	stmt := From("cart_items").
		Select("cart_id", "line_no").
		Where(Lt("cart_id", "c-9")).
		Where(Lt("line_no", int64(3))).
		OrderBy("line_no", Desc).
		Build()

	assert.Equal(t, "SELECT cart_id, line_no FROM cart_items WHERE cart_id < @p0 AND line_no < @p1 ORDER BY line_no DESC", stmt.SQL)
	assert.Equal(t, map[string]interface{}{"p0": "c-9", "p1": int64(3)}, stmt.Params)
}

func TestBuilder_Count(t *testing.T) {
	builder := From("carts").
		Select("cart_id").
		Where(Lt("updated_at", cutoff)).
		OrderBy("updated_at", Asc).
		Limit(500)

	countStmt := builder.Count().Build()
	assert.Equal(t, "SELECT COUNT(*) FROM carts WHERE updated_at < @p0", countStmt.SQL)
	assert.Equal(t, map[string]interface{}{"p0": cutoff}, countStmt.Params)

	// Count must not leak into the base builder.
	assert.Equal(t, "SELECT cart_id FROM carts WHERE updated_at < @p0 ORDER BY updated_at ASC LIMIT @limit", builder.Build().SQL)
}

func TestBuilder_Immutability(t *testing.T) {
	base := From("carts").Select("cart_id")

	a := base.Where(Lt("cart_id", "a")).Build()
	b := base.Where(Lt("updated_at", cutoff)).Build()

	assert.Contains(t, a.SQL, "cart_id < @p0")
	assert.NotContains(t, a.SQL, "updated_at")
	assert.Contains(t, b.SQL, "updated_at < @p0")
}
