package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

func TestParseDiscountType(t *testing.T) {
	cases := map[string]DiscountType{
		"":           DiscountNone,
		"Fixed":      DiscountFixed,
		"flat":       DiscountFixed,
		"percentage": DiscountPercentage,
		" Percent ":  DiscountPercentage,
	}
	for in, want := range cases {
		got, err := ParseDiscountType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseDiscountType("bogo")
	assert.ErrorIs(t, err, ErrUnknownDiscountType)
}

func TestDiscount_Apply(t *testing.T) {
	unit := money.FromInt(500)

	t.Run("fixed", func(t *testing.T) {
		p := Discount{Type: DiscountFixed, Value: money.FromInt(50)}.Apply(unit)
		require.NotNil(t, p)
		assert.True(t, p.Equals(money.FromInt(450)))
	})

	t.Run("percentage", func(t *testing.T) {
		p := Discount{Type: DiscountPercentage, Value: money.FromInt(20)}.Apply(unit)
		require.NotNil(t, p)
		assert.True(t, p.Equals(money.FromInt(400)))
	})

	t.Run("fixed larger than price floors at zero", func(t *testing.T) {
		p := Discount{Type: DiscountFixed, Value: money.FromInt(900)}.Apply(unit)
		require.NotNil(t, p)
		assert.True(t, p.IsZero())
	})

	t.Run("zero value means no discount", func(t *testing.T) {
		assert.Nil(t, Discount{Type: DiscountFixed}.Apply(unit))
		assert.Nil(t, Discount{}.Apply(unit))
	})
}

func TestDiscount_Validate(t *testing.T) {
	assert.NoError(t, Discount{Type: DiscountPercentage, Value: money.FromInt(100)}.Validate())
	assert.ErrorIs(t, Discount{Type: DiscountPercentage, Value: money.FromInt(101)}.Validate(), ErrInvalidDiscount)
	assert.ErrorIs(t, Discount{Type: DiscountFixed, Value: money.FromInt(-1)}.Validate(), ErrInvalidDiscount)
}

func TestNormalizeDiscountedPrice(t *testing.T) {
	unit := money.FromInt(500)
	explicit := money.FromInt(450)
	equal := money.FromInt(500)

	t.Run("explicit price wins", func(t *testing.T) {
		d := Discount{Type: DiscountPercentage, Value: money.FromInt(50)}
		p := NormalizeDiscountedPrice(unit, &explicit, d)
		require.NotNil(t, p)
		assert.True(t, p.Equals(explicit))
	})

	t.Run("derived from discount when absent", func(t *testing.T) {
		d := Discount{Type: DiscountFixed, Value: money.FromInt(100)}
		p := NormalizeDiscountedPrice(unit, nil, d)
		require.NotNil(t, p)
		assert.True(t, p.Equals(money.FromInt(400)))
	})

	t.Run("price not below unit price is dropped", func(t *testing.T) {
		assert.Nil(t, NormalizeDiscountedPrice(unit, &equal, Discount{}))
	})

	t.Run("returned pointer is a copy", func(t *testing.T) {
		in := money.FromInt(300)
		p := NormalizeDiscountedPrice(unit, &in, Discount{})
		require.NotNil(t, p)
		assert.NotSame(t, &in, p)
	})
}

func TestDiscountPercent(t *testing.T) {
	assert.True(t, DiscountPercent(money.FromInt(500), money.FromInt(450)).Equals(money.FromInt(10)))
	assert.True(t, DiscountPercent(money.Zero, money.Zero).IsZero())
}
