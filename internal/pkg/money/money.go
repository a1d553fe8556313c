// Package money provides an exact decimal amount type for prices, discounts
// and order totals. Arithmetic never rounds; rounding happens only in String.
package money

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// Money represents a monetary value with precise decimal arithmetic.
// The zero value is a valid amount of 0.
type Money struct {
	d decimal.Decimal
}

// Zero is an amount of 0.
var Zero = Money{}

// New creates an amount from an integer number of minor units and an exponent.
// Example: New(249900, -2) represents 2499.00
func New(value int64, exp int32) Money {
	return Money{d: decimal.New(value, exp)}
}

// FromInt creates a whole amount.
func FromInt(v int64) Money {
	return Money{d: decimal.NewFromInt(v)}
}

// FromFloat converts a float decoded from a loosely typed payload.
func FromFloat(f float64) Money {
	return Money{d: decimal.NewFromFloat(f)}
}

// Parse parses a decimal string such as "450" or "12.50".
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Money{d: d}, nil
}

// MustParse is Parse for constants and tests.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// FromRat converts a Spanner NUMERIC value.
func FromRat(r *big.Rat) Money {
	if r == nil {
		return Money{}
	}
	// NUMERIC carries at most 9 fractional digits.
	return MustParse(r.FloatString(9))
}

// Rat returns the value as a big.Rat for NUMERIC columns.
func (m Money) Rat() *big.Rat {
	return m.d.Rat()
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{d: m.d.Add(other.d)}
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return Money{d: m.d.Sub(other.d)}
}

// Mul returns m * other.
func (m Money) Mul(other Money) Money {
	return Money{d: m.d.Mul(other.d)}
}

// Div returns m / other rounded to 4 decimal places. Division by zero yields Zero.
func (m Money) Div(other Money) Money {
	if other.d.IsZero() {
		return Zero
	}
	return Money{d: m.d.DivRound(other.d, 4)}
}

// Round rounds half away from zero to the given number of decimal places.
func (m Money) Round(places int32) Money {
	return Money{d: m.d.Round(places)}
}

// MulInt returns m * n, used for line totals.
func (m Money) MulInt(n int) Money {
	return Money{d: m.d.Mul(decimal.NewFromInt(int64(n)))}
}

// Percent returns p percent of m.
func (m Money) Percent(p Money) Money {
	return Money{d: m.d.Mul(p.d).Div(decimal.NewFromInt(100))}
}

// Min returns the smaller of m and other.
func (m Money) Min(other Money) Money {
	if other.LessThan(m) {
		return other
	}
	return m
}

// IsZero returns true if the money value is zero.
func (m Money) IsZero() bool {
	return m.d.IsZero()
}

// IsNegative returns true if the money value is negative.
func (m Money) IsNegative() bool {
	return m.d.IsNegative()
}

// IsPositive returns true if the money value is positive.
func (m Money) IsPositive() bool {
	return m.d.IsPositive()
}

// LessThan returns true if this Money value is less than another.
func (m Money) LessThan(other Money) bool {
	return m.d.LessThan(other.d)
}

// GreaterThan returns true if this Money value is greater than another.
func (m Money) GreaterThan(other Money) bool {
	return m.d.GreaterThan(other.d)
}

// Equals compares numerically, so 450 equals 450.00.
func (m Money) Equals(other Money) bool {
	return m.d.Equal(other.d)
}

// Float64 returns an approximate float64 representation (for display only, not calculations).
func (m Money) Float64() float64 {
	f, _ := m.d.Float64()
	return f
}

// String formats the amount with two decimals.
func (m Money) String() string {
	return m.d.StringFixed(2)
}

// MarshalJSON writes the exact amount as a JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.d.String()), nil
}

// UnmarshalJSON accepts numbers and quoted numbers.
func (m *Money) UnmarshalJSON(data []byte) error {
	return m.d.UnmarshalJSON(data)
}
