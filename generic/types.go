/*
Package generic provides the domain-agnostic building blocks of the
depreciation engine.

PURPOSE:
  This package contains the value types every other package leans on:
  fixed-point money, calendar time points with clamped month/year offsets,
  period generation, error types and the run store interface. None of it
  knows what an asset is.

KEY CONCEPTS IN THIS FILE (types.go):
  - Money: A monetary quantity held as decimal.Decimal (never float64)
  - RunID: Type-safe identifier for cached calculation runs

DESIGN PRINCIPLES:
  1. Precision: decimal.Decimal avoids binary floating-point drift
  2. Cents: Round2 is the single rounding rule (half away from zero)
  3. Immutability: Money is a value; every operation returns a new one

USAGE:
  cost := generic.MustMoney("10000")
  salvage := generic.NewMoneyFromInt(1000)
  base := cost.Sub(salvage).Max(generic.ZeroMoney).Round2()

SEE ALSO:
  - time.go: TimePoint calendar arithmetic
  - period.go: Period generation per mode
  - errors.go: Sentinel and structured errors
*/
package generic

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY - Fixed-point monetary amount
// =============================================================================

// Money is a monetary amount. Currency is a display concern and is not
// carried here.
type Money struct {
	Value decimal.Decimal
}

// ZeroMoney is 0.00.
var ZeroMoney = Money{Value: decimal.Zero}

// CentPlaces is the number of decimal places monetary amounts are rounded to.
const CentPlaces int32 = 2

func NewMoney(value float64) Money      { return Money{Value: decimal.NewFromFloat(value)} }
func NewMoneyFromInt(value int64) Money { return Money{Value: decimal.NewFromInt(value)} }

// ParseMoney parses a decimal string such as "1234.56".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return ZeroMoney, err
	}
	return Money{Value: d}, nil
}

// MustMoney parses s and panics on malformed input. Intended for literals.
func MustMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Add(b Money) Money               { return Money{Value: m.Value.Add(b.Value)} }
func (m Money) Sub(b Money) Money               { return Money{Value: m.Value.Sub(b.Value)} }
func (m Money) MulInt(n int) Money              { return Money{Value: m.Value.Mul(decimal.NewFromInt(int64(n)))} }
func (m Money) Neg() Money                      { return Money{Value: m.Value.Neg()} }
func (m Money) IsZero() bool                    { return m.Value.IsZero() }
func (m Money) IsNegative() bool                { return m.Value.IsNegative() }
func (m Money) IsPositive() bool                { return m.Value.IsPositive() }
func (m Money) Equal(b Money) bool              { return m.Value.Equal(b.Value) }
func (m Money) GreaterThan(b Money) bool        { return m.Value.GreaterThan(b.Value) }
func (m Money) LessThan(b Money) bool           { return m.Value.LessThan(b.Value) }
func (m Money) LessThanOrEqual(b Money) bool    { return m.Value.LessThanOrEqual(b.Value) }
func (m Money) GreaterThanOrEqual(b Money) bool { return m.Value.GreaterThanOrEqual(b.Value) }

// Min returns the smaller amount.
func (m Money) Min(b Money) Money {
	if m.LessThan(b) {
		return m
	}
	return b
}

// Max returns the larger amount.
func (m Money) Max(b Money) Money {
	if m.GreaterThan(b) {
		return m
	}
	return b
}

// Round2 rounds to cents, half away from zero (decimal.Round semantics).
func (m Money) Round2() Money { return Money{Value: m.Value.Round(CentPlaces)} }

// DivInt divides by n using decimal's default division precision. The
// result is not rounded; callers round explicitly.
func (m Money) DivInt(n int) Money {
	return Money{Value: m.Value.Div(decimal.NewFromInt(int64(n)))}
}

// Clamp bounds m to [lo, hi]. If hi < lo the result is lo.
func (m Money) Clamp(lo, hi Money) Money {
	return m.Min(hi).Max(lo)
}

// String renders the amount with exactly two decimals.
func (m Money) String() string { return m.Value.StringFixed(CentPlaces) }

// Float64 is for JSON DTOs only; arithmetic stays in decimal.
func (m Money) Float64() float64 {
	f, _ := m.Value.Float64()
	return f
}

// MarshalJSON emits the amount as a JSON number with two decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts both JSON numbers and quoted decimal strings.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	m.Value = d
	return nil
}

// SumMoney adds a list of amounts.
func SumMoney(amounts []Money) Money {
	total := ZeroMoney
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// =============================================================================
// IDENTIFIERS
// =============================================================================

type RunID string
