package domain

import (
	"github.com/shopspring/decimal"
)

// Money is a currency amount with two-decimal rounding semantics. It wraps an
// exact decimal value so repeated aggregation never drifts the way binary
// floating point does. Operations that produce a monetary result (MulRate,
// Div, Round2) return values already rounded to two places; Add and Sub keep
// full precision so intermediate sums can accumulate before a final Round2.
type Money struct {
	d decimal.Decimal
}

// ZeroMoney returns the zero amount.
func ZeroMoney() Money {
	return Money{d: decimal.Zero}
}

// NewMoney wraps a decimal value as Money without rounding it.
func NewMoney(d decimal.Decimal) Money {
	return Money{d: d}
}

// MoneyFromString parses a decimal string such as "1000.00".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{d: d}, nil
}

// MoneyFromInt returns a whole-unit amount.
func MoneyFromInt(n int64) Money {
	return Money{d: decimal.NewFromInt(n)}
}

// Add returns m + o at full precision.
func (m Money) Add(o Money) Money {
	return Money{d: m.d.Add(o.d)}
}

// Sub returns m - o at full precision.
func (m Money) Sub(o Money) Money {
	return Money{d: m.d.Sub(o.d)}
}

// MulRate applies a percentage rate and rounds to two places. A rate of 10
// means 10%, so m.MulRate(ten) == m * 0.10 rounded.
func (m Money) MulRate(ratePercent decimal.Decimal) Money {
	return Money{d: m.d.Mul(ratePercent).Div(decimal.NewFromInt(100)).RoundBank(2)}
}

// Div divides the amount by n and rounds to two places.
func (m Money) Div(n int64) Money {
	if n == 0 {
		return ZeroMoney()
	}
	return Money{d: m.d.Div(decimal.NewFromInt(n)).RoundBank(2)}
}

// Round2 rounds the amount to two decimal places, half to even. Exact
// half-cent amounts land on the even cent.
func (m Money) Round2() Money {
	return Money{d: m.d.RoundBank(2)}
}

// Neg returns the negated amount.
func (m Money) Neg() Money {
	return Money{d: m.d.Neg()}
}

// Cmp compares m to o: -1 if m < o, 0 if equal, +1 if m > o.
func (m Money) Cmp(o Money) int {
	return m.d.Cmp(o.d)
}

// Equal reports whether the two amounts are numerically equal.
func (m Money) Equal(o Money) bool {
	return m.d.Equal(o.d)
}

// GreaterThanOrEqual reports whether m >= o.
func (m Money) GreaterThanOrEqual(o Money) bool {
	return m.d.GreaterThanOrEqual(o.d)
}

// LessThan reports whether m < o.
func (m Money) LessThan(o Money) bool {
	return m.d.LessThan(o.d)
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.d.IsZero()
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.d.IsPositive()
}

// IsNegative reports whether the amount is less than zero.
func (m Money) IsNegative() bool {
	return m.d.IsNegative()
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.d
}

// Float64 returns an approximate float value, for export formatting only.
func (m Money) Float64() float64 {
	f, _ := m.d.Float64()
	return f
}

// String returns the amount formatted with exactly two decimal places.
func (m Money) String() string {
	return m.d.StringFixed(2)
}

// MarshalJSON renders the amount as a JSON string with two decimal places.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.d.StringFixed(2) + `"`), nil
}

// UnmarshalJSON accepts either a JSON string or a bare number.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	m.d = d
	return nil
}

// SumMoney adds a sequence of amounts and rounds the total to two places.
// An empty sequence sums to zero.
func SumMoney(amounts []Money) Money {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a.d)
	}
	return Money{d: total.RoundBank(2)}
}
