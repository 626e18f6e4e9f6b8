// Package money implements fixed-precision rupee amounts stored as paise.
package money

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an amount in paise (1/100 rupee).
type Money int64

const Zero Money = 0

// FromMinor builds Money from a paise count.
func FromMinor(paise int64) Money { return Money(paise) }

// FromRupees builds Money from whole rupees.
func FromRupees(rupees int64) Money { return Money(rupees * 100) }

// FromDecimal converts a rupee decimal into Money, rounding half-up to the paisa.
func FromDecimal(rupees decimal.Decimal) Money {
	return Money(rupees.Shift(2).Round(0).IntPart())
}

// Parse reads "1550", "1550.5", "₹ 1,550.50" or "Rs 1550". Empty input is zero.
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "₹")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "Rs."), "Rs")
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return FromDecimal(d), nil
}

// MustParse is Parse for literals in tests and fixtures.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Minor() int64 { return int64(m) }

func (m Money) Add(o Money) Money { return m + o }

func (m Money) Sub(o Money) Money { return m - o }

// Mul multiplies by a decimal quantity (km, litres) and rounds half-up to the paisa.
func (m Money) Mul(q decimal.Decimal) Money {
	return Money(decimal.NewFromInt(int64(m)).Mul(q).Round(0).IntPart())
}

// AtRate prices qty units at a per-unit rate that may carry more than two
// decimals. The product is rounded once, half-up to the paisa.
func AtRate(rate, qty decimal.Decimal) Money {
	return FromDecimal(rate.Mul(qty))
}

// MulInt multiplies by a whole count (spare part quantity).
func (m Money) MulInt(n int64) Money { return m * Money(n) }

// Div splits the amount into n equal shares, rounding half-up to the paisa.
// Division by zero or a negative count yields zero.
func (m Money) Div(n int64) Money {
	if n <= 0 {
		return Zero
	}
	return Money(decimal.NewFromInt(int64(m)).Div(decimal.NewFromInt(n)).Round(0).IntPart())
}

// ClampZero returns m, or zero when m is negative.
func (m Money) ClampZero() Money {
	if m < 0 {
		return Zero
	}
	return m
}

func (m Money) IsZero() bool     { return m == 0 }
func (m Money) IsNegative() bool { return m < 0 }

// Decimal returns the amount in rupees.
func (m Money) Decimal() decimal.Decimal { return decimal.New(int64(m), -2) }

// String renders the amount in rupees with exactly two decimals.
func (m Money) String() string { return m.Decimal().StringFixed(2) }

// Display renders a possibly missing amount; nil renders as 0.00.
func Display(m *Money) string {
	if m == nil {
		return Zero.String()
	}
	return m.String()
}

// Sum adds all amounts.
func Sum(ms ...Money) Money {
	var total Money
	for _, m := range ms {
		total += m
	}
	return total
}

// Max returns the larger of a and b.
func Max(a, b Money) Money {
	if a > b {
		return a
	}
	return b
}

// Scan implements sql.Scanner for DECIMAL columns.
func (m *Money) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*m = Zero
		return nil
	case []byte:
		parsed, err := Parse(string(v))
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	case string:
		parsed, err := Parse(v)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	case float64:
		*m = FromDecimal(decimal.NewFromFloat(v))
		return nil
	case int64:
		*m = FromRupees(v)
		return nil
	default:
		return fmt.Errorf("money: cannot scan %T", src)
	}
}

// Value implements driver.Valuer.
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a number, a numeric string or null (zero).
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*m = Zero
		return nil
	}
	s = strings.Trim(s, `"`)
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
