package money

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value in integer cents. Keeping money in minor units
// makes cent-exact splitting and balance arithmetic trivially safe; floats
// only appear at the API boundary.
type Amount int64

// FromFloat converts a decimal amount (e.g. 12.345) to cents, rounding
// half away from zero. Amounts entering the ledger are rounded to cent
// precision exactly once, here.
func FromFloat(v float64) Amount {
	return Amount(math.Round(v * 100))
}

// Parse converts a decimal string such as "120.00" to cents. Parsing goes
// through shopspring/decimal so values like "0.1" survive without binary
// float drift; anything past two fractional digits is rounded.
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	cents := d.Mul(decimal.New(100, 0)).Round(0)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return Amount(cents.IntPart()), nil
}

// Float64 returns the amount in major units for JSON responses.
func (a Amount) Float64() float64 {
	return float64(a) / 100
}

// String renders the amount with two decimals, e.g. "32.00" or "-48.50".
func (a Amount) String() string {
	return decimal.New(int64(a), -2).StringFixed(2)
}

// Abs returns the magnitude of the amount.
func (a Amount) Abs() Amount {
	if a < 0 {
		return -a
	}
	return a
}
