package ledger

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Bounds on accepted amounts. Anything outside them would make balance
// arithmetic rescale into arbitrarily large integers while the ledger is locked.
const (
	maxAmountScale         = 18 // digits after the decimal point
	maxAmountIntegerDigits = 20 // digits before the decimal point
	maxAmountInputLen      = 64
)

// ParseAmount turns caller input into a money amount. Anything that is not a
// positive decimal number within the amount bounds is rejected with
// ErrInvalidAmount.
func ParseAmount(s string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) > maxAmountInputLen {
		return decimal.Zero, invalidAmount(s)
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil || !validAmount(d) {
		return decimal.Zero, invalidAmount(s)
	}
	return d, nil
}

// AmountFromFloat is ParseAmount for callers holding a float64. NaN and the
// infinities are rejected before conversion.
func AmountFromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return decimal.Zero, invalidAmount(strconv.FormatFloat(f, 'g', -1, 64))
	}
	d := decimal.NewFromFloat(f)
	if !validAmount(d) {
		return decimal.Zero, invalidAmount(strconv.FormatFloat(f, 'g', -1, 64))
	}
	return d, nil
}

// validAmount reports whether d is positive and within the amount bounds.
func validAmount(d decimal.Decimal) bool {
	if !d.IsPositive() {
		return false
	}
	exp := int64(d.Exponent())
	if exp < -maxAmountScale {
		return false
	}
	return int64(d.NumDigits())+exp <= maxAmountIntegerDigits
}

// amountText renders d for error messages without expanding a large exponent
// into its full positional form.
func amountText(d decimal.Decimal) string {
	exp := int64(d.Exponent())
	if exp < -maxAmountScale || exp > maxAmountIntegerDigits {
		return d.Coefficient().String() + "e" + strconv.FormatInt(exp, 10)
	}
	return d.String()
}
