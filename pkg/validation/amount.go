package validation

import "github.com/shopspring/decimal"

const maxAmountFractionDigits = 8

// MaxAmount is the largest single donation accepted.
var MaxAmount = decimal.NewFromInt(1_000_000)

// IsValidAmount reports whether d is a positive amount no larger than MaxAmount
// with at most eight fraction digits. The exponent is checked first so that
// values like 1e999999999 are rejected without being expanded.
func IsValidAmount(d decimal.Decimal) bool {
	exp := d.Exponent()
	if exp < -maxAmountFractionDigits || exp > 6 {
		return false
	}
	return d.IsPositive() && d.LessThanOrEqual(MaxAmount)
}
