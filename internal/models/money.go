package models

import "github.com/shopspring/decimal"

// MoneyScale is the number of fractional digits stored for amounts.
const MoneyScale = 2

// Exponents outside this window are rejected before any arithmetic:
// rescaling a decimal allocates 10^|exponent|.
const (
	minMoneyExponent = -20
	maxMoneyExponent = 12
)

// moneyLimit is the smallest magnitude a numeric(14,2) column cannot hold.
var moneyLimit = decimal.New(1, 12)

// NormalizeMoney rounds d to cents and reports whether the result fits a
// numeric(14,2) column.
func NormalizeMoney(d decimal.Decimal) (decimal.Decimal, bool) {
	if d.IsZero() {
		return decimal.Zero, true
	}
	if exp := d.Exponent(); exp < minMoneyExponent || exp > maxMoneyExponent {
		return decimal.Zero, false
	}
	rounded := d.Round(MoneyScale)
	if rounded.Abs().Cmp(moneyLimit) >= 0 {
		return decimal.Zero, false
	}
	return rounded, true
}
