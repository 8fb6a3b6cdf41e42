package shared

import "github.com/shopspring/decimal"

// Money amounts are stored with two decimal places and at most ten
// integer digits.
const MoneyScale = 2

// MaxMoney is the largest storable amount
var MaxMoney = decimal.New(1, 10).Sub(decimal.New(1, -MoneyScale))

// MoneyProblem returns a message describing why d cannot be stored as a
// money amount, or "" when it can. Sign checks are left to callers.
func MoneyProblem(d decimal.Decimal) string {
	if d.Exponent() < -MoneyScale && !d.Equal(d.Round(MoneyScale)) {
		return "must have at most 2 decimal places"
	}
	if d.Abs().GreaterThan(MaxMoney) {
		return "must not exceed " + MaxMoney.StringFixed(MoneyScale)
	}
	return ""
}
