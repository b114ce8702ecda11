package accounting

import "github.com/shopspring/decimal"

// MoneyScale is the number of decimal places stored for every amount.
const MoneyScale = 2

// HasMoneyScale reports whether d is representable without rounding at MoneyScale.
func HasMoneyScale(d decimal.Decimal) bool {
	return d.Equal(d.Round(MoneyScale))
}
