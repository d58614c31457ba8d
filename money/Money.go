package money

import (
	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// USD renders an exact decimal amount as a dollar string with two decimals and
// a thousands separator. Formatting happens here and only here; everything
// upstream keeps the exact decimal value.
func USD(amount decimal.Decimal) string {
	return gomoney.New(amount.Round(2).Shift(2).IntPart(), gomoney.USD).Display()
}
