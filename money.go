package broker

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// round2 rounds a monetary value to 2 decimal places, half away from zero.
//
// Rounding happens at the point of output only: intermediate accumulations
// (cost-basis totals, holdings sums) are carried at full precision to avoid
// compounding rounding error across many trades.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// FormatMoney renders an amount in the given ISO currency code, e.g.
// "$1,234.50" or "€988.24". Unknown codes fall back to go-money defaults.
func FormatMoney(amount float64, currency string) string {
	units := decimal.NewFromFloat(amount).Shift(2).Round(0).IntPart()
	return money.New(units, currency).Display()
}
