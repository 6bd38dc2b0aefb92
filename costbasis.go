package broker

import (
	"github.com/shopspring/decimal"
)

// costBasis accumulates the running weighted-average state for one ticker
// during a history replay. It is recomputed from scratch on every valuation
// request and never persisted.
type costBasis struct {
	totalCost    decimal.Decimal
	totalShares  decimal.Decimal
	lastBuyPrice decimal.Decimal
	sawBuy       bool
}

// buy folds a purchase of shares at price into the running average.
func (b *costBasis) buy(shares, price decimal.Decimal) {
	b.totalCost = b.totalCost.Add(shares.Mul(price))
	b.totalShares = b.totalShares.Add(shares)
	b.lastBuyPrice = price
	b.sawBuy = true
}

// sell reduces the position proportionally, leaving the average cost of the
// remainder unchanged. A sell against an empty position is an artifact of
// partial history and is ignored: the basis never goes negative.
func (b *costBasis) sell(shares decimal.Decimal) {
	if !b.totalShares.IsPositive() {
		return
	}
	currentAvg := b.totalCost.Div(b.totalShares)
	reduceBy := decimal.Min(shares, b.totalShares)
	b.totalCost = b.totalCost.Sub(reduceBy.Mul(currentAvg))
	b.totalShares = b.totalShares.Sub(reduceBy)
}

// AverageCosts replays an ordered trade history into a best-estimate
// weighted-average cost per ticker.
//
// When currentHoldings is supplied it is used to reconcile positions the
// history does not fully explain: shares held beyond what the replay
// accounts for are assumed acquired at the last observed buy price and
// folded into the weighted average. A ticker whose replay nets to zero but
// which still shows a positive balance falls back to the last buy price
// outright. History/holdings disagreement is a normal input, not an error;
// the function cannot fail for any well-formed input.
//
// Tickers with neither residual replay shares nor current holdings are
// omitted from the result. Returned averages are rounded to 2 decimals,
// half away from zero.
func AverageCosts(history []Trade, currentHoldings map[string]float64) map[string]float64 {
	bases := make(map[string]*costBasis)

	// Replay strictly in stored order; the sequence is chronological by
	// construction and reconciliation depends on it.
	for _, t := range history {
		b, ok := bases[t.Ticker]
		if !ok {
			b = &costBasis{}
			bases[t.Ticker] = b
		}
		shares := decimal.NewFromFloat(t.Shares)
		price := decimal.NewFromFloat(t.Price)
		switch t.Side {
		case Buy:
			b.buy(shares, price)
		case Sell:
			b.sell(shares)
		}
	}

	averages := make(map[string]float64)
	for ticker, b := range bases {
		if b.totalShares.IsPositive() {
			actual, tracked := lookup(currentHoldings, ticker)
			if tracked && !actual.Equal(b.totalShares) && actual.IsPositive() {
				// The history under-reports the position: cost the missing
				// shares at the last observed buy price and blend them in.
				missing := actual.Sub(b.totalShares)
				adjustedCost := b.totalCost.Add(missing.Mul(b.lastBuyPrice))
				averages[ticker] = round2dec(adjustedCost.Div(actual))
				continue
			}
			averages[ticker] = round2dec(b.totalCost.Div(b.totalShares))
			continue
		}

		// Replay nets to zero. If the position was fully sold and then
		// reacquired outside the recorded history, the last buy price is
		// the only estimate available.
		if actual, tracked := lookup(currentHoldings, ticker); tracked && actual.IsPositive() && b.sawBuy {
			averages[ticker] = round2dec(b.lastBuyPrice)
		}
	}
	return averages
}

func lookup(holdings map[string]float64, ticker string) (decimal.Decimal, bool) {
	if holdings == nil {
		return decimal.Decimal{}, false
	}
	shares, ok := holdings[ticker]
	if !ok {
		return decimal.Decimal{}, false
	}
	return decimal.NewFromFloat(shares), true
}

func round2dec(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
