package broker

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"
)

// HoldingValuation is the point-in-time view of a single position, produced
// by combining the cost-basis replay with a live quote.
type HoldingValuation struct {
	Ticker            string
	Shares            float64
	MarketValue       float64
	AverageCost       float64
	UnrealizedPnL     float64
	UnrealizedPnLPct  float64
	QuoteFailed       bool
}

// Valuation is a snapshot of the whole portfolio: cash plus the live market
// value of all holdings, with per-position P&L.
type Valuation struct {
	Cash       float64
	TotalValue float64
	Holdings   []HoldingValuation
}

// HoldingsValue returns the market value of the security positions alone.
func (v Valuation) HoldingsValue() float64 {
	return round2(v.TotalValue - v.Cash)
}

// Pricer returns the current price for a ticker in the reporting currency.
// It is the narrow contract the valuation rollup needs from the quote
// source and currency converter collaborators.
type Pricer interface {
	Price(ctx context.Context, ticker string) (float64, error)
}

// Valuate combines cash, live quotes and cost basis into a portfolio
// snapshot.
//
// A failed quote must not abort the whole report: the affected position is
// recorded with a zero market value and zeroed P&L fields, the failure is
// logged with its ticker, and the rollup continues. Tickers with no positive
// position are skipped.
func Valuate(ctx context.Context, p *Portfolio, pricer Pricer, log zerolog.Logger) Valuation {
	valuation := Valuation{Cash: p.Cash}
	averages := AverageCosts(p.History, p.Holdings)

	var holdingsValue float64
	for _, ticker := range p.Tickers() {
		shares := p.Holdings[ticker]
		if shares <= 0 {
			continue
		}

		hv := HoldingValuation{
			Ticker:      ticker,
			Shares:      shares,
			AverageCost: averages[ticker],
		}

		price, err := pricer.Price(ctx, ticker)
		if err != nil {
			log.Warn().Err(err).Str("ticker", ticker).Str("op", "valuate").
				Msg("quote failed, recording position at zero")
			hv.QuoteFailed = true
			valuation.Holdings = append(valuation.Holdings, hv)
			continue
		}

		hv.MarketValue = round2(shares * price)
		costBasisAmount := shares * hv.AverageCost
		hv.UnrealizedPnL = round2(hv.MarketValue - costBasisAmount)
		if costBasisAmount > 0 {
			hv.UnrealizedPnLPct = round2(hv.UnrealizedPnL / costBasisAmount * 100)
		}
		holdingsValue += hv.MarketValue
		valuation.Holdings = append(valuation.Holdings, hv)
	}

	valuation.TotalValue = round2(p.Cash + holdingsValue)
	return valuation
}

// NetWorth computes cash plus the live market value of all holdings. Quote
// failures are tolerated the same way as in Valuate: the failing position
// simply contributes nothing.
func NetWorth(ctx context.Context, p *Portfolio, pricer Pricer, log zerolog.Logger) float64 {
	var holdingsValue float64
	for _, ticker := range p.Tickers() {
		shares := p.Holdings[ticker]
		if shares <= 0 {
			continue
		}
		price, err := pricer.Price(ctx, ticker)
		if err != nil {
			log.Warn().Err(err).Str("ticker", ticker).Str("op", "net-worth").
				Msg("quote failed, skipping position")
			continue
		}
		holdingsValue += shares * price
	}
	return round2(p.Cash + holdingsValue)
}

// SimpleReturn is the portfolio return relative to the initial cash
// baseline, as a percentage rounded to 2 decimals.
func SimpleReturn(netWorth, initialCash float64) float64 {
	if initialCash == 0 {
		return 0
	}
	return round2((netWorth - initialCash) / initialCash * 100)
}

// AnnualizedReturn computes the compound annual growth rate of the portfolio
// since its first recorded trade, as a percentage.
//
// The boolean is false when no meaningful rate exists: an empty history,
// less than one day elapsed, or a non-positive baseline.
func AnnualizedReturn(p *Portfolio, netWorth, initialCash float64, now time.Time) (float64, bool) {
	first, ok := p.FirstTradeDate()
	if !ok || initialCash <= 0 || netWorth <= 0 {
		return 0, false
	}
	days := now.Sub(first).Hours() / 24
	if days < 1 {
		return 0, false
	}
	years := days / 365
	cagr := math.Pow(netWorth/initialCash, 1/years) - 1
	return round2(cagr * 100), true
}
