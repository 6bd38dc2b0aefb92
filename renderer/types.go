package renderer

import (
	"context"
	"fmt"
	"time"

	broker "github.com/pierpoint/broker"
)

// Report is the fully-valued portfolio view: all figures are pre-formatted
// strings so the templates stay dumb.
type Report struct {
	Date             string
	NetWorth         string
	Cash             string
	HoldingsValue    string
	Return           string
	AnnualizedReturn string // empty when less than a day of history exists
	Holdings         []HoldingRow
	Trades           []TradeRow
}

// HoldingRow is one position in the report table.
type HoldingRow struct {
	Ticker      string
	Shares      string
	AverageCost string
	MarketValue string
	PnL         string
	PnLPct      string
}

// TradeRow is one history entry in the recent-trades table.
type TradeRow struct {
	Date   string
	Side   string
	Ticker string
	Shares string
	Price  string
	Total  string
}

// PortfolioView is the offline ledger view: no quotes, no valuation.
type PortfolioView struct {
	Cash     string
	Holdings []PositionRow
	Trades   []TradeRow
}

// PositionRow is one holding in the offline view.
type PositionRow struct {
	Ticker string
	Shares string
}

// recentTradeCount bounds the history tail shown in reports.
const recentTradeCount = 20

// NewReport values the portfolio at live prices and builds the report view.
func NewReport(ctx context.Context, trader *broker.Trader, currency string, initialCash float64, now time.Time) (*Report, error) {
	p, valuation, err := trader.Valuate(ctx)
	if err != nil {
		return nil, err
	}

	r := &Report{
		Date:          now.UTC().Format("2006-01-02 15:04 MST"),
		NetWorth:      broker.FormatMoney(valuation.TotalValue, currency),
		Cash:          broker.FormatMoney(valuation.Cash, currency),
		HoldingsValue: broker.FormatMoney(valuation.HoldingsValue(), currency),
		Return:        fmt.Sprintf("%.2f%%", broker.SimpleReturn(valuation.TotalValue, initialCash)),
	}
	if cagr, ok := broker.AnnualizedReturn(p, valuation.TotalValue, initialCash, now); ok {
		r.AnnualizedReturn = fmt.Sprintf("%.2f%%", cagr)
	}

	for _, h := range valuation.Holdings {
		row := HoldingRow{
			Ticker:      h.Ticker,
			Shares:      formatShares(h.Shares),
			AverageCost: broker.FormatMoney(h.AverageCost, currency),
		}
		if h.QuoteFailed {
			row.MarketValue = "n/a"
			row.PnL = "n/a"
			row.PnLPct = "n/a"
		} else {
			row.MarketValue = broker.FormatMoney(h.MarketValue, currency)
			row.PnL = broker.FormatMoney(h.UnrealizedPnL, currency)
			row.PnLPct = fmt.Sprintf("%.2f%%", h.UnrealizedPnLPct)
		}
		r.Holdings = append(r.Holdings, row)
	}

	r.Trades = tradeRows(p.RecentTrades(recentTradeCount), currency)
	return r, nil
}

// NewPortfolioView builds the offline view of the ledger.
func NewPortfolioView(p *broker.Portfolio, currency string) *PortfolioView {
	view := &PortfolioView{Cash: broker.FormatMoney(p.Cash, currency)}
	for _, ticker := range p.Tickers() {
		view.Holdings = append(view.Holdings, PositionRow{
			Ticker: ticker,
			Shares: formatShares(p.Holdings[ticker]),
		})
	}
	view.Trades = tradeRows(p.RecentTrades(recentTradeCount), currency)
	return view
}

func tradeRows(trades []broker.Trade, currency string) []TradeRow {
	rows := make([]TradeRow, 0, len(trades))
	for _, t := range trades {
		rows = append(rows, TradeRow{
			Date:   t.Date.UTC().Format("2006-01-02"),
			Side:   string(t.Side),
			Ticker: t.Ticker,
			Shares: formatShares(t.Shares),
			Price:  broker.FormatMoney(t.Price, currency),
			Total:  broker.FormatMoney(t.Total, currency),
		})
	}
	return rows
}

func formatShares(shares float64) string {
	return fmt.Sprintf("%g", shares)
}
