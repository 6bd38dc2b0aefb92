package broker

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// TradeSide identifies the direction of a trade.
type TradeSide string

const (
	// Buy adds shares to a position and debits cash.
	Buy TradeSide = "buy"
	// Sell removes shares from a position and credits cash.
	Sell TradeSide = "sell"
)

// ParseTradeSide parses a string into a TradeSide.
func ParseTradeSide(s string) (TradeSide, error) {
	switch TradeSide(s) {
	case Buy:
		return Buy, nil
	case Sell:
		return Sell, nil
	default:
		return "", fmt.Errorf("unknown trade side: %q", s)
	}
}

// Trade is an immutable historical record of a single order execution.
//
// Trades are appended to the portfolio history in chronological order and
// are never reordered or rewritten. Total is stored redundantly (shares
// times price at time of trade) for audit purposes.
type Trade struct {
	Date   time.Time `json:"date"`
	Side   TradeSide `json:"type"`
	Ticker string    `json:"ticker"`
	Shares float64   `json:"shares"`
	Price  float64   `json:"price"`
	Total  float64   `json:"total"`
}

// NewTrade creates a trade record priced at p per share.
func NewTrade(on time.Time, side TradeSide, ticker string, shares, price float64) Trade {
	return Trade{
		Date:   on.UTC(),
		Side:   side,
		Ticker: ticker,
		Shares: shares,
		Price:  price,
		Total:  round2(shares * price),
	}
}

// Validate checks a trade record for structural correctness. It is used when
// loading a ledger document to reject records that could corrupt the
// cost-basis replay.
func (t Trade) Validate() error {
	if t.Date.IsZero() {
		return fmt.Errorf("trade has no date")
	}
	if _, err := ParseTradeSide(string(t.Side)); err != nil {
		return err
	}
	if t.Ticker == "" {
		return fmt.Errorf("trade has no ticker")
	}
	if t.Shares <= 0 {
		return fmt.Errorf("trade shares must be positive, got %v", t.Shares)
	}
	if t.Price < 0 {
		return fmt.Errorf("trade price must not be negative, got %v", t.Price)
	}
	return nil
}

// MarshalJSON implements json.Marshaler, keeping the document field order
// stable across rewrites.
func (t Trade) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", t.Date.UTC().Format(time.RFC3339Nano))
	w.Append("type", t.Side)
	w.Append("ticker", t.Ticker)
	w.Append("shares", t.Shares)
	w.Append("price", t.Price)
	w.Append("total", t.Total)
	return w.MarshalJSON()
}

// UnmarshalJSON implements json.Unmarshaler. The date must parse as RFC3339.
func (t *Trade) UnmarshalJSON(data []byte) error {
	var temp struct {
		Date   string    `json:"date"`
		Side   TradeSide `json:"type"`
		Ticker string    `json:"ticker"`
		Shares float64   `json:"shares"`
		Price  float64   `json:"price"`
		Total  float64   `json:"total"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	on, err := time.Parse(time.RFC3339Nano, temp.Date)
	if err != nil {
		return fmt.Errorf("invalid trade date %q: %w", temp.Date, err)
	}
	t.Date = on
	t.Side = temp.Side
	t.Ticker = temp.Ticker
	t.Shares = temp.Shares
	t.Price = temp.Price
	t.Total = temp.Total
	return nil
}

// Portfolio is the root aggregate persisted as a single JSON document.
//
// Holdings need not algebraically equal the sum of historical buys minus
// sells: the ledger may have been started after some positions already
// existed, or early trades may be missing. Reconciling that gap is the job
// of AverageCosts, not a reason to reject the document.
type Portfolio struct {
	Cash     float64            `json:"cash"`
	Holdings map[string]float64 `json:"holdings"`
	History  []Trade            `json:"history"`
}

// NewPortfolio creates an empty portfolio funded with the given cash amount.
func NewPortfolio(cash float64) *Portfolio {
	return &Portfolio{
		Cash:     round2(cash),
		Holdings: make(map[string]float64),
		History:  make([]Trade, 0),
	}
}

// Validate checks the portfolio document for structural correctness.
func (p *Portfolio) Validate() error {
	for ticker, shares := range p.Holdings {
		if ticker == "" {
			return fmt.Errorf("holdings contain an empty ticker")
		}
		if shares < 0 {
			return fmt.Errorf("holdings for %s are negative: %v", ticker, shares)
		}
	}
	for i, trade := range p.History {
		if err := trade.Validate(); err != nil {
			return fmt.Errorf("invalid trade at index %d: %w", i, err)
		}
	}
	return nil
}

// Position returns the number of shares currently held for a ticker.
// A missing ticker is a zero position.
func (p *Portfolio) Position(ticker string) float64 {
	return p.Holdings[ticker]
}

// Tickers returns the held tickers in a stable (sorted) order.
func (p *Portfolio) Tickers() []string {
	tickers := make([]string, 0, len(p.Holdings))
	for ticker := range p.Holdings {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)
	return tickers
}

// FirstTradeDate returns the date of the earliest recorded trade.
// The boolean is false when the history is empty.
func (p *Portfolio) FirstTradeDate() (time.Time, bool) {
	if len(p.History) == 0 {
		return time.Time{}, false
	}
	return p.History[0].Date, true
}

// RecentTrades returns up to n trades, most recent first.
func (p *Portfolio) RecentTrades(n int) []Trade {
	if n > len(p.History) {
		n = len(p.History)
	}
	recent := make([]Trade, 0, n)
	for i := len(p.History) - 1; i >= len(p.History)-n; i-- {
		recent = append(recent, p.History[i])
	}
	return recent
}

// apply mutates the portfolio with a single executed trade: holdings and
// cash move together, and the trade is appended to the history. Cash is
// rounded to 2 decimals after the mutation. Entries that reach exactly zero
// shares are removed so they do not persist.
func (p *Portfolio) apply(t Trade) {
	if p.Holdings == nil {
		p.Holdings = make(map[string]float64)
	}
	switch t.Side {
	case Buy:
		p.Holdings[t.Ticker] += t.Shares
		p.Cash = round2(p.Cash - t.Shares*t.Price)
	case Sell:
		p.Holdings[t.Ticker] -= t.Shares
		if p.Holdings[t.Ticker] == 0 {
			delete(p.Holdings, t.Ticker)
		}
		p.Cash = round2(p.Cash + t.Shares*t.Price)
	}
	p.History = append(p.History, t)
}

// MarshalJSON implements json.Marshaler with a stable field order, so that
// successive rewrites of the ledger file produce minimal diffs.
func (p *Portfolio) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("cash", p.Cash)
	holdings := make(map[string]float64, len(p.Holdings))
	for ticker, shares := range p.Holdings {
		if shares != 0 {
			holdings[ticker] = shares
		}
	}
	w.Append("holdings", holdings)
	w.Append("history", p.History)
	return w.MarshalJSON()
}
