package broker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// fakePricer serves prices from a map; missing tickers fail.
type fakePricer struct {
	prices map[string]float64
	calls  int
}

func (f *fakePricer) Price(_ context.Context, ticker string) (float64, error) {
	f.calls++
	price, ok := f.prices[ticker]
	if !ok {
		return 0, fmt.Errorf("price %s: %w", ticker, ErrQuoteNotFound)
	}
	return price, nil
}

func TestNetWorth(t *testing.T) {
	p := NewPortfolio(1000)
	p.apply(NewTrade(day(1), Buy, "AAPL", 10, 100))
	p.Cash = 1000 // rebuild the documented scenario: $1,000 cash, 10 shares at $150

	pricer := &fakePricer{prices: map[string]float64{"AAPL": 150}}
	got := NetWorth(context.Background(), p, pricer, zerolog.Nop())
	if got != 2500 {
		t.Errorf("NetWorth() = %v, want 2500", got)
	}
}

func TestNetWorthSkipsFailedQuotes(t *testing.T) {
	p := NewPortfolio(100)
	p.Holdings = map[string]float64{"AAPL": 2, "BROKEN": 5}
	p.History = []Trade{NewTrade(day(1), Buy, "AAPL", 2, 50)}

	pricer := &fakePricer{prices: map[string]float64{"AAPL": 60}}
	got := NetWorth(context.Background(), p, pricer, zerolog.Nop())
	if got != 220 {
		t.Errorf("NetWorth() = %v, want 220 (failed quote contributes nothing)", got)
	}
}

func TestValuate(t *testing.T) {
	p := NewPortfolio(1000)
	p.apply(NewTrade(day(1), Buy, "AAPL", 10, 100))

	pricer := &fakePricer{prices: map[string]float64{"AAPL": 150}}
	v := Valuate(context.Background(), p, pricer, zerolog.Nop())

	if v.Cash != 0 {
		t.Errorf("cash = %v, want 0", v.Cash)
	}
	if v.TotalValue != 1500 {
		t.Errorf("total value = %v, want 1500", v.TotalValue)
	}
	if len(v.Holdings) != 1 {
		t.Fatalf("holdings = %d, want 1", len(v.Holdings))
	}
	h := v.Holdings[0]
	if h.AverageCost != 100 {
		t.Errorf("average cost = %v, want 100", h.AverageCost)
	}
	if h.MarketValue != 1500 {
		t.Errorf("market value = %v, want 1500", h.MarketValue)
	}
	if h.UnrealizedPnL != 500 {
		t.Errorf("P&L = %v, want 500", h.UnrealizedPnL)
	}
	if h.UnrealizedPnLPct != 50 {
		t.Errorf("P&L %% = %v, want 50", h.UnrealizedPnLPct)
	}
}

func TestValuateToleratesFailedQuote(t *testing.T) {
	p := NewPortfolio(0)
	p.apply(NewTrade(day(1), Buy, "AAPL", 2, 100))
	p.apply(NewTrade(day(2), Buy, "BROKEN", 1, 50))
	p.Cash = 10

	pricer := &fakePricer{prices: map[string]float64{"AAPL": 110}}
	v := Valuate(context.Background(), p, pricer, zerolog.Nop())

	if len(v.Holdings) != 2 {
		t.Fatalf("holdings = %d, want 2 (failed ticker still listed)", len(v.Holdings))
	}
	// Tickers() is sorted: AAPL first, BROKEN second.
	broken := v.Holdings[1]
	if !broken.QuoteFailed {
		t.Error("BROKEN should be marked as a failed quote")
	}
	if broken.MarketValue != 0 || broken.UnrealizedPnL != 0 {
		t.Errorf("failed quote contributions = %v/%v, want zero", broken.MarketValue, broken.UnrealizedPnL)
	}
	if v.TotalValue != 230 {
		t.Errorf("total value = %v, want 230 (10 cash + 220 AAPL)", v.TotalValue)
	}
}

func TestSimpleReturn(t *testing.T) {
	tests := []struct {
		netWorth, initial, want float64
	}{
		{1500, 1000, 50},
		{1000, 1000, 0},
		{900, 1000, -10},
		{1000, 0, 0},
	}
	for _, tc := range tests {
		if got := SimpleReturn(tc.netWorth, tc.initial); got != tc.want {
			t.Errorf("SimpleReturn(%v, %v) = %v, want %v", tc.netWorth, tc.initial, got, tc.want)
		}
	}
}

func TestAnnualizedReturn(t *testing.T) {
	p := NewPortfolio(1000)
	p.apply(NewTrade(day(1), Buy, "AAPL", 1, 100))

	// Exactly one 365-day year later, the CAGR equals the simple growth.
	now := day(1).Add(365 * 24 * time.Hour)
	got, ok := AnnualizedReturn(p, 2000, 1000, now)
	if !ok {
		t.Fatal("expected a rate after one year of history")
	}
	if got != 100 {
		t.Errorf("AnnualizedReturn() = %v, want 100", got)
	}
}

func TestAnnualizedReturnNeedsHistory(t *testing.T) {
	if _, ok := AnnualizedReturn(NewPortfolio(1000), 1200, 1000, day(1)); ok {
		t.Error("expected no rate for an empty history")
	}

	p := NewPortfolio(1000)
	p.apply(NewTrade(day(1), Buy, "AAPL", 1, 100))
	if _, ok := AnnualizedReturn(p, 1200, 1000, day(1).Add(2*time.Hour)); ok {
		t.Error("expected no rate with less than a day of history")
	}
}
