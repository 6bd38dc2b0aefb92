package broker

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Trader executes buy and sell orders against the ledger at live market
// prices.
//
// A rejected order (insufficient cash, insufficient shares) is not an error:
// the returned message explains the rejection in plain language and the
// ledger is left untouched. Errors are reserved for infrastructure failures
// such as an unreachable quote source or an unwritable ledger file.
type Trader struct {
	Store  LedgerStore
	Pricer Pricer
	Log    zerolog.Logger

	// Currency is the reporting currency used in messages; defaults to USD.
	Currency string

	// Now supplies trade timestamps; defaults to time.Now.
	Now func() time.Time
}

func (t *Trader) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

func (t *Trader) money(v float64) string {
	currency := t.Currency
	if currency == "" {
		currency = "USD"
	}
	return FormatMoney(v, currency)
}

// Buy purchases shares of ticker at the current market price.
//
// The quote is fetched before the cash check: the affordability of an order
// can only be judged against a live price.
func (t *Trader) Buy(ctx context.Context, ticker string, shares float64) (string, error) {
	if shares <= 0 {
		return fmt.Sprintf("Cannot buy %v shares of %s: the number of shares must be positive.", shares, ticker), nil
	}

	price, err := t.Pricer.Price(ctx, ticker)
	if err != nil {
		return "", fmt.Errorf("buy %s: %w", ticker, err)
	}

	p, err := t.Store.Load()
	if err != nil {
		return "", fmt.Errorf("buy %s: %w", ticker, err)
	}

	cost := shares * price
	if cost > p.Cash {
		t.Log.Info().Str("ticker", ticker).Float64("shares", shares).
			Float64("cost", round2(cost)).Float64("cash", p.Cash).
			Msg("buy rejected: insufficient cash")
		return fmt.Sprintf("You don't have enough cash to buy %v shares of %s. The trade would cost %s but you only have %s.",
			shares, ticker, t.money(round2(cost)), t.money(p.Cash)), nil
	}

	trade := NewTrade(t.now(), Buy, ticker, shares, price)
	p.apply(trade)
	if err := t.Store.Save(p); err != nil {
		return "", fmt.Errorf("buy %s: %w", ticker, err)
	}

	t.Log.Info().Str("ticker", ticker).Float64("shares", shares).
		Float64("price", price).Float64("cash", p.Cash).Msg("buy executed")
	return fmt.Sprintf("Purchased %v shares of %s at %s per share (%s total). Your cash balance is now %s.",
		shares, ticker, t.money(price), t.money(trade.Total), t.money(p.Cash)), nil
}

// Sell sells shares of ticker at the current market price.
//
// The position check runs before the quote fetch: an order for shares you do
// not hold is rejected without touching the network.
func (t *Trader) Sell(ctx context.Context, ticker string, shares float64) (string, error) {
	if shares <= 0 {
		return fmt.Sprintf("Cannot sell %v shares of %s: the number of shares must be positive.", shares, ticker), nil
	}

	p, err := t.Store.Load()
	if err != nil {
		return "", fmt.Errorf("sell %s: %w", ticker, err)
	}

	held := p.Position(ticker)
	if held < shares {
		t.Log.Info().Str("ticker", ticker).Float64("shares", shares).
			Float64("held", held).Msg("sell rejected: insufficient shares")
		return fmt.Sprintf("You don't have enough shares of %s to sell. You tried to sell %v shares but you only hold %v.",
			ticker, shares, held), nil
	}

	price, err := t.Pricer.Price(ctx, ticker)
	if err != nil {
		return "", fmt.Errorf("sell %s: %w", ticker, err)
	}

	trade := NewTrade(t.now(), Sell, ticker, shares, price)
	p.apply(trade)
	if err := t.Store.Save(p); err != nil {
		return "", fmt.Errorf("sell %s: %w", ticker, err)
	}

	t.Log.Info().Str("ticker", ticker).Float64("shares", shares).
		Float64("price", price).Float64("cash", p.Cash).Msg("sell executed")
	return fmt.Sprintf("Sold %v shares of %s at %s per share (%s total). Your cash balance is now %s.",
		shares, ticker, t.money(price), t.money(trade.Total), t.money(p.Cash)), nil
}

// Quote returns the live price of a ticker in the reporting currency.
func (t *Trader) Quote(ctx context.Context, ticker string) (float64, error) {
	return t.Pricer.Price(ctx, ticker)
}

// Portfolio loads the current ledger document.
func (t *Trader) Portfolio() (*Portfolio, error) {
	return t.Store.Load()
}

// NetWorth loads the ledger and values it at live prices.
func (t *Trader) NetWorth(ctx context.Context) (float64, error) {
	p, err := t.Store.Load()
	if err != nil {
		return 0, err
	}
	return NetWorth(ctx, p, t.Pricer, t.Log), nil
}

// Valuate loads the ledger and produces a full valuation snapshot.
func (t *Trader) Valuate(ctx context.Context) (*Portfolio, Valuation, error) {
	p, err := t.Store.Load()
	if err != nil {
		return nil, Valuation{}, err
	}
	return p, Valuate(ctx, p, t.Pricer, t.Log), nil
}
