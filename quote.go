package broker

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrQuoteNotFound is returned when a quote source has no price for a ticker.
var ErrQuoteNotFound = errors.New("quote not found")

// ErrInvalidRate is returned when a currency conversion produces a rate that
// cannot be applied (zero, negative, or NaN).
var ErrInvalidRate = errors.New("invalid conversion rate")

// Quote is a point-in-time market price, denominated in the currency the
// source trades the instrument in.
type Quote struct {
	Ticker   string
	Price    float64
	Currency string
}

// QuoteSource fetches live quotes for tickers.
type QuoteSource interface {
	Quote(ctx context.Context, ticker string) (Quote, error)
}

// CurrencyConverter converts amounts between ISO currency codes.
type CurrencyConverter interface {
	Convert(ctx context.Context, amount float64, from, to string) (float64, error)
}

// PriceService resolves ticker prices in a single reporting currency,
// converting foreign-denominated quotes on the fly. It satisfies Pricer.
type PriceService struct {
	Source    QuoteSource
	Converter CurrencyConverter
	// Currency is the reporting currency all prices are expressed in.
	Currency string
}

// Price returns the current price of ticker in the reporting currency.
//
// A quote already denominated in the reporting currency is returned as-is:
// the identity conversion is skipped entirely, so a converter outage cannot
// break domestic quotes.
func (s *PriceService) Price(ctx context.Context, ticker string) (float64, error) {
	q, err := s.Source.Quote(ctx, ticker)
	if err != nil {
		return 0, fmt.Errorf("quote %s: %w", ticker, err)
	}
	if strings.EqualFold(q.Currency, s.Currency) || q.Currency == "" {
		return q.Price, nil
	}
	converted, err := s.Converter.Convert(ctx, q.Price, q.Currency, s.Currency)
	if err != nil {
		return 0, fmt.Errorf("convert %s %s to %s: %w", ticker, q.Currency, s.Currency, err)
	}
	return converted, nil
}
