package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	broker "github.com/pierpoint/broker"
)

// chartBody fabricates a minimal Yahoo chart response.
func chartBody(price float64, currency string) string {
	return fmt.Sprintf(`{"chart":{"result":[{"meta":{"regularMarketPrice":%v,"currency":%q}}],"error":null}}`, price, currency)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewWithClient(server.Client(), server.URL)
}

func TestQuote(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, chartBody(231.59, "USD"))
	})

	q, err := client.Quote(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "/AAPL", gotPath)
	assert.Equal(t, "AAPL", q.Ticker)
	assert.Equal(t, 231.59, q.Price)
	assert.Equal(t, "USD", q.Currency)
}

func TestQuoteMissingPrice(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":[{"meta":{}}],"error":null}}`)
	})

	_, err := client.Quote(context.Background(), "NOPE")
	require.Error(t, err)
	assert.True(t, errors.Is(err, broker.ErrQuoteNotFound))
}

func TestQuoteHTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	_, err := client.Quote(context.Background(), "NOPE")
	require.Error(t, err)
}

func TestConvert(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, chartBody(1.0843, "USD"))
	})

	got, err := client.Convert(context.Background(), 100, "EUR", "USD")
	require.NoError(t, err)
	assert.Equal(t, "/EURUSD=X", gotPath)
	assert.InDelta(t, 108.43, got, 1e-9)
}

func TestConvertIdentityIsOffline(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		fmt.Fprint(w, chartBody(1, "USD"))
	})

	got, err := client.Convert(context.Background(), 42.5, "usd", "USD")
	require.NoError(t, err)
	assert.Equal(t, 42.5, got)
	assert.False(t, called, "identity conversion must not touch the network")
}

func TestConvertRejectsBadRate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chartBody(0, "USD"))
	})

	_, err := client.Convert(context.Background(), 100, "EUR", "USD")
	require.Error(t, err)
	assert.True(t, errors.Is(err, broker.ErrInvalidRate))
}
