// Package yahoo fetches live market quotes and currency rates from the
// Yahoo Finance chart endpoint.
package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	broker "github.com/pierpoint/broker"
)

const defaultBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// Yahoo rejects requests without a browser-looking user agent.
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// Client fetches quotes from Yahoo Finance. It satisfies both
// broker.QuoteSource and broker.CurrencyConverter: a currency pair is just
// another chart symbol ("EURUSD=X").
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New returns a Client with an intraday disk cache, so repeated report runs
// within the same minute do not hammer the endpoint.
func New() *Client {
	return &Client{httpClient: cached(), baseURL: defaultBaseURL}
}

// NewWithClient returns a Client using the given http.Client and base URL;
// used by tests to point at a local server.
func NewWithClient(client *http.Client, baseURL string) *Client {
	return &Client{httpClient: client, baseURL: baseURL}
}

// Quote fetches the current market price of a ticker, in the currency the
// instrument trades in.
func (c *Client) Quote(ctx context.Context, ticker string) (broker.Quote, error) {
	price, currency, err := c.chartMeta(ctx, ticker)
	if err != nil {
		return broker.Quote{}, err
	}
	return broker.Quote{Ticker: ticker, Price: price, Currency: currency}, nil
}

// Convert converts an amount between currencies using the live pair rate.
// The identity conversion never touches the network.
func (c *Client) Convert(ctx context.Context, amount float64, from, to string) (float64, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	if from == to {
		return amount, nil
	}
	rate, _, err := c.chartMeta(ctx, from+to+"=X")
	if err != nil {
		return 0, fmt.Errorf("rate %s/%s: %w", from, to, err)
	}
	if rate <= 0 {
		return 0, fmt.Errorf("rate %s/%s is %v: %w", from, to, rate, broker.ErrInvalidRate)
	}
	return amount * rate, nil
}

// chartMeta fetches the chart document for a symbol and extracts the regular
// market price and its currency from the result metadata.
func (c *Client) chartMeta(ctx context.Context, symbol string) (price float64, currency string, err error) {
	addr := fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(symbol))

	var jobj any
	if err := c.jwget(ctx, addr, &jobj); err != nil {
		return 0, "", fmt.Errorf("fetching chart for %q: %w", symbol, err)
	}

	price, err = jsonFloat(jobj, "$.chart.result[0].meta.regularMarketPrice")
	if err != nil {
		return 0, "", fmt.Errorf("no price for %q: %w", symbol, broker.ErrQuoteNotFound)
	}
	// Currency is informative; a missing field means the caller's reporting
	// currency is assumed.
	currency, _ = jsonString(jobj, "$.chart.result[0].meta.currency")
	return price, currency, nil
}

// jwget performs an HTTP GET and unmarshals the JSON response into data.
func (c *Client) jwget(ctx context.Context, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}
	return decodeJSON(resp.Body, data)
}

// jsonFloat extracts a float value at path. jsonpath is never clear about
// whether it returns a list of one answer or a single answer, so a singleton
// list is unwrapped first.
func jsonFloat(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("parsing %q: %w", path, err)
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("parsing %q: not a float: %v", path, jval)
	}
	return val, nil
}

func jsonString(jobj any, path string) (string, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", fmt.Errorf("parsing %q: %w", path, err)
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("parsing %q: not a string: %v", path, jval)
	}
	return val, nil
}
