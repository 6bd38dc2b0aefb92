package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	broker "github.com/pierpoint/broker"
)

type priceCmd struct {
	ticker string
}

func (*priceCmd) Name() string     { return "price" }
func (*priceCmd) Synopsis() string { return "show the current market price of a stock" }
func (*priceCmd) Usage() string {
	return `pierpoint price -t <ticker>

  Fetches the live market price, converted to the reporting currency.
`
}

func (c *priceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Ticker symbol, e.g. AAPL.")
}

func (c *priceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" {
		fmt.Fprintln(os.Stderr, "Error: -t <ticker> is required.")
		return subcommands.ExitUsageError
	}

	a, err := newApp()
	if err != nil {
		return fail(err)
	}
	defer a.close()

	price, err := a.trader.Quote(ctx, c.ticker)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("%s: %s\n", c.ticker, broker.FormatMoney(price, a.cfg.Currency))
	return subcommands.ExitSuccess
}
