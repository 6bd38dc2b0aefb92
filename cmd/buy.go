package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type buyCmd struct {
	ticker string
	shares float64
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy shares of a stock at the current market price" }
func (*buyCmd) Usage() string {
	return `pierpoint buy -t <ticker> -s <shares>

  Buys shares at the live market price, using available cash. The order is
  rejected if the cost exceeds the cash balance.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Ticker symbol to buy, e.g. AAPL.")
	f.Float64Var(&c.shares, "s", 0, "Number of shares to buy.")
}

func (c *buyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" || c.shares <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -t <ticker> and a positive -s <shares> are required.")
		return subcommands.ExitUsageError
	}

	a, err := newApp()
	if err != nil {
		return fail(err)
	}
	defer a.close()

	msg, err := a.trader.Buy(ctx, c.ticker, c.shares)
	if err != nil {
		return fail(err)
	}
	fmt.Println(msg)
	return subcommands.ExitSuccess
}
