package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type sellCmd struct {
	ticker string
	shares float64
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell shares you hold at the current market price" }
func (*sellCmd) Usage() string {
	return `pierpoint sell -t <ticker> -s <shares>

  Sells shares at the live market price. The order is rejected if you hold
  fewer shares than you are trying to sell.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Ticker symbol to sell, e.g. AAPL.")
	f.Float64Var(&c.shares, "s", 0, "Number of shares to sell.")
}

func (c *sellCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" || c.shares <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -t <ticker> and a positive -s <shares> are required.")
		return subcommands.ExitUsageError
	}

	a, err := newApp()
	if err != nil {
		return fail(err)
	}
	defer a.close()

	msg, err := a.trader.Sell(ctx, c.ticker, c.shares)
	if err != nil {
		return fail(err)
	}
	fmt.Println(msg)
	return subcommands.ExitSuccess
}
