package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	broker "github.com/pierpoint/broker"
)

type networthCmd struct{}

func (*networthCmd) Name() string     { return "networth" }
func (*networthCmd) Synopsis() string { return "show total net worth at live prices" }
func (*networthCmd) Usage() string {
	return `pierpoint networth

  Computes cash plus the market value of all holdings at live prices.
`
}

func (*networthCmd) SetFlags(*flag.FlagSet) {}

func (*networthCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		return fail(err)
	}
	defer a.close()

	worth, err := a.trader.NetWorth(ctx)
	if err != nil {
		return fail(err)
	}
	fmt.Println(broker.FormatMoney(worth, a.cfg.Currency))
	return subcommands.ExitSuccess
}
