package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/pierpoint/broker/renderer"
)

type portfolioCmd struct{}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "show cash, holdings and recent trades" }
func (*portfolioCmd) Usage() string {
	return `pierpoint portfolio

  Shows the ledger as-is: cash balance, held positions and the most recent
  trades. Works offline; no quotes are fetched.
`
}

func (*portfolioCmd) SetFlags(*flag.FlagSet) {}

func (*portfolioCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		return fail(err)
	}
	defer a.close()

	p, err := a.trader.Portfolio()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.RenderPortfolio(renderer.NewPortfolioView(p, a.cfg.Currency)))
	return subcommands.ExitSuccess
}
