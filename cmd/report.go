package cmd

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/google/subcommands"

	"github.com/pierpoint/broker/renderer"
)

type reportCmd struct {
	readme bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "render the full portfolio report" }
func (*reportCmd) Usage() string {
	return `pierpoint report [-readme]

  Values the portfolio at live prices and renders the full report: net
  worth, return figures, per-position P&L and recent trades. With -readme,
  the report is also spliced into the README's auto section.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.readme, "readme", false, "Also rewrite the README auto section with this report.")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		return fail(err)
	}
	defer a.close()

	report, err := renderer.NewReport(ctx, a.trader, a.cfg.Currency, a.cfg.InitialCash, time.Now())
	if err != nil {
		return fail(err)
	}
	md := renderer.RenderReport(report)
	printMarkdown(md)

	if c.readme {
		if err := renderer.UpdateReadme(a.cfg.ReadmeFile, md); err != nil {
			return fail(err)
		}
		fmt.Println("Updated", a.cfg.ReadmeFile)
	}
	return subcommands.ExitSuccess
}
