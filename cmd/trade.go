package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
	"google.golang.org/genai"

	broker "github.com/pierpoint/broker"
	"github.com/pierpoint/broker/agent"
)

type tradeCmd struct {
	force       bool
	interactive bool
}

func (*tradeCmd) Name() string     { return "trade" }
func (*tradeCmd) Synopsis() string { return "run an LLM trading session" }
func (*tradeCmd) Usage() string {
	return `pierpoint trade [-force] [-i]

  Runs one autonomous trading session: the agent reviews the portfolio,
  researches the market, and executes its own buy/sell decisions. The
  session is skipped outside NYSE market hours unless -force is given.
  With -i the session is an interactive chat instead.
`
}

func (c *tradeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.force, "force", false, "Run even when the market is closed.")
	f.BoolVar(&c.interactive, "i", false, "Interactive chat session instead of one autonomous run.")
}

func (c *tradeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp()
	if err != nil {
		return fail(err)
	}
	defer a.close()

	var calendar broker.Calendar = broker.NYSECalendar{}
	if c.force {
		calendar = broker.AlwaysOpen{}
	}
	if !calendar.IsOpen(time.Now()) {
		fmt.Println("Market is closed; skipping the trading session. Use -force to run anyway.")
		return subcommands.ExitSuccess
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return fail(err)
	}

	ag := agent.New(os.Stdout, os.Stdin, a.cfg, a.trader, a.log)
	if c.interactive {
		err = ag.Run(ctx, client)
	} else {
		err = ag.RunSession(ctx, client)
	}
	if err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
