// Package cmd implements the CLI application to run the Pierpoint broker:
// manual trades, portfolio reports and the autonomous trading session.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	broker "github.com/pierpoint/broker"
	"github.com/pierpoint/broker/yahoo"
)

// Commands lists the subcommands a main package registers.
var Commands = []subcommands.Command{
	&buyCmd{},
	&sellCmd{},
	&priceCmd{},
	&portfolioCmd{},
	&networthCmd{},
	&reportCmd{},
	&tradeCmd{},
	&fmtCmd{},
}

// app bundles what every command needs: configuration, logger and a wired
// Trader. Commands build it in Execute, not before, so flag parsing stays
// side-effect free.
type app struct {
	cfg    broker.Config
	log    zerolog.Logger
	closer io.Closer
	trader *broker.Trader
}

func newApp() (*app, error) {
	cfg := broker.LoadConfig()
	logger, closer, err := broker.NewLogger(cfg.LogFile, zerolog.InfoLevel)
	if err != nil {
		return nil, err
	}

	client := yahoo.New()
	pricer := &broker.PriceService{
		Source:    client,
		Converter: client,
		Currency:  cfg.Currency,
	}
	trader := &broker.Trader{
		Store:    &broker.FileStore{Path: cfg.LedgerFile, InitialCash: cfg.InitialCash},
		Pricer:   pricer,
		Log:      logger,
		Currency: cfg.Currency,
	}
	return &app{cfg: cfg, log: logger, closer: closer, trader: trader}, nil
}

func (a *app) close() {
	if a.closer != nil {
		a.closer.Close()
	}
}

// printMarkdown renders markdown for the terminal. If rendering fails the
// raw markdown is still readable, so print that instead.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}

// fail prints an error and returns the failure exit status; commands use it
// to keep their Execute bodies flat.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}
