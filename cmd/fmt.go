package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	broker "github.com/pierpoint/broker"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string     { return "fmt" }
func (*fmtCmd) Synopsis() string { return "rewrite the ledger file in canonical form" }
func (*fmtCmd) Usage() string {
	return `pierpoint fmt

  Loads, validates and rewrites the ledger file: stable field order,
  indentation, and zero-share holdings removed. Hand-edited files come out
  normalized.
`
}

func (*fmtCmd) SetFlags(*flag.FlagSet) {}

func (*fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := broker.LoadConfig()
	store := &broker.FileStore{Path: cfg.LedgerFile, InitialCash: cfg.InitialCash}

	p, err := store.Load()
	if err != nil {
		return fail(err)
	}
	if err := store.Save(p); err != nil {
		return fail(err)
	}
	fmt.Println("Formatted", cfg.LedgerFile)
	return subcommands.ExitSuccess
}
