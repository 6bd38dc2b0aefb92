// Package broker implements a small self-contained stock portfolio: a
// JSON-file ledger of cash, holdings and trade history, live pricing via
// market quotes, weighted-average cost-basis accounting, and trade execution
// with cash and position checks.
//
// The package is the domain core; the agent, the market-data client, the
// report renderer and the CLI live in subpackages and depend on it.
package broker
