// Package agent runs the LLM trading sessions: a facilitator model
// orchestrates a market analyst (web search) and a broker (portfolio tools)
// to decide and execute trades.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	broker "github.com/pierpoint/broker"
)

// Agent wires the experts into a conversation.
type Agent struct {
	w           io.Writer
	r           *bufio.Reader
	log         zerolog.Logger
	maxTurns    int
	Facilitator *Expert
	Experts     []*Expert
}

// New creates an Agent from the configuration and a Trader. Output (the
// facilitator's answers) goes to w; r supplies user input in interactive
// sessions.
func New(w io.Writer, r io.Reader, cfg broker.Config, trader *broker.Trader, log zerolog.Logger) *Agent {
	tools := &Tools{Trader: trader, Currency: cfg.Currency}
	experts := []*Expert{
		NewAnalyst(cfg.Model, log),
		NewBroker(cfg.Model, log, tools),
	}
	return &Agent{
		w:           w,
		r:           bufio.NewReader(r),
		log:         log,
		maxTurns:    cfg.MaxTurns,
		Experts:     experts,
		Facilitator: newFacilitator(cfg.Model, log, experts...),
	}
}

// Start opens the chat sessions for all experts.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	for _, e := range a.Experts {
		if err := e.Start(ctx, client); err != nil {
			return err
		}
	}
	return a.Facilitator.Start(ctx, client)
}

// tradingDayPrompt is what the scheduled session sends: one self-contained
// instruction, no human in the loop.
const tradingDayPrompt = `It's a new trading day. Review the portfolio and
the current market situation, research anything relevant, and decide whether
to buy, sell, or hold. Execute the trades you decide on, then summarize what
you did and why.`

// RunSession runs one autonomous trading session: the trading-day prompt is
// sent to the facilitator and its final summary is written to the output.
func (a *Agent) RunSession(ctx context.Context, client *genai.Client) error {
	if a.Facilitator.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	a.log.Info().Msg("trading session started")
	content, err := a.Facilitator.Ask(ctx, a.maxTurns, &genai.Part{Text: tradingDayPrompt})
	if err != nil {
		return fmt.Errorf("trading session: %w", err)
	}
	summary := textOf(content)
	a.log.Info().Str("summary", summary).Msg("trading session finished")
	fmt.Fprintln(a.w, summary)
	return nil
}

const prompt = "trade> "

// Run starts an interactive REPL session. Initial prompts, if any, are
// consumed before reading from the user. Type 'bye' (or Ctrl+D) to exit.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.Facilitator.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "Welcome to the Pierpoint trading desk. Type 'bye' to exit.")

	for {
		fmt.Fprint(a.w, prompt)
		var input string

		if len(prompts) > 0 {
			input, prompts = prompts[0], prompts[1:]
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil
				}
				return err
			}
		}

		if strings.TrimSpace(input) == "bye" {
			return nil
		}

		content, err := a.Facilitator.Ask(ctx, a.maxTurns, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, textOf(content))
	}
}
