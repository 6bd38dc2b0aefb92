package agent

import (
	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// newFacilitator creates the expert that owns the conversation. It has no
// tools of its own; it consults the other experts.
func newFacilitator(model string, log zerolog.Logger, experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Log:       log,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
You run an autonomous stock trading session and you are in charge of the
conversation and of solving the user's request.

Learn about the experts' skills from the Tools and ask them questions. They
are at your service and fully dedicated to you; they keep the context of your
previous questions.

The Analyst knows the markets and the news; ask them before making trading
decisions. The Broker holds the portfolio and executes orders; ask them for
positions, prices and net worth, and instruct them to buy or sell.

When a trade is rejected, read the reason and adjust the plan instead of
retrying the same order.
`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst creates the market research expert. It grounds its answers with
// Google Search; it has no access to the portfolio.
func NewAnalyst(model string, log zerolog.Logger) *Expert {
	return &Expert{
		Name: "Analyst",
		Description: `An expert market analyst. Knows financial products,
companies, funds and institutions, and uses web search to find the latest
market news and data. Ask the Analyst whenever you need recent or grounded
information about the markets.`,
		ModelName: model,
		Log:       log,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
You are an expert market analyst. You can search for anything related to
financial institutions, companies, markets and funds. Leverage Google Search
to ground your assertions and report the latest relevant news concisely.
`}}},
		},
	}
}

// NewBroker creates the expert that holds the portfolio tools: reading the
// ledger, quoting prices, computing net worth and executing orders.
func NewBroker(model string, log zerolog.Logger, tools *Tools) *Expert {
	lib := tools.Functions()
	return &Expert{
		Name: "Broker",
		Description: `The broker in charge of the user's portfolio. Can report
cash, holdings, trade history, live stock prices and net worth, and can
execute buy and sell orders at market price.`,
		ModelName: model,
		Log:       log,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
You are a broker in charge of the user's portfolio. Use the available tools
to read the portfolio, quote prices, compute net worth and execute orders.

Execute exactly what is asked, report tool output faithfully, and never
invent prices or balances. When an order is rejected, relay the reason
verbatim.
`}}},
		},
		Library: NewLibrary(lib),
	}
}
