package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"google.golang.org/genai"

	broker "github.com/pierpoint/broker"
)

// Op names a brokerage operation the model can request.
type Op string

const (
	OpBuy           Op = "buy"
	OpSell          Op = "sell"
	OpGetStockPrice Op = "get_stock_price"
	OpGetPortfolio  Op = "get_portfolio"
	OpGetNetWorth   Op = "get_net_worth"
	OpThink         Op = "think"
)

// Tools binds the brokerage operations to a Trader so a model can call them.
// Every operation returns its result as text in the function response; a
// rejected trade is an "output", not an "error", because the model should
// read the rejection and adjust its plan.
type Tools struct {
	Trader   *broker.Trader
	Currency string
}

// Functions returns the tool set as model-callable functions.
func (t *Tools) Functions() []Function {
	return []Function{
		t.tradeFunc(OpBuy, "Buy a number of shares of a stock at the current market price, using available cash."),
		t.tradeFunc(OpSell, "Sell a number of shares of a stock you hold at the current market price."),
		t.priceFunc(),
		t.portfolioFunc(),
		t.netWorthFunc(),
		t.thinkFunc(),
	}
}

func tickerSharesSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"ticker": {
				Type:        genai.TypeString,
				Description: "The stock ticker symbol, e.g. AAPL.",
			},
			"shares": {
				Type:        genai.TypeNumber,
				Description: "The number of shares, must be positive.",
			},
		},
		Required: []string{"ticker", "shares"},
	}
}

func (t *Tools) tradeFunc(op Op, description string) Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        string(op),
			Description: description,
			Parameters:  tickerSharesSchema(),
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The execution report, or the reason the order was rejected.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			ticker, shares, err := tradeArgs(args)
			if err != nil {
				return errorResponse(id, string(op), err)
			}
			var msg string
			switch op {
			case OpBuy:
				msg, err = t.Trader.Buy(ctx, ticker, shares)
			case OpSell:
				msg, err = t.Trader.Sell(ctx, ticker, shares)
			default:
				err = fmt.Errorf("unknown trade operation %q", op)
			}
			if err != nil {
				return errorResponse(id, string(op), err)
			}
			return outputResponse(id, string(op), msg)
		},
	}
}

func (t *Tools) priceFunc() Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        string(OpGetStockPrice),
			Description: "Get the current market price of a stock.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"ticker": {
						Type:        genai.TypeString,
						Description: "The stock ticker symbol, e.g. AAPL.",
					},
				},
				Required: []string{"ticker"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The current price per share.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			ticker, ok := args["ticker"].(string)
			if !ok || ticker == "" {
				return errorResponse(id, string(OpGetStockPrice), fmt.Errorf("missing ticker"))
			}
			price, err := t.Trader.Quote(ctx, ticker)
			if err != nil {
				return errorResponse(id, string(OpGetStockPrice), err)
			}
			return outputResponse(id, string(OpGetStockPrice),
				fmt.Sprintf("%s is trading at %s per share.", ticker, broker.FormatMoney(price, t.currency())))
		},
	}
}

func (t *Tools) portfolioFunc() Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        string(OpGetPortfolio),
			Description: "Get the current portfolio: cash balance, holdings and recent trade history.",
			Parameters:  &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The portfolio as a JSON document.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			p, err := t.Trader.Portfolio()
			if err != nil {
				return errorResponse(id, string(OpGetPortfolio), err)
			}
			doc, err := json.MarshalIndent(p, "", "  ")
			if err != nil {
				return errorResponse(id, string(OpGetPortfolio), err)
			}
			return outputResponse(id, string(OpGetPortfolio), string(doc))
		},
	}
}

func (t *Tools) netWorthFunc() Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        string(OpGetNetWorth),
			Description: "Get the total net worth of the portfolio: cash plus the market value of all holdings at live prices.",
			Parameters:  &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The net worth in the reporting currency.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			worth, err := t.Trader.NetWorth(ctx)
			if err != nil {
				return errorResponse(id, string(OpGetNetWorth), err)
			}
			return outputResponse(id, string(OpGetNetWorth),
				fmt.Sprintf("Your net worth is %s.", broker.FormatMoney(worth, t.currency())))
		},
	}
}

// thinkFunc gives the model a scratchpad. The thought is logged and echoed
// back; nothing else happens.
func (t *Tools) thinkFunc() Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        string(OpThink),
			Description: "Think out loud about your strategy before acting. Use this to reason step by step; it has no side effects.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"thought": {
						Type:        genai.TypeString,
						Description: "Your reasoning.",
					},
				},
				Required: []string{"thought"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "Acknowledgement.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			thought, _ := args["thought"].(string)
			t.Trader.Log.Info().Str("op", string(OpThink)).Str("thought", thought).Msg("agent thinking")
			return outputResponse(id, string(OpThink), "Thought recorded at "+time.Now().UTC().Format(time.RFC3339)+".")
		},
	}
}

func (t *Tools) currency() string {
	if t.Currency == "" {
		return "USD"
	}
	return t.Currency
}

func tradeArgs(args map[string]any) (string, float64, error) {
	ticker, ok := args["ticker"].(string)
	if !ok || ticker == "" {
		return "", 0, fmt.Errorf("missing ticker")
	}
	shares, ok := args["shares"].(float64)
	if !ok {
		return "", 0, fmt.Errorf("argument 'shares' is not a number but %T", args["shares"])
	}
	return ticker, shares, nil
}
