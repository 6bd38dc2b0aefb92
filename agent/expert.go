package agent

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// Expert represents a chat with one specialist: a model configuration, an
// optional tool library, and a running conversation.
type Expert struct {
	Name        string
	Description string
	ModelName   string
	Config      *genai.GenerateContentConfig
	Library     Library
	Log         zerolog.Logger

	chat *genai.Chat
}

// Start opens the chat session for this expert.
func (e *Expert) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, e.ModelName, e.Config, nil)
	if err != nil {
		return fmt.Errorf("starting expert %s: %w", e.Name, err)
	}
	e.chat = chat
	return nil
}

// Ask sends parts to the expert and resolves any function calls it makes,
// looping until the expert produces text. maxCalls bounds the loop so a
// confused model cannot spin forever.
func (e *Expert) Ask(ctx context.Context, maxCalls int, parts ...*genai.Part) (*genai.Content, error) {
	for turn := 0; ; turn++ {
		resp, err := e.chat.Send(ctx, parts...)
		if err != nil {
			return nil, fmt.Errorf("asking expert %s: %w", e.Name, err)
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			return nil, fmt.Errorf("no response from expert %s", e.Name)
		}
		content := resp.Candidates[0].Content

		calls := functionCalls(content)
		if len(calls) == 0 {
			return content, nil
		}
		if e.Library == nil {
			return nil, fmt.Errorf("expert %s doesn't know how to make function calls", e.Name)
		}
		if turn >= maxCalls {
			return nil, fmt.Errorf("expert %s exceeded %d tool calls", e.Name, maxCalls)
		}

		parts = parts[:0]
		for _, call := range calls {
			e.Log.Debug().Str("expert", e.Name).Str("function", call.Name).
				Interface("args", call.Args).Msg("function call")
			parts = append(parts, &genai.Part{FunctionResponse: e.Library(ctx, call)})
		}
	}
}

func functionCalls(content *genai.Content) []*genai.FunctionCall {
	var calls []*genai.FunctionCall
	for _, part := range content.Parts {
		if part.FunctionCall != nil {
			calls = append(calls, part.FunctionCall)
		}
	}
	return calls
}

// Declaration returns the function declaration other experts use to consult
// this one.
func (e *Expert) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        e.Name,
		Description: e.Description,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"question": {
					Type:        genai.TypeString,
					Description: "The question to ask the expert.",
				},
			},
			Required: []string{"question"},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "Expert's response.",
		},
	}
}

// Call asks this expert a question on behalf of another expert.
func (e *Expert) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	question, ok := args["question"].(string)
	if !ok {
		return errorResponse(id, e.Name, fmt.Errorf("invalid question type %T, expected string", args["question"]))
	}

	response, err := e.Ask(ctx, defaultMaxCalls, &genai.Part{Text: question})
	if err != nil {
		return errorResponse(id, e.Name, fmt.Errorf("consulting the expert failed: %w", err))
	}

	answer := textOf(response)
	e.Log.Info().Str("expert", e.Name).Str("question", question).Str("answer", answer).Msg("consulted")
	return outputResponse(id, e.Name, answer)
}

func textOf(content *genai.Content) string {
	var text string
	for _, part := range content.Parts {
		text += part.Text
	}
	return text
}

const defaultMaxCalls = 20
