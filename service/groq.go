package service

import (
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/Unicus-11/quick-quill-clarity/config"
)

// groqModels maps task mode to model name. The smaller instant model serves
// summaries, the larger versatile model serves risk analysis and QA.
var groqModels = map[Mode]string{
	ModeSummary: "llama-3.1-8b-instant",
	ModeQA:      "llama-3.3-70b-versatile",
}

// groqProvider speaks Groq's OpenAI-compatible chat-completion API
type groqProvider struct {
	client openai.Client
}

func newGroqProvider(cfg *config.LLMConfig) *groqProvider {
	client := openai.NewClient(
		option.WithAPIKey(cfg.GroqAPIKey),
		option.WithBaseURL(cfg.GroqBaseURL),
	)
	return &groqProvider{client: client}
}

func (p *groqProvider) Name() string {
	return "groq"
}

func (p *groqProvider) Complete(ctx context.Context, prompt string, mode Mode) (string, error) {
	model, ok := groqModels[mode]
	if !ok {
		model = groqModels[ModeQA]
	}

	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model: openai.ChatModel(model),
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", &RequestError{Provider: p.Name(), Status: apiErr.StatusCode, Message: apiErr.Message}
		}
		return "", &RequestError{Provider: p.Name(), Message: err.Error()}
	}

	if len(resp.Choices) == 0 {
		return "", &RequestError{Provider: p.Name(), Message: "no choices returned"}
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
