package analyzer

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// Completer sends one prompt to the completion service and returns the generated text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Params are the fixed sampling settings sent with every request.
type Params struct {
	Model       string
	Temperature float32
	MaxTokens   int
	TopP        float32
}

func DefaultParams(model string) Params {
	return Params{
		Model:       model,
		Temperature: 1,
		MaxTokens:   2048,
		TopP:        1,
	}
}

type openAICompleter struct {
	client *openai.Client
	params Params
}

// NewOpenAICompleter builds the chat-completions client once at start-up.
func NewOpenAICompleter(apiKey, baseURL string, params Params) (Completer, error) {
	if apiKey == "" {
		return nil, errors.New("completion service API key is required")
	}
	if params.Model == "" {
		return nil, errors.New("completion service model is required")
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &openAICompleter{
		client: openai.NewClientWithConfig(cfg),
		params: params,
	}, nil
}

func (c *openAICompleter) Complete(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.params.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.params.Temperature,
		MaxTokens:   c.params.MaxTokens,
		TopP:        c.params.TopP,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in response")
	}

	return resp.Choices[0].Message.Content, nil
}
