package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Default values for OpenAIConfig.
const (
	DefaultModel       = "gpt-4o"
	DefaultTemperature = 0.1
	DefaultMaxRetries  = 2
)

// OpenAIConfig configures an OpenAI-compatible chat completion client.
type OpenAIConfig struct {
	// APIKey authenticates against the completion API.
	APIKey string

	// Model is the model identifier. Defaults to DefaultModel.
	Model string

	// BaseURL overrides the API endpoint. Empty means the official OpenAI URL.
	BaseURL string

	// Temperature controls sampling randomness. Defaults to DefaultTemperature.
	Temperature float32

	// MaxRetries bounds how often a failed completion call is re-attempted.
	// Defaults to DefaultMaxRetries. This is the only retry policy in the
	// system; brokerage calls are never retried.
	MaxRetries int
}

func (c OpenAIConfig) withDefaults() OpenAIConfig {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Temperature == 0 {
		c.Temperature = DefaultTemperature
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	return c
}

// OpenAI is a Provider backed by the OpenAI chat completions API.
type OpenAI struct {
	client *openai.Client
	config OpenAIConfig
}

// Compile-time interface check.
var _ Provider = (*OpenAI)(nil)

// NewOpenAI creates an OpenAI provider from the given config.
func NewOpenAI(cfg OpenAIConfig) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("provider: api key is required")
	}
	cfg = cfg.withDefaults()

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &OpenAI{
		client: openai.NewClientWithConfig(clientCfg),
		config: cfg,
	}, nil
}

// ModelName implements Provider.
func (p *OpenAI) ModelName() string {
	return p.config.Model
}

// Complete implements Provider. Transient failures are retried up to
// MaxRetries times with a short linear backoff; context cancellation
// aborts the retry loop.
func (p *OpenAI) Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	oaiReq := p.buildRequest(req)

	var lastErr error
	for attempt := 0; attempt <= p.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return CompletionResponse{}, ctx.Err()
			case <-time.After(time.Duration(attempt) * 250 * time.Millisecond):
			}
		}

		resp, err := p.client.CreateChatCompletion(ctx, oaiReq)
		if err != nil {
			if ctx.Err() != nil {
				return CompletionResponse{}, ctx.Err()
			}
			lastErr = err
			continue
		}

		if len(resp.Choices) == 0 {
			lastErr = errors.New("provider: no choices returned")
			continue
		}
		return parseResponse(resp.Choices[0]), nil
	}

	return CompletionResponse{}, fmt.Errorf("provider: completion failed after %d attempts: %w",
		p.config.MaxRetries+1, lastErr)
}

// buildRequest converts a CompletionRequest into the OpenAI wire shape.
func (p *OpenAI) buildRequest(req CompletionRequest) openai.ChatCompletionRequest {
	messages := make([]openai.ChatCompletionMessage, len(req.Messages))
	for i, m := range req.Messages {
		msg := openai.ChatCompletionMessage{
			Role:       string(m.Role),
			Content:    m.Content,
			ToolCallID: m.ToolID,
		}
		for _, tc := range m.ToolCalls {
			msg.ToolCalls = append(msg.ToolCalls, openai.ToolCall{
				ID:   tc.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      tc.Name,
					Arguments: string(tc.Arguments),
				},
			})
		}
		messages[i] = msg
	}

	oaiReq := openai.ChatCompletionRequest{
		Model:       p.config.Model,
		Messages:    messages,
		Temperature: p.config.Temperature,
	}

	for _, t := range req.Tools {
		oaiReq.Tools = append(oaiReq.Tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}

	return oaiReq
}

// parseResponse converts an OpenAI choice into a CompletionResponse.
func parseResponse(choice openai.ChatCompletionChoice) CompletionResponse {
	resp := CompletionResponse{
		Content:      choice.Message.Content,
		FinishReason: FinishReason(choice.FinishReason),
	}
	for _, tc := range choice.Message.ToolCalls {
		resp.ToolCalls = append(resp.ToolCalls, ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: json.RawMessage(tc.Function.Arguments),
		})
	}
	return resp
}
