package utils

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const defaultGroqBaseURL = "https://api.groq.com/openai/v1"

// GroqCompletionClient talks to any OpenAI-compatible chat-completion
// endpoint. The default base URL points at Groq, which is what the planner
// runs against in production.
type GroqCompletionClient struct {
	client *openai.Client
	model  string
}

func NewGroqCompletionClient(apiKey, baseURL, model string) CompletionClientInterface {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL == "" {
		baseURL = defaultGroqBaseURL
	}
	cfg.BaseURL = baseURL

	if model == "" {
		model = "llama-3.1-8b-instant"
	}

	return &GroqCompletionClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (c *GroqCompletionClient) Complete(ctx context.Context, req CompletionRequest) (*CompletionResult, error) {
	chatReq := c.buildRequest(req)

	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no completion choices returned")
	}

	msg := resp.Choices[0].Message
	result := &CompletionResult{Text: msg.Content}
	for _, tc := range msg.ToolCalls {
		result.ToolCalls = append(result.ToolCalls, LLMToolCall{
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}

	return result, nil
}

func (c *GroqCompletionClient) buildRequest(req CompletionRequest) openai.ChatCompletionRequest {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	chatReq := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	for _, t := range req.Tools {
		chatReq.Tools = append(chatReq.Tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}

	if req.ForceJSON {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	return chatReq
}
