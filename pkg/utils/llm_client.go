package utils

import (
	"context"
	"fmt"
	"strings"
)

// Message roles shared by every completion provider.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type LLMMessage struct {
	Role    string
	Content string
}

// LLMToolSchema declares one callable function to the model. Parameters is a
// JSON-schema-shaped map; each provider client translates it to its own wire
// format.
type LLMToolSchema struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
}

// LLMToolCall is a tool invocation the model asked for: the function name and
// its raw JSON argument payload.
type LLMToolCall struct {
	Name      string
	Arguments string
}

type CompletionRequest struct {
	Messages    []LLMMessage
	Tools       []LLMToolSchema
	Temperature float32
	MaxTokens   int
	ForceJSON   bool
}

type CompletionResult struct {
	Text      string
	ToolCalls []LLMToolCall
}

// CompletionClientInterface abstracts a chat-completion provider with
// function calling. The orchestrator only ever talks to this interface so the
// vendor can be swapped through configuration.
type CompletionClientInterface interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResult, error)
}

// NewCompletionClient creates a provider client based on config.
func NewCompletionClient(provider, apiKey, baseURL, model string) (CompletionClientInterface, error) {
	switch strings.ToLower(provider) {
	case "groq", "openai":
		return NewGroqCompletionClient(apiKey, baseURL, model), nil
	case "gemini":
		return NewGeminiCompletionClient(apiKey, model), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}
