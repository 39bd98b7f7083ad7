package utils

import (
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toolSchemaFixture() LLMToolSchema {
	return LLMToolSchema{
		Name:        "get_prices",
		Description: "Search flight or hotel prices.",
		Parameters: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"type": map[string]interface{}{
					"type":        "string",
					"description": "What to search for.",
					"enum":        []string{"hotel", "flight"},
				},
				"location": map[string]interface{}{
					"type":        "string",
					"description": "Where to search.",
				},
			},
			"required": []string{"type", "location"},
		},
	}
}

func TestGroqBuildRequest_MapsMessagesAndTools(t *testing.T) {
	client := &GroqCompletionClient{model: "llama-3.1-8b-instant"}

	chatReq := client.buildRequest(CompletionRequest{
		Messages: []LLMMessage{
			{Role: RoleSystem, Content: "You plan trips."},
			{Role: RoleUser, Content: "Plan one."},
		},
		Tools:       []LLMToolSchema{toolSchemaFixture()},
		Temperature: 0.7,
		MaxTokens:   4096,
	})

	assert.Equal(t, "llama-3.1-8b-instant", chatReq.Model)
	require.Len(t, chatReq.Messages, 2)
	assert.Equal(t, "system", chatReq.Messages[0].Role)
	assert.Equal(t, "Plan one.", chatReq.Messages[1].Content)
	assert.Equal(t, float32(0.7), chatReq.Temperature)
	assert.Equal(t, 4096, chatReq.MaxTokens)

	require.Len(t, chatReq.Tools, 1)
	assert.Equal(t, openai.ToolTypeFunction, chatReq.Tools[0].Type)
	assert.Equal(t, "get_prices", chatReq.Tools[0].Function.Name)
	assert.Nil(t, chatReq.ResponseFormat)
}

func TestGroqBuildRequest_ForceJSONSetsResponseFormat(t *testing.T) {
	client := &GroqCompletionClient{model: "llama-3.1-8b-instant"}

	chatReq := client.buildRequest(CompletionRequest{
		Messages:  []LLMMessage{{Role: RoleUser, Content: "Answer in JSON."}},
		ForceJSON: true,
	})

	require.NotNil(t, chatReq.ResponseFormat)
	assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, chatReq.ResponseFormat.Type)
	assert.Empty(t, chatReq.Tools)
}

func TestToGenaiSchema_PropertiesEnumAndRequired(t *testing.T) {
	schema := toGenaiSchema(toolSchemaFixture().Parameters)

	require.NotNil(t, schema)
	require.Len(t, schema.Properties, 2)
	assert.Equal(t, []string{"hotel", "flight"}, schema.Properties["type"].Enum)
	assert.Equal(t, "Where to search.", schema.Properties["location"].Description)
	assert.Equal(t, []string{"type", "location"}, schema.Required)
}

func TestToGenaiSchema_AcceptsUntypedSlices(t *testing.T) {
	schema := toGenaiSchema(map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"kind": map[string]interface{}{
				"type": "string",
				"enum": []interface{}{"hotel", "flight"},
			},
		},
		"required": []interface{}{"kind"},
	})

	require.NotNil(t, schema)
	assert.Equal(t, []string{"hotel", "flight"}, schema.Properties["kind"].Enum)
	assert.Equal(t, []string{"kind"}, schema.Required)
}

func TestFlattenMessages_JoinsRoles(t *testing.T) {
	got := flattenMessages([]LLMMessage{
		{Role: RoleSystem, Content: "You plan trips."},
		{Role: RoleUser, Content: "Where should we go?"},
		{Role: RoleAssistant, Content: "Let me search."},
	})

	assert.Contains(t, got, "You plan trips.")
	assert.Contains(t, got, "User: Where should we go?")
	assert.Contains(t, got, "Assistant: Let me search.")
	assert.NotContains(t, got, "System:")
}

func TestNewCompletionClient_ProviderSelection(t *testing.T) {
	client, err := NewCompletionClient("groq", "key", "", "")
	require.NoError(t, err)
	assert.IsType(t, &GroqCompletionClient{}, client)

	client, err = NewCompletionClient("Gemini", "key", "", "")
	require.NoError(t, err)
	assert.IsType(t, &GeminiCompletionClient{}, client)

	_, err = NewCompletionClient("anthropic", "key", "", "")
	assert.Error(t, err)
}
