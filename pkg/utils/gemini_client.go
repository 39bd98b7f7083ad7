package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiCompletionClient is the alternative provider behind
// CompletionClientInterface. Gemini has no role-tagged history on the
// single-shot API we use, so messages are flattened into one prompt.
type GeminiCompletionClient struct {
	apiKey string
	model  string
}

func NewGeminiCompletionClient(apiKey, model string) CompletionClientInterface {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &GeminiCompletionClient{apiKey: apiKey, model: model}
}

func (c *GeminiCompletionClient) Complete(ctx context.Context, req CompletionRequest) (*CompletionResult, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(c.model)
	if req.Temperature > 0 {
		model.SetTemperature(req.Temperature)
	}
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	if req.ForceJSON && len(req.Tools) == 0 {
		model.ResponseMIMEType = "application/json"
	}

	if len(req.Tools) > 0 {
		decls := make([]*genai.FunctionDeclaration, 0, len(req.Tools))
		for _, t := range req.Tools {
			decls = append(decls, &genai.FunctionDeclaration{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  toGenaiSchema(t.Parameters),
			})
		}
		model.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(flattenMessages(req.Messages)))
	if err != nil {
		return nil, fmt.Errorf("gemini generation failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no candidates returned")
	}

	result := &CompletionResult{}
	for _, part := range resp.Candidates[0].Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			result.Text += string(p)
		case genai.FunctionCall:
			args, mErr := json.Marshal(p.Args)
			if mErr != nil {
				return nil, fmt.Errorf("failed to encode function call args: %w", mErr)
			}
			result.ToolCalls = append(result.ToolCalls, LLMToolCall{
				Name:      p.Name,
				Arguments: string(args),
			})
		}
	}

	return result, nil
}

func flattenMessages(messages []LLMMessage) string {
	var sb strings.Builder
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			sb.WriteString(m.Content)
		case RoleAssistant:
			sb.WriteString("Assistant: " + m.Content)
		default:
			sb.WriteString("User: " + m.Content)
		}
		sb.WriteString("\n\n")
	}
	return strings.TrimSpace(sb.String())
}

// toGenaiSchema converts a JSON-schema style parameter map into the genai
// schema type. Only the subset the tool schemas actually use is handled.
func toGenaiSchema(params map[string]interface{}) *genai.Schema {
	schema := &genai.Schema{Type: genai.TypeObject}

	props, _ := params["properties"].(map[string]interface{})
	if len(props) > 0 {
		schema.Properties = make(map[string]*genai.Schema, len(props))
		for name, raw := range props {
			prop, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			ps := &genai.Schema{Type: genai.TypeString}
			if desc, ok := prop["description"].(string); ok {
				ps.Description = desc
			}
			if enum, ok := prop["enum"].([]string); ok {
				ps.Enum = enum
			} else if enumAny, ok := prop["enum"].([]interface{}); ok {
				for _, e := range enumAny {
					if s, ok := e.(string); ok {
						ps.Enum = append(ps.Enum, s)
					}
				}
			}
			schema.Properties[name] = ps
		}
	}

	if reqd, ok := params["required"].([]string); ok {
		schema.Required = reqd
	} else if reqdAny, ok := params["required"].([]interface{}); ok {
		for _, r := range reqdAny {
			if s, ok := r.(string); ok {
				schema.Required = append(schema.Required, s)
			}
		}
	}

	return schema
}
