package services

import (
	"fmt"
	"strings"

	"tripmate/internal/models/agent_models"
	"tripmate/pkg/utils"
)

// SystemPrompt frames every planner conversation.
const SystemPrompt = "You are an expert travel planner helping groups design trips together."

// outputSchema is the JSON document the model must produce on its final
// turn. The reconciliation step depends on the itinerary_days shape.
const outputSchema = `{
    "destination": "string",
    "start_date": "YYYY-MM-DD",
    "end_date": "YYYY-MM-DD",
    "itinerary_days": [
        {
            "day": 1,
            "activities": [
                {
                    "time": "HH:MM",
                    "activity": "string",
                    "location": "string",
                    "estimated_cost": "string",
                    "notes": "string"
                }
            ]
        }
    ],
    "total_estimated_cost": "string",
    "recommendations": ["string"],
    "weather_considerations": "string"
}`

// BuildItineraryPrompt renders the full instruction prompt for the first
// completion. Pure function: same inputs always produce the same text.
func BuildItineraryPrompt(tripCtx *agent_models.TripContext, chatSummary string, analysis agent_models.ConversationAnalysis) string {
	var sb strings.Builder

	sb.WriteString("GROUP: ")
	sb.WriteString(tripCtx.GroupName)
	sb.WriteString("\n\nPARTICIPANTS:\n")
	for _, p := range tripCtx.Participants {
		sb.WriteString(formatParticipant(p))
	}

	sb.WriteString("\nRECENT GROUP CONVERSATION:\n")
	sb.WriteString(chatSummary)
	sb.WriteString("\n")

	if hints := formatAnalysis(analysis); hints != "" {
		sb.WriteString("\nSIGNALS DETECTED IN THE CONVERSATION:\n")
		sb.WriteString(hints)
	}

	sb.WriteString("\n")
	if tripCtx.Requirement != "" {
		sb.WriteString(tripCtx.Requirement)
	} else {
		sb.WriteString("Please generate a detailed itinerary considering the interests and preferences of the group.")
	}

	sb.WriteString(`

AVAILABLE TOOLS:
1. search_web: searches for up-to-date information about destinations, attractions, hotels and flights
2. get_weather: gets the weather forecast for a location
3. get_prices: gets current hotel and flight prices

Your task is to:
1. Analyze the interests and preferences of every participant
2. Use the available tools to gather current information
3. Create a detailed itinerary that:
   - Balances the interests of all participants
   - Includes specific activities with times
   - Accounts for logistics and transfer times
   - Suggests lodging and transport options backed by real searches
   - Provides up-to-date cost estimates

Structure your final answer as JSON with the following fields:
`)
	sb.WriteString(outputSchema)

	return sb.String()
}

func formatParticipant(p agent_models.Participant) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "- %s:\n", p.Name)
	writeCategory(&sb, "Destinations", p.Destinations)
	writeCategory(&sb, "Activities", p.Activities)
	writeCategory(&sb, "Budget", p.Prices)
	writeCategory(&sb, "Accommodation", p.Accommodations)
	writeCategory(&sb, "Transport", p.Transport)
	writeCategory(&sb, "Motivations", p.Motivations)
	return sb.String()
}

func writeCategory(sb *strings.Builder, label string, values []string) {
	if len(values) == 0 {
		return
	}
	fmt.Fprintf(sb, "  %s: %s\n", label, strings.Join(values, ", "))
}

func formatAnalysis(a agent_models.ConversationAnalysis) string {
	var sb strings.Builder
	if len(a.Destinations) > 0 {
		fmt.Fprintf(&sb, "- Mentioned destinations: %s\n", strings.Join(a.Destinations, ", "))
	}
	if len(a.Dates) > 0 {
		fmt.Fprintf(&sb, "- Mentioned dates: %s\n", strings.Join(a.Dates, ", "))
	}
	if len(a.BudgetHints) > 0 {
		fmt.Fprintf(&sb, "- Budget hints: %s\n", strings.Join(a.BudgetHints, ", "))
	}
	if len(a.ActivityHints) > 0 {
		fmt.Fprintf(&sb, "- Activity hints: %s\n", strings.Join(a.ActivityHints, ", "))
	}
	return sb.String()
}

// BuildFollowUpPrompt embeds the serialized tool results into the synthetic
// user turn that precedes the second, JSON-only completion.
func BuildFollowUpPrompt(serializedResults string) string {
	return fmt.Sprintf(`Based on the searches performed, here are the results:

%s

Please produce the final itinerary incorporating these flight and hotel options,
making sure to select the best choices for the group's budget and preferences.
Answer with only the JSON document described earlier.`, serializedResults)
}

// ToolSchemas declares the callable tools to the LLM provider.
func ToolSchemas() []utils.LLMToolSchema {
	return []utils.LLMToolSchema{
		{
			Name:        agent_models.ToolPriceSearch.String(),
			Description: "Gets current hotel or flight prices",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"type": map[string]interface{}{
						"type": "string",
						"enum": []string{"hotel", "flight"},
					},
					"location": map[string]interface{}{
						"type":        "string",
						"description": "For flights: 'ORIGIN-DESTINATION' (IATA codes). For hotels: a city code",
					},
					"dates": map[string]interface{}{
						"type":        "string",
						"description": "Dates in 'YYYY-MM-DD' format, comma separated",
					},
				},
				"required": []string{"type", "location", "dates"},
			},
		},
		{
			Name:        agent_models.ToolWebSearch.String(),
			Description: "Searches the web for up-to-date travel information",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"query": map[string]interface{}{
						"type": "string",
					},
				},
				"required": []string{"query"},
			},
		},
		{
			Name:        agent_models.ToolWeatherLookup.String(),
			Description: "Gets the weather forecast for a location",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"location": map[string]interface{}{
						"type": "string",
					},
					"dates": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "string",
						},
					},
				},
				"required": []string{"location"},
			},
		},
	}
}
