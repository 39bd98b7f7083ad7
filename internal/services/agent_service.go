package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"tripmate/internal/config"
	"tripmate/internal/models/agent_models"
	"tripmate/internal/models/db_models"
	"tripmate/internal/models/response_models"
	"tripmate/internal/repositories"
	"tripmate/pkg/triplock"
	"tripmate/pkg/utils"
)

// synthesisTemperature is used for the second completion. The first call is
// exploratory and free to roam; the final one must emit schema-conformant
// JSON, so it runs close to deterministic.
const synthesisTemperature = 0.2

type AgentServiceInterface interface {
	// GenerateItinerary runs the full planning loop for a group and
	// reconciles the result into the group's active trip. It is a total
	// function: every outcome, including validation and provider failures,
	// is expressed in the returned AgentResponse rather than an error.
	GenerateItinerary(ctx context.Context, groupID, requirement string) *response_models.AgentResponse

	// ProcessMessage is the conversational variant: same context assembly
	// and completion flow, but nothing is persisted and the raw model text
	// is returned as-is.
	ProcessMessage(ctx context.Context, groupID, message string) (string, error)
}

type AgentService struct {
	contextService ContextServiceInterface
	dispatcher     ToolDispatcherInterface
	llm            utils.CompletionClientInterface
	tripRepo       repositories.TripRepository
	locks          triplock.KeyedLocker

	temperature float32
	maxTokens   int
	llmTimeout  time.Duration
}

func NewAgentService(
	contextService ContextServiceInterface,
	dispatcher ToolDispatcherInterface,
	llm utils.CompletionClientInterface,
	tripRepo repositories.TripRepository,
	locks triplock.KeyedLocker,
	cfg config.Config,
) AgentServiceInterface {
	return &AgentService{
		contextService: contextService,
		dispatcher:     dispatcher,
		llm:            llm,
		tripRepo:       tripRepo,
		locks:          locks,
		temperature:    cfg.LLMTemperature,
		maxTokens:      cfg.LLMMaxTokens,
		llmTimeout:     cfg.LLMTimeout,
	}
}

func (a *AgentService) GenerateItinerary(ctx context.Context, groupID, requirement string) (resp *response_models.AgentResponse) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("agent orchestration panic for group %s: %v", groupID, r)
			resp = &response_models.AgentResponse{Error: fmt.Sprintf("itinerary generation failed: %v", r)}
		}
	}()

	tripCtx, err := a.contextService.BuildTripContext(ctx, groupID, requirement)
	if err != nil {
		return &response_models.AgentResponse{Error: fmt.Sprintf("could not assemble trip context: %v", err)}
	}
	if err := validateTripContext(tripCtx); err != nil {
		return &response_models.AgentResponse{Error: err.Error()}
	}

	// Two runs for the same group clear-then-rewrite the same trip rows, so
	// they are serialized here rather than racing last-writer-wins.
	a.locks.Lock(groupID)
	defer a.locks.Unlock(groupID)

	trip, err := a.tripRepo.GetOrCreateActiveTrip(ctx, groupID)
	if err != nil {
		return &response_models.AgentResponse{Error: fmt.Sprintf("could not prepare trip: %v", err)}
	}

	finalText, usedTools, err := a.runConversation(ctx, tripCtx, trip)
	if err != nil {
		return &response_models.AgentResponse{TripID: trip.ID.String(), Error: err.Error()}
	}

	warning := a.reconcile(ctx, trip, finalText)

	reasoning := "Itinerary generated from group preferences"
	if usedTools {
		reasoning = "Itinerary generated from live price searches and group preferences"
	}

	return &response_models.AgentResponse{
		TripID:    trip.ID.String(),
		Itinerary: finalText,
		Reasoning: reasoning,
		Warning:   warning,
	}
}

// ProcessMessage runs a single conversational completion without tool
// schemas, so nothing is searched or persisted.
func (a *AgentService) ProcessMessage(ctx context.Context, groupID, message string) (string, error) {
	tripCtx, err := a.contextService.BuildTripContext(ctx, groupID, message)
	if err != nil {
		return "", err
	}
	if err := validateTripContext(tripCtx); err != nil {
		return "", utils.ErrNoParticipants
	}

	chatSummary := a.contextService.SummarizeChat(tripCtx.ChatHistory)
	analysis := a.contextService.AnalyzeConversation(tripCtx.ChatHistory)
	prompt := BuildItineraryPrompt(tripCtx, chatSummary, analysis)

	callCtx, cancel := context.WithTimeout(ctx, a.llmTimeout)
	defer cancel()

	result, err := a.llm.Complete(callCtx, utils.CompletionRequest{
		Messages: []utils.LLMMessage{
			{Role: utils.RoleSystem, Content: SystemPrompt},
			{Role: utils.RoleUser, Content: prompt},
		},
		Temperature: a.temperature,
		MaxTokens:   a.maxTokens,
	})
	if err != nil {
		log.Printf("conversational completion failed for group %s: %v", groupID, err)
		return "", utils.ErrAgentFailure
	}

	return result.Text, nil
}

// runConversation drives the two-phase exchange: first completion with tool
// schemas attached, then, if tools were requested, dispatch and a second
// JSON-only completion with the results folded in.
func (a *AgentService) runConversation(ctx context.Context, tripCtx *agent_models.TripContext, trip *db_models.Trip) (string, bool, error) {
	chatSummary := a.contextService.SummarizeChat(tripCtx.ChatHistory)
	analysis := a.contextService.AnalyzeConversation(tripCtx.ChatHistory)
	prompt := BuildItineraryPrompt(tripCtx, chatSummary, analysis)

	firstCtx, cancel := context.WithTimeout(ctx, a.llmTimeout)
	defer cancel()

	first, err := a.llm.Complete(firstCtx, utils.CompletionRequest{
		Messages: []utils.LLMMessage{
			{Role: utils.RoleSystem, Content: SystemPrompt},
			{Role: utils.RoleUser, Content: prompt},
		},
		Tools:       ToolSchemas(),
		Temperature: a.temperature,
		MaxTokens:   a.maxTokens,
	})
	if err != nil {
		return "", false, fmt.Errorf("planner completion failed: %w", err)
	}

	if len(first.ToolCalls) == 0 {
		return first.Text, false, nil
	}

	results := a.executeToolCalls(ctx, trip.ID, first.ToolCalls)

	serialized, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		serialized = []byte(fmt.Sprintf("%v", results))
	}

	secondCtx, cancel2 := context.WithTimeout(ctx, a.llmTimeout)
	defer cancel2()

	final, err := a.llm.Complete(secondCtx, utils.CompletionRequest{
		Messages: []utils.LLMMessage{
			{Role: utils.RoleSystem, Content: SystemPrompt},
			{Role: utils.RoleUser, Content: prompt},
			{Role: utils.RoleAssistant, Content: first.Text},
			{Role: utils.RoleUser, Content: BuildFollowUpPrompt(string(serialized))},
		},
		Temperature: synthesisTemperature,
		MaxTokens:   a.maxTokens,
		ForceJSON:   true,
	})
	if err != nil {
		return "", false, fmt.Errorf("synthesis completion failed: %w", err)
	}

	return final.Text, true, nil
}

// executeToolCalls maps provider tool calls onto the closed tool set and
// dispatches the known ones. A name outside the set produces an error entry
// instead of being dropped, so the model sees what went wrong.
func (a *AgentService) executeToolCalls(ctx context.Context, tripID uuid.UUID, rawCalls []utils.LLMToolCall) map[string]agent_models.ToolResult {
	results := make(map[string]agent_models.ToolResult)

	var known []agent_models.ToolCall
	for _, raw := range rawCalls {
		name, ok := agent_models.ParseToolName(raw.Name)
		if !ok {
			results["error_"+raw.Name] = errorResultNamed(raw.Name, fmt.Sprintf("unknown tool %q", raw.Name))
			continue
		}
		known = append(known, agent_models.ToolCall{Name: name, Arguments: raw.Arguments})
	}

	for key, result := range a.dispatcher.DispatchAll(ctx, tripID, known) {
		results[key] = result
	}
	return results
}

// reconcile folds the model's final JSON back into trip state. A parse
// failure skips persistence entirely; a write failure is reported as a
// warning so the caller still gets the generated text.
func (a *AgentService) reconcile(ctx context.Context, trip *db_models.Trip, finalText string) string {
	jsonText, ok := utils.ExtractJSONObject(finalText)
	if !ok {
		return ""
	}

	var plan agent_models.GeneratedPlan
	if err := json.Unmarshal([]byte(jsonText), &plan); err != nil {
		log.Printf("final answer is not valid JSON, skipping reconciliation: %v", err)
		return ""
	}
	if len(plan.ItineraryDays) == 0 {
		return ""
	}

	if plan.Destination != "" {
		trip.Destination = plan.Destination
	}
	if start := parsePlanDate(plan.StartDate); start != nil {
		trip.StartDate = start
	}
	if end := parsePlanDate(plan.EndDate); end != nil {
		trip.EndDate = end
	}
	trip.RawPlan = datatypes.JSON(jsonText)

	if err := a.tripRepo.UpdateTrip(ctx, trip); err != nil {
		log.Printf("could not update trip %s: %v", trip.ID, err)
		return fmt.Sprintf("itinerary generated but trip update failed: %v", err)
	}

	baseDate := time.Now().Truncate(24 * time.Hour)
	if trip.StartDate != nil {
		baseDate = *trip.StartDate
	}

	var entries []db_models.ItineraryEntry
	for _, day := range plan.ItineraryDays {
		dayNum := day.Day
		if dayNum < 1 {
			dayNum = 1
		}
		date := baseDate.AddDate(0, 0, dayNum-1)

		for _, act := range day.Activities {
			start, end := parseActivityTimes(act.Time)
			entries = append(entries, db_models.ItineraryEntry{
				TripID:        trip.ID,
				Day:           date,
				Activity:      act.Activity,
				Location:      act.Location,
				StartTime:     start,
				EndTime:       end,
				EstimatedCost: act.EstimatedCost,
				Notes:         act.Notes,
				Status:        true,
			})
		}
	}

	if err := a.tripRepo.ReplaceItinerary(ctx, trip.ID, entries); err != nil {
		log.Printf("could not replace itinerary for trip %s: %v", trip.ID, err)
		return fmt.Sprintf("itinerary generated but could not be saved: %v", err)
	}

	return ""
}

func validateTripContext(tripCtx *agent_models.TripContext) error {
	if tripCtx.GroupID == "" {
		return fmt.Errorf("trip context is missing a group id")
	}
	if len(tripCtx.Participants) == 0 {
		return fmt.Errorf("group has no participants with stored preferences")
	}
	for _, p := range tripCtx.Participants {
		if p.AccountID == "" || p.Name == "" {
			return fmt.Errorf("participant is missing id or name")
		}
		if !p.HasPreferences() {
			return fmt.Errorf("participant %s has no preferences", p.Name)
		}
	}
	return nil
}

func parsePlanDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &t
}

// parseActivityTimes parses "HH:MM" into a start time and defaults the end
// to two hours later. Unparsable times become nil rather than failing the
// whole reconciliation.
func parseActivityTimes(raw string) (*time.Time, *time.Time) {
	t, err := time.Parse("15:04", raw)
	if err != nil {
		return nil, nil
	}
	end := t.Add(2 * time.Hour)
	return &t, &end
}
