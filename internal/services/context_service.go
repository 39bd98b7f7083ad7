package services

import (
	"context"
	"regexp"
	"strings"

	"tripmate/internal/models/agent_models"
	"tripmate/internal/models/db_models"
	"tripmate/internal/repositories"
	"tripmate/pkg/utils"
)

const (
	chatFetchLimit  = 50
	chatWindowLimit = 20

	// NoConversationMarker stands in for the chat window when the group has
	// no usable history, so the prompt never contains an empty section.
	NoConversationMarker = "No prior group conversation."
)

// travel-related keywords used to prioritize chat messages for the prompt
var travelKeywords = []string{
	"trip", "travel", "flight", "fly", "hotel", "stay", "beach", "mountain",
	"hike", "hiking", "budget", "cheap", "expensive", "visit", "destination",
	"vacation", "holiday", "resort", "tour", "itinerary", "book", "airport",
	"weekend", "date", "when", "where", "go",
}

var (
	datePattern = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)

	budgetPattern = regexp.MustCompile(`(?i)\b(budget|cheap|affordable|expensive|luxury|mid-range|low[- ]cost|\$\d+|\d+\s?(usd|eur|dollars|euros))\b`)

	activityPattern = regexp.MustCompile(`(?i)\b(hik\w+|surf\w*|div\w+|beach\w*|museum\w*|night ?life|shopping|food|restaurant\w*|party\w*|ski\w*|snorkel\w*|climb\w*|swim\w*|camp\w*)\b`)

	// Capitalized word runs as a rough proper-noun heuristic for destination
	// mentions, filtered through the stopword list below. Sentence-leading
	// words match too, so the heuristic over-reports rather than misses.
	// Unicode class keeps accented city names like Cancún intact.
	destinationPattern = regexp.MustCompile(`\p{Lu}\p{Ll}+(?:\s\p{Lu}\p{Ll}+)*`)
)

// non-destination capitalized words the heuristic should ignore
var destinationStopwords = map[string]bool{
	"i": true, "the": true, "we": true, "ok": true, "yes": true, "no": true,
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
	"january": true, "february": true, "march": true, "april": true,
	"may": true, "june": true, "july": true, "august": true,
	"september": true, "october": true, "november": true, "december": true,
}

type ContextServiceInterface interface {
	// BuildTripContext assembles everything one orchestration run needs:
	// group name, participant preference profiles, and a bounded chat
	// window. Participants without any stored preferences are dropped.
	BuildTripContext(ctx context.Context, groupID, requirement string) (*agent_models.TripContext, error)

	// AnalyzeConversation extracts destinations, dates, budget phrases and
	// activity phrases from a chat window by keyword heuristics.
	AnalyzeConversation(messages []agent_models.ChatMessage) agent_models.ConversationAnalysis

	// SummarizeChat renders the filtered window as prompt text.
	SummarizeChat(messages []agent_models.ChatMessage) string
}

type ContextService struct {
	groupRepo   repositories.GroupRepository
	accountRepo repositories.AccountRepository
	prefRepo    repositories.PreferenceRepository
	chatRepo    repositories.ChatRepository
	fetchLimit  int
}

func NewContextService(
	groupRepo repositories.GroupRepository,
	accountRepo repositories.AccountRepository,
	prefRepo repositories.PreferenceRepository,
	chatRepo repositories.ChatRepository,
	fetchLimit int,
) ContextServiceInterface {
	if fetchLimit <= 0 {
		fetchLimit = chatFetchLimit
	}
	return &ContextService{
		groupRepo:   groupRepo,
		accountRepo: accountRepo,
		prefRepo:    prefRepo,
		chatRepo:    chatRepo,
		fetchLimit:  fetchLimit,
	}
}

func (c *ContextService) BuildTripContext(ctx context.Context, groupID, requirement string) (*agent_models.TripContext, error) {
	group, err := c.groupRepo.FindById(ctx, groupID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if group == nil {
		return nil, utils.ErrGroupNotFound
	}

	members, err := c.groupRepo.ListActiveMembers(ctx, groupID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	memberIDs := make([]string, 0, len(members))
	for _, m := range members {
		memberIDs = append(memberIDs, m.AccountID.String())
	}

	participants, err := c.buildParticipants(ctx, memberIDs)
	if err != nil {
		return nil, err
	}

	history, err := c.buildChatWindow(ctx, groupID)
	if err != nil {
		return nil, err
	}

	return &agent_models.TripContext{
		GroupID:      groupID,
		GroupName:    group.Name,
		Participants: participants,
		ChatHistory:  history,
		Requirement:  requirement,
	}, nil
}

func (c *ContextService) buildParticipants(ctx context.Context, memberIDs []string) ([]agent_models.Participant, error) {
	if len(memberIDs) == 0 {
		return nil, nil
	}

	accounts, err := c.accountRepo.FindByIds(ctx, memberIDs)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	prefs, err := c.prefRepo.FindActiveByAccounts(ctx, memberIDs)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	byAccount := make(map[string][]db_models.Preference)
	for _, p := range prefs {
		key := p.AccountID.String()
		byAccount[key] = append(byAccount[key], p)
	}

	var participants []agent_models.Participant
	for _, a := range accounts {
		participant := agent_models.Participant{
			AccountID: a.ID.String(),
			Name:      a.Name,
		}
		for _, p := range byAccount[a.ID.String()] {
			switch p.Category {
			case db_models.PrefDestination:
				participant.Destinations = append(participant.Destinations, p.Value)
			case db_models.PrefActivity:
				participant.Activities = append(participant.Activities, p.Value)
			case db_models.PrefPrice:
				participant.Prices = append(participant.Prices, p.Value)
			case db_models.PrefAccommodation:
				participant.Accommodations = append(participant.Accommodations, p.Value)
			case db_models.PrefTransport:
				participant.Transport = append(participant.Transport, p.Value)
			case db_models.PrefMotivation:
				participant.Motivations = append(participant.Motivations, p.Value)
			}
		}

		// members with nothing stored cannot contribute to planning
		if participant.HasPreferences() {
			participants = append(participants, participant)
		}
	}

	return participants, nil
}

// buildChatWindow fetches the newest messages and narrows them to a bounded
// window, preferring travel-related ones. When no message matches any travel
// keyword it falls back to the most recent messages so the window is never
// artificially empty.
func (c *ContextService) buildChatWindow(ctx context.Context, groupID string) ([]agent_models.ChatMessage, error) {
	raw, err := c.chatRepo.FindRecentByGroup(ctx, groupID, c.fetchLimit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if len(raw) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(raw))
	for _, m := range raw {
		ids = append(ids, m.AccountID.String())
	}
	names := make(map[string]string)
	if accounts, err := c.accountRepo.FindByIds(ctx, ids); err == nil {
		for _, a := range accounts {
			names[a.ID.String()] = a.Name
		}
	}

	all := make([]agent_models.ChatMessage, 0, len(raw))
	for _, m := range raw {
		all = append(all, agent_models.ChatMessage{
			AccountID: m.AccountID.String(),
			Author:    names[m.AccountID.String()],
			Message:   m.Message,
			SentAt:    m.CreatedAt,
		})
	}

	var relevant []agent_models.ChatMessage
	for _, m := range all {
		if matchesTravelKeyword(m.Message) {
			relevant = append(relevant, m)
		}
	}
	if len(relevant) == 0 {
		relevant = all
	}

	if len(relevant) > chatWindowLimit {
		relevant = relevant[len(relevant)-chatWindowLimit:]
	}
	return relevant, nil
}

func matchesTravelKeyword(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range travelKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func (c *ContextService) SummarizeChat(messages []agent_models.ChatMessage) string {
	if len(messages) == 0 {
		return NoConversationMarker
	}

	var sb strings.Builder
	for _, m := range messages {
		author := m.Author
		if author == "" {
			author = m.AccountID
		}
		sb.WriteString(author)
		sb.WriteString(": ")
		sb.WriteString(m.Message)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (c *ContextService) AnalyzeConversation(messages []agent_models.ChatMessage) agent_models.ConversationAnalysis {
	analysis := agent_models.ConversationAnalysis{}

	seenDest := make(map[string]bool)
	seenDate := make(map[string]bool)
	seenBudget := make(map[string]bool)
	seenActivity := make(map[string]bool)

	for _, m := range messages {
		for _, d := range datePattern.FindAllString(m.Message, -1) {
			if !seenDate[d] {
				seenDate[d] = true
				analysis.Dates = append(analysis.Dates, d)
			}
		}
		for _, b := range budgetPattern.FindAllString(m.Message, -1) {
			key := strings.ToLower(b)
			if !seenBudget[key] {
				seenBudget[key] = true
				analysis.BudgetHints = append(analysis.BudgetHints, b)
			}
		}
		for _, a := range activityPattern.FindAllString(m.Message, -1) {
			key := strings.ToLower(a)
			if !seenActivity[key] {
				seenActivity[key] = true
				analysis.ActivityHints = append(analysis.ActivityHints, a)
			}
		}
		for _, d := range destinationPattern.FindAllString(m.Message, -1) {
			if destinationStopwords[strings.ToLower(d)] {
				continue
			}
			if !seenDest[d] {
				seenDest[d] = true
				analysis.Destinations = append(analysis.Destinations, d)
			}
		}
	}

	return analysis
}
