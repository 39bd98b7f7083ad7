package agent_models

// TripContext is the ephemeral input bundle for one orchestration run. It is
// built per request by the context service and discarded afterwards.
type TripContext struct {
	GroupID      string
	GroupName    string
	Participants []Participant
	ChatHistory  []ChatMessage
	Requirement  string
}

// Participant carries one member's preference profile across the six
// categories the planner balances against each other.
type Participant struct {
	AccountID      string
	Name           string
	Destinations   []string
	Activities     []string
	Prices         []string
	Accommodations []string
	Transport      []string
	Motivations    []string
}

// HasPreferences reports whether at least one category is non-empty. A
// participant with nothing in any category cannot contribute to planning and
// is rejected before the agent runs.
func (p Participant) HasPreferences() bool {
	return len(p.Destinations) > 0 ||
		len(p.Activities) > 0 ||
		len(p.Prices) > 0 ||
		len(p.Accommodations) > 0 ||
		len(p.Transport) > 0 ||
		len(p.Motivations) > 0
}

type ChatMessage struct {
	AccountID string
	Author    string
	Message   string
	SentAt    int64
}

// ConversationAnalysis is the keyword-level read of the chat window that gets
// embedded in the prompt alongside the raw messages.
type ConversationAnalysis struct {
	Destinations  []string
	Dates         []string
	BudgetHints   []string
	ActivityHints []string
}
