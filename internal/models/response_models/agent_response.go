package response_models

// AgentResponse is the caller-facing result of one orchestration run. The
// orchestrator never raises past its boundary: every run produces one of
// these, with Error populated instead of an itinerary on failure. Warning
// carries non-fatal problems (for example the itinerary text came back but
// could not be persisted) so callers can surface partial results.
type AgentResponse struct {
	TripID    string `json:"trip_id,omitempty"`
	Itinerary string `json:"itinerary"`
	Reasoning string `json:"reasoning,omitempty"`
	Warning   string `json:"warning,omitempty"`
	Error     string `json:"error,omitempty"`
}
