package agent_models

// GeneratedPlan is the JSON document the model is instructed to return on its
// final turn. Only ItineraryDays is mandatory for reconciliation; everything
// else is carried through to the caller when present.
type GeneratedPlan struct {
	Destination           string    `json:"destination,omitempty"`
	StartDate             string    `json:"start_date,omitempty"`
	EndDate               string    `json:"end_date,omitempty"`
	ItineraryDays         []PlanDay `json:"itinerary_days"`
	TotalEstimatedCost    string    `json:"total_estimated_cost,omitempty"`
	Recommendations       []string  `json:"recommendations,omitempty"`
	WeatherConsiderations string    `json:"weather_considerations,omitempty"`
}

type PlanDay struct {
	Day        int            `json:"day"`
	Activities []PlanActivity `json:"activities"`
}

type PlanActivity struct {
	Time          string `json:"time"`
	Activity      string `json:"activity"`
	Location      string `json:"location"`
	EstimatedCost string `json:"estimated_cost,omitempty"`
	Notes         string `json:"notes,omitempty"`
}
