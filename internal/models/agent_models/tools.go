package agent_models

// ToolName is the closed set of capabilities the model may request. Adding a
// tool means extending the enum and every switch over it.
type ToolName int

const (
	ToolPriceSearch ToolName = iota
	ToolWebSearch
	ToolWeatherLookup
)

// Wire names as declared to the LLM provider.
const (
	wirePriceSearch   = "get_prices"
	wireWebSearch     = "search_web"
	wireWeatherLookup = "get_weather"
)

func (t ToolName) String() string {
	switch t {
	case ToolPriceSearch:
		return wirePriceSearch
	case ToolWebSearch:
		return wireWebSearch
	case ToolWeatherLookup:
		return wireWeatherLookup
	}
	return "unknown"
}

func ParseToolName(s string) (ToolName, bool) {
	switch s {
	case wirePriceSearch:
		return ToolPriceSearch, true
	case wireWebSearch:
		return ToolWebSearch, true
	case wireWeatherLookup:
		return ToolWeatherLookup, true
	}
	return 0, false
}

// ToolCall is one tool invocation requested by the model. Arguments is the
// provider-supplied JSON payload, parsed by the dispatcher.
type ToolCall struct {
	Name      ToolName
	Arguments string
}

// PriceSearchArgs is the argument schema of the get_prices tool. Dates is a
// comma-separated list of YYYY-MM-DD values; for flights Location is
// "ORIGIN-DESTINATION" IATA codes, for hotels a single city code.
type PriceSearchArgs struct {
	Type     string `json:"type"`
	Location string `json:"location"`
	Dates    string `json:"dates"`
}

// ToolResult is what one dispatched call produced: either a normalized Data
// payload, or an error description with a heuristic suggestion. Results are
// collected into a map keyed by a synthetic key such as
// "flights_MAD_CUN" or "error_get_prices".
type ToolResult struct {
	Tool       string      `json:"tool"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Timestamp  string      `json:"timestamp,omitempty"`
	Suggestion string      `json:"suggestion,omitempty"`
}

func (r ToolResult) IsError() bool {
	return r.Error != ""
}
