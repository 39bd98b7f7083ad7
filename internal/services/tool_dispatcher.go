package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"tripmate/internal/models/agent_models"
	"tripmate/internal/models/db_models"
	"tripmate/internal/repositories"
)

type ToolDispatcherInterface interface {
	// Dispatch runs one tool call and returns the result key and payload.
	// It never returns an error: every failure is folded into an
	// error-keyed ToolResult so one bad call cannot abort its siblings.
	Dispatch(ctx context.Context, tripID uuid.UUID, call agent_models.ToolCall) (string, agent_models.ToolResult)

	// DispatchAll clears the trip's previous search results once, then runs
	// every call concurrently, each under its own timeout.
	DispatchAll(ctx context.Context, tripID uuid.UUID, calls []agent_models.ToolCall) map[string]agent_models.ToolResult
}

type ToolDispatcher struct {
	priceClient PriceSearchInterface
	tripRepo    repositories.TripRepository
	timeout     time.Duration
}

func NewToolDispatcher(priceClient PriceSearchInterface, tripRepo repositories.TripRepository, timeout time.Duration) ToolDispatcherInterface {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &ToolDispatcher{
		priceClient: priceClient,
		tripRepo:    tripRepo,
		timeout:     timeout,
	}
}

func (d *ToolDispatcher) DispatchAll(ctx context.Context, tripID uuid.UUID, calls []agent_models.ToolCall) map[string]agent_models.ToolResult {
	results := make(map[string]agent_models.ToolResult, len(calls))
	if len(calls) == 0 {
		return results
	}

	// Clearing must happen exactly once per batch, before any write, so
	// sibling searches in the same batch do not wipe each other's rows.
	hasPriceSearch := false
	for _, call := range calls {
		if call.Name == agent_models.ToolPriceSearch {
			hasPriceSearch = true
			break
		}
	}

	var clearErr error
	if hasPriceSearch {
		clearErr = d.tripRepo.ClearSearchResults(ctx, tripID.String())
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, call := range calls {
		if call.Name == agent_models.ToolPriceSearch && clearErr != nil {
			key := errorKey(call.Name)
			mu.Lock()
			results[key] = errorResult(call.Name, fmt.Sprintf("could not clear previous results: %v", clearErr))
			mu.Unlock()
			continue
		}

		wg.Add(1)
		go func(call agent_models.ToolCall) {
			defer wg.Done()

			callCtx, cancel := context.WithTimeout(ctx, d.timeout)
			defer cancel()

			key, result := d.Dispatch(callCtx, tripID, call)
			mu.Lock()
			results[key] = result
			mu.Unlock()
		}(call)
	}
	wg.Wait()

	return results
}

func (d *ToolDispatcher) Dispatch(ctx context.Context, tripID uuid.UUID, call agent_models.ToolCall) (string, agent_models.ToolResult) {
	switch call.Name {
	case agent_models.ToolPriceSearch:
		return d.dispatchPriceSearch(ctx, tripID, call)
	case agent_models.ToolWebSearch:
		return d.dispatchWebSearch(call)
	case agent_models.ToolWeatherLookup:
		return d.dispatchWeatherLookup(call)
	}
	return errorKey(call.Name), errorResult(call.Name, "unsupported tool")
}

func (d *ToolDispatcher) dispatchPriceSearch(ctx context.Context, tripID uuid.UUID, call agent_models.ToolCall) (string, agent_models.ToolResult) {
	var args agent_models.PriceSearchArgs
	if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
		return errorKey(call.Name), errorResult(call.Name, fmt.Sprintf("invalid tool arguments: %v", err))
	}

	checkIn, checkOut, hasSecondDate, err := parseDates(args.Dates)
	if err != nil {
		return errorKey(call.Name), errorResult(call.Name, err.Error())
	}

	switch args.Type {
	case "flight":
		return d.searchAndSaveFlights(ctx, tripID, call, args.Location, checkIn, checkOut, hasSecondDate)
	case "hotel":
		return d.searchAndSaveHotels(ctx, tripID, call, args.Location, checkIn, checkOut)
	}
	return errorKey(call.Name), errorResult(call.Name, fmt.Sprintf("unknown price search type %q, expected \"hotel\" or \"flight\"", args.Type))
}

// parseDates interprets the comma-separated dates argument. A single date
// defaults the checkout/return to the next calendar day.
func parseDates(raw string) (checkIn, checkOut string, hasSecond bool, err error) {
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	if len(parts) == 0 || parts[0] == "" {
		return "", "", false, fmt.Errorf("at least one date is required")
	}
	checkIn = parts[0]

	start, parseErr := time.Parse("2006-01-02", checkIn)
	if parseErr != nil {
		return "", "", false, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", checkIn)
	}

	if len(parts) > 1 && parts[1] != "" {
		checkOut = parts[1]
		if _, parseErr := time.Parse("2006-01-02", checkOut); parseErr != nil {
			return "", "", false, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", checkOut)
		}
		return checkIn, checkOut, true, nil
	}

	checkOut = start.AddDate(0, 0, 1).Format("2006-01-02")
	return checkIn, checkOut, false, nil
}

func (d *ToolDispatcher) searchAndSaveFlights(ctx context.Context, tripID uuid.UUID, call agent_models.ToolCall, location, departure, ret string, roundTrip bool) (string, agent_models.ToolResult) {
	parts := strings.SplitN(location, "-", 2)
	if len(parts) != 2 {
		return errorKey(call.Name), errorResult(call.Name,
			fmt.Sprintf("invalid flight location %q, expected 'ORIGIN-DESTINATION' IATA codes", location))
	}
	origin := strings.TrimSpace(parts[0])
	destination := strings.TrimSpace(parts[1])
	if origin == "" || destination == "" {
		return errorKey(call.Name), errorResult(call.Name,
			fmt.Sprintf("invalid flight location %q, expected 'ORIGIN-DESTINATION' IATA codes", location))
	}

	returnDate := ""
	if roundTrip {
		returnDate = ret
	}

	records, err := d.priceClient.SearchFlights(ctx, origin, destination, departure, returnDate, 1, 5)
	if err != nil {
		return errorKey(call.Name), errorResult(call.Name, err.Error())
	}

	rows := make([]db_models.Flight, 0, len(records))
	for _, r := range records {
		rows = append(rows, db_models.Flight{
			TripID:           tripID,
			Airline:          r.Airline,
			DepartureAirport: origin,
			ArrivalAirport:   destination,
			DepartureTime:    parseProviderTime(r.DepartureTime),
			ArrivalTime:      parseProviderTime(r.ArrivalTime),
			Price:            r.Price,
			Currency:         r.Currency,
			CabinClass:       r.CabinClass,
			Stops:            r.Stops,
			Status:           true,
		})
	}
	if err := d.tripRepo.SaveFlights(ctx, rows); err != nil {
		return errorKey(call.Name), errorResult(call.Name, fmt.Sprintf("could not persist flight results: %v", err))
	}

	summaries := make([]map[string]interface{}, 0, len(records))
	for _, r := range records {
		summaries = append(summaries, map[string]interface{}{
			"airline":   r.Airline,
			"departure": r.DepartureTime,
			"arrival":   r.ArrivalTime,
			"price":     fmt.Sprintf("%.2f %s", r.Price, r.Currency),
			"class":     r.CabinClass,
			"stops":     r.Stops,
		})
	}

	key := fmt.Sprintf("flights_%s_%s", origin, destination)
	return key, agent_models.ToolResult{
		Tool:      call.Name.String(),
		Data:      map[string]interface{}{"flights": summaries},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func (d *ToolDispatcher) searchAndSaveHotels(ctx context.Context, tripID uuid.UUID, call agent_models.ToolCall, city, checkIn, checkOut string) (string, agent_models.ToolResult) {
	city = strings.TrimSpace(city)
	if city == "" {
		return errorKey(call.Name), errorResult(call.Name, "hotel search requires a city code")
	}

	records, err := d.priceClient.SearchHotels(ctx, city, checkIn, checkOut, 2, 5)
	if err != nil {
		return errorKey(call.Name), errorResult(call.Name, err.Error())
	}

	rows := make([]db_models.Hotel, 0, len(records))
	for _, r := range records {
		rows = append(rows, db_models.Hotel{
			TripID:        tripID,
			Name:          r.Name,
			Location:      r.Location,
			PricePerNight: r.PricePerNight,
			Currency:      r.Currency,
			RoomType:      r.RoomType,
			Rating:        r.Rating,
			Amenities:     strings.Join(r.Amenities, ","),
			Status:        true,
		})
	}
	if err := d.tripRepo.SaveHotels(ctx, rows); err != nil {
		return errorKey(call.Name), errorResult(call.Name, fmt.Sprintf("could not persist hotel results: %v", err))
	}

	summaries := make([]map[string]interface{}, 0, len(records))
	for _, r := range records {
		summaries = append(summaries, map[string]interface{}{
			"name":      r.Name,
			"location":  r.Location,
			"price":     fmt.Sprintf("%.2f %s/night", r.PricePerNight, r.Currency),
			"room_type": r.RoomType,
			"amenities": r.Amenities,
			"rating":    r.Rating,
		})
	}

	key := fmt.Sprintf("hotels_%s", city)
	return key, agent_models.ToolResult{
		Tool:      call.Name.String(),
		Data:      map[string]interface{}{"hotels": summaries},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// Web search and weather are declared to the model but not backed by real
// providers yet. They answer with an explicit marker instead of failing so
// the loop keeps moving when the model picks them.
func (d *ToolDispatcher) dispatchWebSearch(call agent_models.ToolCall) (string, agent_models.ToolResult) {
	var args struct {
		Query string `json:"query"`
	}
	_ = json.Unmarshal([]byte(call.Arguments), &args)

	return call.Name.String(), agent_models.ToolResult{
		Tool: call.Name.String(),
		Data: map[string]interface{}{
			"status": "not_available",
			"query":  args.Query,
			"note":   "web search is not available, rely on your own knowledge",
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func (d *ToolDispatcher) dispatchWeatherLookup(call agent_models.ToolCall) (string, agent_models.ToolResult) {
	var args struct {
		Location string   `json:"location"`
		Dates    []string `json:"dates"`
	}
	_ = json.Unmarshal([]byte(call.Arguments), &args)

	return call.Name.String(), agent_models.ToolResult{
		Tool: call.Name.String(),
		Data: map[string]interface{}{
			"status":   "not_available",
			"location": args.Location,
			"note":     "live forecast is not available, plan for seasonal averages",
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func parseProviderTime(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

func errorKey(tool agent_models.ToolName) string {
	return "error_" + tool.String()
}

func errorResult(tool agent_models.ToolName, message string) agent_models.ToolResult {
	return errorResultNamed(tool.String(), message)
}

// errorResultNamed builds an error payload for a raw tool name, covering
// names outside the known tool set.
func errorResultNamed(tool, message string) agent_models.ToolResult {
	return agent_models.ToolResult{
		Tool:       tool,
		Error:      message,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Suggestion: suggestionFor(message),
	}
}

// suggestionFor keyword-matches the failure text to give the model a usable
// troubleshooting hint on its second turn.
func suggestionFor(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "unknown tool"):
		return "use one of the declared tools"
	case strings.Contains(lower, "401") || strings.Contains(lower, "auth") ||
		strings.Contains(lower, "credential") || strings.Contains(lower, "token"):
		return "check API credentials"
	case strings.Contains(lower, "date"):
		return "check date format (YYYY-MM-DD)"
	case strings.Contains(lower, "location") || strings.Contains(lower, "origin") ||
		strings.Contains(lower, "destination") || strings.Contains(lower, "city"):
		return "check location code (IATA)"
	case strings.Contains(lower, "timeout") || strings.Contains(lower, "deadline"):
		return "retry, the provider did not answer in time"
	default:
		return "retry later or adjust the search parameters"
	}
}
