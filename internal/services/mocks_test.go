package services_test

import (
	"context"

	"github.com/google/uuid"

	"tripmate/internal/models/agent_models"
	"tripmate/internal/models/db_models"
	"tripmate/internal/repositories"
	"tripmate/internal/services"
	"tripmate/pkg/utils"
)

// ---- mock trip repository --------------------------------------------------

type mockTripRepo struct {
	getOrCreateActiveTrip func(ctx context.Context, groupID string) (*db_models.Trip, error)
	findActiveByGroup     func(ctx context.Context, groupID string) (*db_models.Trip, error)
	findByIdWithDetails   func(ctx context.Context, tripID string) (*db_models.Trip, error)
	updateTrip            func(ctx context.Context, trip *db_models.Trip) error
	clearSearchResults    func(ctx context.Context, tripID string) error
	saveFlights           func(ctx context.Context, flights []db_models.Flight) error
	saveHotels            func(ctx context.Context, hotels []db_models.Hotel) error
	replaceItinerary      func(ctx context.Context, tripID uuid.UUID, entries []db_models.ItineraryEntry) error
}

func (m *mockTripRepo) GetOrCreateActiveTrip(ctx context.Context, groupID string) (*db_models.Trip, error) {
	return m.getOrCreateActiveTrip(ctx, groupID)
}
func (m *mockTripRepo) FindActiveByGroup(ctx context.Context, groupID string) (*db_models.Trip, error) {
	if m.findActiveByGroup != nil {
		return m.findActiveByGroup(ctx, groupID)
	}
	return nil, nil
}
func (m *mockTripRepo) FindByIdWithDetails(ctx context.Context, tripID string) (*db_models.Trip, error) {
	if m.findByIdWithDetails != nil {
		return m.findByIdWithDetails(ctx, tripID)
	}
	return nil, nil
}
func (m *mockTripRepo) UpdateTrip(ctx context.Context, trip *db_models.Trip) error {
	if m.updateTrip != nil {
		return m.updateTrip(ctx, trip)
	}
	return nil
}
func (m *mockTripRepo) ClearSearchResults(ctx context.Context, tripID string) error {
	if m.clearSearchResults != nil {
		return m.clearSearchResults(ctx, tripID)
	}
	return nil
}
func (m *mockTripRepo) SaveFlights(ctx context.Context, flights []db_models.Flight) error {
	if m.saveFlights != nil {
		return m.saveFlights(ctx, flights)
	}
	return nil
}
func (m *mockTripRepo) SaveHotels(ctx context.Context, hotels []db_models.Hotel) error {
	if m.saveHotels != nil {
		return m.saveHotels(ctx, hotels)
	}
	return nil
}
func (m *mockTripRepo) ReplaceItinerary(ctx context.Context, tripID uuid.UUID, entries []db_models.ItineraryEntry) error {
	if m.replaceItinerary != nil {
		return m.replaceItinerary(ctx, tripID, entries)
	}
	return nil
}

var _ repositories.TripRepository = (*mockTripRepo)(nil)

// ---- mock price search client ----------------------------------------------

type mockPriceClient struct {
	searchFlights func(ctx context.Context, origin, destination, departureDate, returnDate string, adults, maxResults int) ([]services.FlightRecord, error)
	searchHotels  func(ctx context.Context, city, checkIn, checkOut string, guests, maxResults int) ([]services.HotelRecord, error)
}

func (m *mockPriceClient) SearchFlights(ctx context.Context, origin, destination, departureDate, returnDate string, adults, maxResults int) ([]services.FlightRecord, error) {
	return m.searchFlights(ctx, origin, destination, departureDate, returnDate, adults, maxResults)
}
func (m *mockPriceClient) SearchHotels(ctx context.Context, city, checkIn, checkOut string, guests, maxResults int) ([]services.HotelRecord, error) {
	return m.searchHotels(ctx, city, checkIn, checkOut, guests, maxResults)
}

var _ services.PriceSearchInterface = (*mockPriceClient)(nil)

// ---- mock completion client ------------------------------------------------

type mockLLM struct {
	calls    int
	requests []utils.CompletionRequest
	complete func(call int, req utils.CompletionRequest) (*utils.CompletionResult, error)
}

func (m *mockLLM) Complete(ctx context.Context, req utils.CompletionRequest) (*utils.CompletionResult, error) {
	m.calls++
	m.requests = append(m.requests, req)
	return m.complete(m.calls, req)
}

var _ utils.CompletionClientInterface = (*mockLLM)(nil)

// ---- mock context service --------------------------------------------------

type mockContextService struct {
	buildTripContext func(ctx context.Context, groupID, requirement string) (*agent_models.TripContext, error)
}

func (m *mockContextService) BuildTripContext(ctx context.Context, groupID, requirement string) (*agent_models.TripContext, error) {
	return m.buildTripContext(ctx, groupID, requirement)
}
func (m *mockContextService) AnalyzeConversation(messages []agent_models.ChatMessage) agent_models.ConversationAnalysis {
	return agent_models.ConversationAnalysis{}
}
func (m *mockContextService) SummarizeChat(messages []agent_models.ChatMessage) string {
	if len(messages) == 0 {
		return services.NoConversationMarker
	}
	return "chat summary"
}

var _ services.ContextServiceInterface = (*mockContextService)(nil)

// ---- mock tool dispatcher --------------------------------------------------

type mockDispatcher struct {
	dispatched  [][]agent_models.ToolCall
	dispatchAll func(ctx context.Context, tripID uuid.UUID, calls []agent_models.ToolCall) map[string]agent_models.ToolResult
}

func (m *mockDispatcher) Dispatch(ctx context.Context, tripID uuid.UUID, call agent_models.ToolCall) (string, agent_models.ToolResult) {
	return call.Name.String(), agent_models.ToolResult{Tool: call.Name.String()}
}
func (m *mockDispatcher) DispatchAll(ctx context.Context, tripID uuid.UUID, calls []agent_models.ToolCall) map[string]agent_models.ToolResult {
	m.dispatched = append(m.dispatched, calls)
	if m.dispatchAll != nil {
		return m.dispatchAll(ctx, tripID, calls)
	}
	return map[string]agent_models.ToolResult{}
}

var _ services.ToolDispatcherInterface = (*mockDispatcher)(nil)
