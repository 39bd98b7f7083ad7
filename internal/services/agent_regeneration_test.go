package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripmate/internal/models/agent_models"
	"tripmate/internal/models/db_models"
	"tripmate/internal/repositories"
	"tripmate/internal/services"
	"tripmate/pkg/triplock"
	"tripmate/pkg/utils"
)

// fakeTripStore keeps trip rows in memory with the same activation semantics
// as the gorm repository: superseded rows are flipped to Status=false, never
// removed, and at most one trip per group stays active.
type fakeTripStore struct {
	mu      sync.Mutex
	trips   []*db_models.Trip
	flights []db_models.Flight
	hotels  []db_models.Hotel
	entries []db_models.ItineraryEntry
}

func (s *fakeTripStore) GetOrCreateActiveTrip(ctx context.Context, groupID string) (*db_models.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gid, err := uuid.Parse(groupID)
	if err != nil {
		return nil, err
	}

	var active *db_models.Trip
	for _, tr := range s.trips {
		if tr.GroupID == gid && tr.Status {
			if active != nil {
				active.Status = false
			}
			active = tr
		}
	}
	if active != nil {
		return active, nil
	}

	tr := &db_models.Trip{
		BaseModel: db_models.BaseModel{ID: uuid.New()},
		GroupID:   gid,
		Status:    true,
	}
	s.trips = append(s.trips, tr)
	return tr, nil
}

func (s *fakeTripStore) FindActiveByGroup(ctx context.Context, groupID string) (*db_models.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tr := range s.trips {
		if tr.GroupID.String() == groupID && tr.Status {
			return tr, nil
		}
	}
	return nil, nil
}

func (s *fakeTripStore) FindByIdWithDetails(ctx context.Context, tripID string) (*db_models.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tr := range s.trips {
		if tr.ID.String() == tripID {
			return tr, nil
		}
	}
	return nil, nil
}

func (s *fakeTripStore) UpdateTrip(ctx context.Context, trip *db_models.Trip) error {
	return nil
}

func (s *fakeTripStore) ClearSearchResults(ctx context.Context, tripID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.flights {
		if s.flights[i].TripID.String() == tripID {
			s.flights[i].Status = false
		}
	}
	for i := range s.hotels {
		if s.hotels[i].TripID.String() == tripID {
			s.hotels[i].Status = false
		}
	}
	return nil
}

func (s *fakeTripStore) SaveFlights(ctx context.Context, flights []db_models.Flight) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flights = append(s.flights, flights...)
	return nil
}

func (s *fakeTripStore) SaveHotels(ctx context.Context, hotels []db_models.Hotel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hotels = append(s.hotels, hotels...)
	return nil
}

func (s *fakeTripStore) ReplaceItinerary(ctx context.Context, tripID uuid.UUID, entries []db_models.ItineraryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].TripID == tripID {
			s.entries[i].Status = false
		}
	}
	s.entries = append(s.entries, entries...)
	return nil
}

var _ repositories.TripRepository = (*fakeTripStore)(nil)

// Running the full generation twice for one group must leave exactly the
// second run's hotel and itinerary rows active. The first run's rows stay in
// the store with Status=false.
func TestGenerateItinerary_RegenerationSupersedesPriorRows(t *testing.T) {
	groupID := uuid.NewString()
	store := &fakeTripStore{}

	finalByRun := map[int]string{
		1: `{"destination":"Cancún","itinerary_days":[{"day":1,"activities":[{"time":"10:00","activity":"Snorkel","location":"Reef"}]}]}`,
		2: `{"destination":"Cancún","itinerary_days":[{"day":1,"activities":[{"time":"09:00","activity":"Hike","location":"Park"}]}]}`,
	}
	llm := &mockLLM{complete: func(call int, req utils.CompletionRequest) (*utils.CompletionResult, error) {
		if call%2 == 1 {
			return &utils.CompletionResult{
				Text: "Checking hotel prices first.",
				ToolCalls: []utils.LLMToolCall{
					{Name: "get_prices", Arguments: `{"type":"hotel","location":"CUN","dates":"2025-07-10,2025-07-14"}`},
				},
			}, nil
		}
		return &utils.CompletionResult{Text: finalByRun[call/2]}, nil
	}}
	client := &mockPriceClient{
		searchHotels: func(ctx context.Context, city, checkIn, checkOut string, guests, maxResults int) ([]services.HotelRecord, error) {
			return []services.HotelRecord{{Name: "Reef Inn", Location: "Cancún, MX", PricePerNight: 120, Currency: "USD"}}, nil
		},
	}
	ctxSvc := &mockContextService{buildTripContext: func(context.Context, string, string) (*agent_models.TripContext, error) {
		return validTripContext(groupID), nil
	}}

	svc := services.NewAgentService(
		ctxSvc,
		services.NewToolDispatcher(client, store, time.Second),
		llm,
		store,
		triplock.NewKeyedLock(),
		testConfig(),
	)

	first := svc.GenerateItinerary(context.Background(), groupID, "")
	require.Empty(t, first.Error)
	second := svc.GenerateItinerary(context.Background(), groupID, "")
	require.Empty(t, second.Error)

	// both runs reuse the single active trip
	require.Len(t, store.trips, 1)
	assert.True(t, store.trips[0].Status)
	assert.Equal(t, first.TripID, second.TripID)

	// hotel rows: one per run, only the second still active
	require.Len(t, store.hotels, 2)
	assert.False(t, store.hotels[0].Status)
	assert.True(t, store.hotels[1].Status)

	// itinerary rows: first run's entry deactivated, never deleted
	require.Len(t, store.entries, 2)
	byActivity := map[string]db_models.ItineraryEntry{}
	for _, e := range store.entries {
		byActivity[e.Activity] = e
	}
	require.Contains(t, byActivity, "Snorkel")
	require.Contains(t, byActivity, "Hike")
	assert.False(t, byActivity["Snorkel"].Status)
	assert.True(t, byActivity["Hike"].Status)
}
