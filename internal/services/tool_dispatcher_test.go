package services_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripmate/internal/models/agent_models"
	"tripmate/internal/models/db_models"
	"tripmate/internal/services"
)

func priceCall(args string) agent_models.ToolCall {
	return agent_models.ToolCall{Name: agent_models.ToolPriceSearch, Arguments: args}
}

func TestDispatch_HotelSingleDateDefaultsCheckout(t *testing.T) {
	var gotCheckIn, gotCheckOut string
	client := &mockPriceClient{
		searchHotels: func(ctx context.Context, city, checkIn, checkOut string, guests, maxResults int) ([]services.HotelRecord, error) {
			gotCheckIn, gotCheckOut = checkIn, checkOut
			return []services.HotelRecord{{Name: "Reef Inn", Location: "Cancún, MX", PricePerNight: 120, Currency: "USD"}}, nil
		},
	}
	d := services.NewToolDispatcher(client, &mockTripRepo{}, time.Second)

	key, result := d.Dispatch(context.Background(), uuid.New(), priceCall(`{"type":"hotel","location":"CUN","dates":"2025-06-01"}`))

	require.False(t, result.IsError(), result.Error)
	assert.Equal(t, "hotels_CUN", key)
	assert.Equal(t, "2025-06-01", gotCheckIn)
	assert.Equal(t, "2025-06-02", gotCheckOut)
}

func TestDispatch_FlightRoundTripPassesReturnDate(t *testing.T) {
	var gotReturn string
	client := &mockPriceClient{
		searchFlights: func(ctx context.Context, origin, destination, departureDate, returnDate string, adults, maxResults int) ([]services.FlightRecord, error) {
			gotReturn = returnDate
			assert.Equal(t, "MAD", origin)
			assert.Equal(t, "CUN", destination)
			return []services.FlightRecord{{Airline: "IB", Price: 540.5, Currency: "USD", Stops: 1}}, nil
		},
	}

	var savedFlights []db_models.Flight
	repo := &mockTripRepo{saveFlights: func(ctx context.Context, flights []db_models.Flight) error {
		savedFlights = flights
		return nil
	}}
	d := services.NewToolDispatcher(client, repo, time.Second)

	key, result := d.Dispatch(context.Background(), uuid.New(), priceCall(`{"type":"flight","location":"MAD-CUN","dates":"2025-07-10,2025-07-14"}`))

	require.False(t, result.IsError(), result.Error)
	assert.Equal(t, "flights_MAD_CUN", key)
	assert.Equal(t, "2025-07-14", gotReturn)
	require.Len(t, savedFlights, 1)
	assert.True(t, savedFlights[0].Status)
	assert.Equal(t, "IB", savedFlights[0].Airline)
}

func TestDispatch_MissingDatesIsValidationError(t *testing.T) {
	d := services.NewToolDispatcher(&mockPriceClient{}, &mockTripRepo{}, time.Second)

	key, result := d.Dispatch(context.Background(), uuid.New(), priceCall(`{"type":"hotel","location":"CUN","dates":""}`))

	assert.Equal(t, "error_get_prices", key)
	require.True(t, result.IsError())
	assert.Contains(t, result.Suggestion, "date")
}

func TestDispatch_MalformedFlightLocationIsCapturedError(t *testing.T) {
	d := services.NewToolDispatcher(&mockPriceClient{}, &mockTripRepo{}, time.Second)

	key, result := d.Dispatch(context.Background(), uuid.New(), priceCall(`{"type":"flight","location":"PARIS","dates":"2025-06-01"}`))

	assert.Equal(t, "error_get_prices", key)
	require.True(t, result.IsError())
	assert.Contains(t, result.Error, "ORIGIN-DESTINATION")
	assert.Equal(t, "check location code (IATA)", result.Suggestion)
}

func TestDispatch_BlankFlightLocationPartIsCapturedError(t *testing.T) {
	client := &mockPriceClient{
		searchFlights: func(ctx context.Context, origin, destination, departureDate, returnDate string, adults, maxResults int) ([]services.FlightRecord, error) {
			t.Fatalf("provider must not be called with origin %q", origin)
			return nil, nil
		},
	}
	d := services.NewToolDispatcher(client, &mockTripRepo{}, time.Second)

	key, result := d.Dispatch(context.Background(), uuid.New(), priceCall(`{"type":"flight","location":" -CUN","dates":"2025-06-01"}`))

	assert.Equal(t, "error_get_prices", key)
	require.True(t, result.IsError())
	assert.Contains(t, result.Error, "ORIGIN-DESTINATION")
}

func TestDispatchAll_OneFailureDoesNotBlockSiblings(t *testing.T) {
	client := &mockPriceClient{
		searchHotels: func(ctx context.Context, city, checkIn, checkOut string, guests, maxResults int) ([]services.HotelRecord, error) {
			return []services.HotelRecord{{Name: "Reef Inn"}}, nil
		},
	}
	d := services.NewToolDispatcher(client, &mockTripRepo{}, time.Second)

	results := d.DispatchAll(context.Background(), uuid.New(), []agent_models.ToolCall{
		priceCall(`{"type":"flight","location":"PARIS","dates":"2025-06-01"}`),
		priceCall(`{"type":"hotel","location":"CUN","dates":"2025-06-01"}`),
	})

	require.Len(t, results, 2)
	require.Contains(t, results, "error_get_prices")
	require.Contains(t, results, "hotels_CUN")
	assert.False(t, results["hotels_CUN"].IsError())
}

func TestDispatchAll_ClearsPreviousResultsOncePerBatch(t *testing.T) {
	var cleared int32
	repo := &mockTripRepo{clearSearchResults: func(ctx context.Context, tripID string) error {
		atomic.AddInt32(&cleared, 1)
		return nil
	}}
	client := &mockPriceClient{
		searchFlights: func(ctx context.Context, origin, destination, departureDate, returnDate string, adults, maxResults int) ([]services.FlightRecord, error) {
			return nil, nil
		},
		searchHotels: func(ctx context.Context, city, checkIn, checkOut string, guests, maxResults int) ([]services.HotelRecord, error) {
			return nil, nil
		},
	}
	d := services.NewToolDispatcher(client, repo, time.Second)

	d.DispatchAll(context.Background(), uuid.New(), []agent_models.ToolCall{
		priceCall(`{"type":"flight","location":"MAD-CUN","dates":"2025-07-10"}`),
		priceCall(`{"type":"hotel","location":"CUN","dates":"2025-07-10"}`),
	})

	assert.Equal(t, int32(1), atomic.LoadInt32(&cleared))
}

func TestDispatchAll_StubToolsDoNotClearResults(t *testing.T) {
	repo := &mockTripRepo{clearSearchResults: func(ctx context.Context, tripID string) error {
		t.Fatal("stub tools must not clear trip search results")
		return nil
	}}
	d := services.NewToolDispatcher(&mockPriceClient{}, repo, time.Second)

	results := d.DispatchAll(context.Background(), uuid.New(), []agent_models.ToolCall{
		{Name: agent_models.ToolWebSearch, Arguments: `{"query":"best beaches in Mexico"}`},
		{Name: agent_models.ToolWeatherLookup, Arguments: `{"location":"Cancún"}`},
	})

	require.Len(t, results, 2)
	for _, r := range results {
		assert.False(t, r.IsError())
		assert.NotNil(t, r.Data)
	}
}

func TestDispatch_AuthFailureSuggestsCredentials(t *testing.T) {
	client := &mockPriceClient{
		searchHotels: func(ctx context.Context, city, checkIn, checkOut string, guests, maxResults int) ([]services.HotelRecord, error) {
			return nil, &services.ProviderError{StatusCode: 401, Endpoint: "oauth2/token", Message: "authentication failed"}
		},
	}
	d := services.NewToolDispatcher(client, &mockTripRepo{}, time.Second)

	_, result := d.Dispatch(context.Background(), uuid.New(), priceCall(`{"type":"hotel","location":"CUN","dates":"2025-06-01"}`))

	require.True(t, result.IsError())
	assert.Equal(t, "check API credentials", result.Suggestion)
	assert.NotEmpty(t, result.Timestamp)
}
