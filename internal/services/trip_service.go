package services

import (
	"context"
	"time"

	"tripmate/internal/models/db_models"
	"tripmate/internal/models/response_models"
	"tripmate/internal/repositories"
	"tripmate/pkg/utils"
)

type TripServiceInterface interface {
	GetActiveTrip(ctx context.Context, groupID string) (*response_models.TripResponse, error)
	GetTripDetail(ctx context.Context, tripID string) (*response_models.TripDetailResponse, error)
}

type TripService struct {
	tripRepo  repositories.TripRepository
	groupRepo repositories.GroupRepository
}

func NewTripService(tripRepo repositories.TripRepository, groupRepo repositories.GroupRepository) TripServiceInterface {
	return &TripService{
		tripRepo:  tripRepo,
		groupRepo: groupRepo,
	}
}

func (t *TripService) GetActiveTrip(ctx context.Context, groupID string) (*response_models.TripResponse, error) {
	group, err := t.groupRepo.FindById(ctx, groupID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if group == nil {
		return nil, utils.ErrGroupNotFound
	}

	trip, err := t.tripRepo.FindActiveByGroup(ctx, groupID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}

	resp := toTripResponse(trip)
	return &resp, nil
}

func (t *TripService) GetTripDetail(ctx context.Context, tripID string) (*response_models.TripDetailResponse, error) {
	trip, err := t.tripRepo.FindByIdWithDetails(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}

	detail := &response_models.TripDetailResponse{
		Trip:      toTripResponse(trip),
		Flights:   make([]response_models.FlightResponse, 0, len(trip.Flights)),
		Hotels:    make([]response_models.HotelResponse, 0, len(trip.Hotels)),
		Itinerary: make([]response_models.ItineraryEntryResponse, 0, len(trip.Itinerary)),
	}

	for _, f := range trip.Flights {
		detail.Flights = append(detail.Flights, response_models.FlightResponse{
			ID:               f.ID.String(),
			Airline:          f.Airline,
			DepartureAirport: f.DepartureAirport,
			ArrivalAirport:   f.ArrivalAirport,
			DepartureTime:    formatTimePtr(f.DepartureTime, time.RFC3339),
			ArrivalTime:      formatTimePtr(f.ArrivalTime, time.RFC3339),
			Price:            f.Price,
			Currency:         f.Currency,
			CabinClass:       f.CabinClass,
			Stops:            f.Stops,
		})
	}

	for _, h := range trip.Hotels {
		detail.Hotels = append(detail.Hotels, response_models.HotelResponse{
			ID:            h.ID.String(),
			Name:          h.Name,
			Location:      h.Location,
			PricePerNight: h.PricePerNight,
			Currency:      h.Currency,
			RoomType:      h.RoomType,
			Rating:        h.Rating,
			Amenities:     h.Amenities,
		})
	}

	for _, e := range trip.Itinerary {
		detail.Itinerary = append(detail.Itinerary, response_models.ItineraryEntryResponse{
			ID:            e.ID.String(),
			Day:           e.Day.Format("2006-01-02"),
			Activity:      e.Activity,
			Location:      e.Location,
			StartTime:     formatTimePtr(e.StartTime, "15:04"),
			EndTime:       formatTimePtr(e.EndTime, "15:04"),
			EstimatedCost: e.EstimatedCost,
			Notes:         e.Notes,
		})
	}

	return detail, nil
}

func toTripResponse(trip *db_models.Trip) response_models.TripResponse {
	return response_models.TripResponse{
		ID:          trip.ID.String(),
		GroupID:     trip.GroupID.String(),
		Destination: trip.Destination,
		StartDate:   formatTimePtr(trip.StartDate, "2006-01-02"),
		EndDate:     formatTimePtr(trip.EndDate, "2006-01-02"),
		Active:      trip.Status,
	}
}

func formatTimePtr(t *time.Time, layout string) string {
	if t == nil {
		return ""
	}
	return t.Format(layout)
}
