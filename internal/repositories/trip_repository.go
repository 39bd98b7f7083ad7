package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tripmate/internal/models/db_models"
)

type TripRepository interface {
	// GetOrCreateActiveTrip returns the group's active trip, creating one
	// when none exists. Any stale active trips for the group are
	// deactivated so at most one remains.
	GetOrCreateActiveTrip(ctx context.Context, groupID string) (*db_models.Trip, error)
	FindActiveByGroup(ctx context.Context, groupID string) (*db_models.Trip, error)
	FindByIdWithDetails(ctx context.Context, tripID string) (*db_models.Trip, error)
	UpdateTrip(ctx context.Context, trip *db_models.Trip) error

	// ClearSearchResults deactivates every flight and hotel row attached to
	// the trip, making room for a fresh set from the next tool run.
	ClearSearchResults(ctx context.Context, tripID string) error
	SaveFlights(ctx context.Context, flights []db_models.Flight) error
	SaveHotels(ctx context.Context, hotels []db_models.Hotel) error

	// ReplaceItinerary deactivates the trip's current itinerary entries and
	// inserts the new ones in a single transaction.
	ReplaceItinerary(ctx context.Context, tripID uuid.UUID, entries []db_models.ItineraryEntry) error
}

type tripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

func (t *tripRepository) GetOrCreateActiveTrip(ctx context.Context, groupID string) (*db_models.Trip, error) {
	gid, err := uuid.Parse(groupID)
	if err != nil {
		return nil, err
	}

	var out db_models.Trip
	err = t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var trips []db_models.Trip
		if err := tx.Where("group_id = ? AND status = ?", gid, true).
			Order("created_at DESC").
			Find(&trips).Error; err != nil {
			return err
		}

		if len(trips) > 0 {
			// keep the newest, retire any duplicates
			if len(trips) > 1 {
				staleIDs := make([]uuid.UUID, 0, len(trips)-1)
				for _, stale := range trips[1:] {
					staleIDs = append(staleIDs, stale.ID)
				}
				if err := tx.Model(&db_models.Trip{}).
					Where("id IN ?", staleIDs).
					Update("status", false).Error; err != nil {
					return err
				}
			}
			out = trips[0]
			return nil
		}

		out = db_models.Trip{GroupID: gid, Status: true}
		return tx.Create(&out).Error
	})

	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (t *tripRepository) FindActiveByGroup(ctx context.Context, groupID string) (*db_models.Trip, error) {
	var trip db_models.Trip
	err := t.db.WithContext(ctx).
		Where("group_id = ? AND status = ?", groupID, true).
		Order("created_at DESC").
		First(&trip).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &trip, nil
}

func (t *tripRepository) FindByIdWithDetails(ctx context.Context, tripID string) (*db_models.Trip, error) {
	var trip db_models.Trip
	err := t.db.WithContext(ctx).
		Preload("Flights", "status = ?", true).
		Preload("Hotels", "status = ?", true).
		Preload("Itinerary", func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", true).Order("day ASC, start_time ASC")
		}).
		First(&trip, "id = ?", tripID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &trip, nil
}

func (t *tripRepository) UpdateTrip(ctx context.Context, trip *db_models.Trip) error {
	return t.db.WithContext(ctx).Save(trip).Error
}

func (t *tripRepository) ClearSearchResults(ctx context.Context, tripID string) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&db_models.Flight{}).
			Where("trip_id = ? AND status = ?", tripID, true).
			Update("status", false).Error; err != nil {
			return err
		}
		return tx.Model(&db_models.Hotel{}).
			Where("trip_id = ? AND status = ?", tripID, true).
			Update("status", false).Error
	})
}

func (t *tripRepository) SaveFlights(ctx context.Context, flights []db_models.Flight) error {
	if len(flights) == 0 {
		return nil
	}
	return t.db.WithContext(ctx).Create(&flights).Error
}

func (t *tripRepository) SaveHotels(ctx context.Context, hotels []db_models.Hotel) error {
	if len(hotels) == 0 {
		return nil
	}
	return t.db.WithContext(ctx).Create(&hotels).Error
}

func (t *tripRepository) ReplaceItinerary(ctx context.Context, tripID uuid.UUID, entries []db_models.ItineraryEntry) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&db_models.ItineraryEntry{}).
			Where("trip_id = ? AND status = ?", tripID, true).
			Update("status", false).Error; err != nil {
			return err
		}

		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})
}
