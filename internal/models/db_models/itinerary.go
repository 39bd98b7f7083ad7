package db_models

import (
	"time"

	"github.com/google/uuid"
)

// ItineraryEntry rows are regenerated wholesale on each successful plan
// generation; prior rows for the trip are deactivated, not deleted, so the
// history of earlier plans stays queryable.
type ItineraryEntry struct {
	BaseModel
	TripID        uuid.UUID `gorm:"type:uuid;index"`
	Day           time.Time
	Activity      string
	Location      string
	StartTime     *time.Time
	EndTime       *time.Time
	EstimatedCost string
	Notes         string
	Status        bool `gorm:"index"`
}
