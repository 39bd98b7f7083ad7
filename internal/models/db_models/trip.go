package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Trip is the aggregate root for one generated plan. At most one trip per
// group carries Status=true; regeneration deactivates the previous one
// instead of deleting it.
type Trip struct {
	BaseModel
	GroupID     uuid.UUID `gorm:"type:uuid;index"`
	Destination string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      bool           `gorm:"index"`
	RawPlan     datatypes.JSON `gorm:"type:jsonb"`

	Flights   []Flight
	Hotels    []Hotel
	Itinerary []ItineraryEntry
}
