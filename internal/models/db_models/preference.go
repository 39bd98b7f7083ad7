package db_models

import (
	"github.com/google/uuid"
)

// Preference categories mirror the six axes the planner agent cares about.
const (
	PrefDestination   = "destination"
	PrefActivity      = "activity"
	PrefPrice         = "price"
	PrefAccommodation = "accommodation"
	PrefTransport     = "transport"
	PrefMotivation    = "motivation"
)

type Preference struct {
	BaseModel
	AccountID uuid.UUID `gorm:"type:uuid;index"`
	Category  string    `gorm:"index"`
	Value     string
	Status    bool `gorm:"default:true"`
}
