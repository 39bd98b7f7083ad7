package db_models

import (
	"github.com/google/uuid"
)

type Hotel struct {
	BaseModel
	TripID        uuid.UUID `gorm:"type:uuid;index"`
	Name          string
	Location      string
	PricePerNight float64
	Currency      string `gorm:"size:3"`
	RoomType      string
	Rating        float64
	Amenities     string
	Status        bool `gorm:"index"`
}
