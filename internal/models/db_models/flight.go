package db_models

import (
	"time"

	"github.com/google/uuid"
)

type Flight struct {
	BaseModel
	TripID           uuid.UUID `gorm:"type:uuid;index"`
	Airline          string
	DepartureAirport string
	ArrivalAirport   string
	DepartureTime    *time.Time
	ArrivalTime      *time.Time
	Price            float64
	Currency         string `gorm:"size:3"`
	CabinClass       string
	Stops            int
	Status           bool `gorm:"index"`
}
