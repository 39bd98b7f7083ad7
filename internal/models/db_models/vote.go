package db_models

import (
	"github.com/google/uuid"
)

type Vote struct {
	BaseModel
	TripID    uuid.UUID `gorm:"type:uuid;index"`
	AccountID uuid.UUID `gorm:"type:uuid;index"`
	Choice    string
	Status    bool `gorm:"default:true"`
}
