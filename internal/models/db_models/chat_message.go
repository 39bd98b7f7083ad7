package db_models

import (
	"github.com/google/uuid"
)

type ChatMessage struct {
	BaseModel
	GroupID   uuid.UUID `gorm:"type:uuid;index"`
	AccountID uuid.UUID `gorm:"type:uuid;index"`
	Message   string
	Status    bool `gorm:"default:true"`
}
