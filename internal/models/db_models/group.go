package db_models

import (
	"github.com/google/uuid"
)

type Group struct {
	BaseModel
	Name   string
	HostID uuid.UUID `gorm:"type:uuid"`
	Status bool      `gorm:"default:true"`

	Members []GroupMember
	Trips   []Trip
}

type GroupMember struct {
	BaseModel
	GroupID   uuid.UUID `gorm:"type:uuid;index"`
	AccountID uuid.UUID `gorm:"type:uuid;index"`
	Status    bool      `gorm:"default:true"`
}
