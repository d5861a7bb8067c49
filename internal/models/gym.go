package models

import (
	"time"

	"gorm.io/gorm"
)

type Gym struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	OwnerID      uint           `gorm:"not null;index" json:"owner_id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Description  string         `gorm:"type:text" json:"description"`
	Latitude     float64        `gorm:"index" json:"latitude"`
	Longitude    float64        `gorm:"index" json:"longitude"`
	Address      string         `gorm:"size:512" json:"address"`
	WorkingHours string         `gorm:"type:text" json:"working_hours"` // JSON blob, shape owned by the client
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}

func (Gym) TableName() string {
	return "gyms"
}
