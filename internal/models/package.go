package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Package is a sellable gym membership. Price and commission rate are
// copied onto the purchase at creation time, so edits here never touch
// existing purchases.
type Package struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	GymID          uint            `gorm:"not null;index" json:"gym_id"`
	Title          string          `gorm:"size:100;not null" json:"title"`
	Description    string          `gorm:"type:text" json:"description"`
	Price          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	DurationDays   int             `gorm:"not null" json:"duration_days"`
	CommissionRate float64         `gorm:"not null;default:0.05" json:"commission_rate"` // 0.05 = 5%
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`

	Gym Gym `gorm:"foreignKey:GymID" json:"-"`
}

func (Package) TableName() string {
	return "packages"
}
