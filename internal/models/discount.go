package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DiscountCode funds its discount from one side of the commission split:
// source admin codes have ClubID nil and eat into the platform's cut,
// club codes belong to a gym and eat into the owner's share.
type DiscountCode struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Code         string          `gorm:"uniqueIndex;size:50;not null" json:"code"`
	DiscountType string          `gorm:"size:10;not null" json:"discount_type"` // percent | amount
	Value        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"value"`
	ClubID       *uint           `gorm:"index" json:"club_id"`
	SourceType   string          `gorm:"size:10;not null" json:"source_type"` // admin | club
	StartDate    *time.Time      `json:"start_date"`
	EndDate      *time.Time      `json:"end_date"`
	UsageLimit   *uint           `json:"usage_limit"`
	UsedCount    uint            `gorm:"default:0" json:"used_count"`
	PerUserLimit *uint           `json:"per_user_limit"`
	IsActive     bool            `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`

	Club *Gym `gorm:"foreignKey:ClubID" json:"-"`
}

func (DiscountCode) TableName() string {
	return "discount_codes"
}

// DiscountUsage records a user redeeming a code; counted against
// PerUserLimit at validation time.
type DiscountUsage struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	DiscountID uint      `gorm:"not null;index:idx_discount_user" json:"discount_id"`
	UserID     uint      `gorm:"not null;index:idx_discount_user" json:"user_id"`
	UsedAt     time.Time `json:"used_at"`

	Discount DiscountCode `gorm:"foreignKey:DiscountID" json:"-"`
	User     User         `gorm:"foreignKey:UserID" json:"-"`
}

func (DiscountUsage) TableName() string {
	return "discount_usages"
}
