package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase carries two independent lifecycle axes: payment status and
// gym-side verification status. All monetary fields are fixed at
// creation and never recomputed:
//
//	TotalAmount      package price at purchase time
//	CommissionAmount platform's cut after any admin-funded discount
//	NetAmount        owner's share (TotalAmount - CommissionAmount at
//	                 creation, minus club-funded discount)
//	FinalAmount      what the buyer actually owed after discount
type Purchase struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	UserID             uint            `gorm:"not null;index" json:"user_id"`
	PackageID          uint            `gorm:"not null;index" json:"package_id"`
	DiscountID         *uint           `gorm:"index" json:"discount_id"`
	BuyerCode          *string         `gorm:"size:100;index" json:"buyer_code"`
	PaymentStatus      string          `gorm:"size:20;not null;index;default:'pending'" json:"payment_status"`
	VerificationStatus string          `gorm:"size:20;not null;index;default:'pending'" json:"verification_status"`
	TotalAmount        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	CommissionAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"commission_amount"`
	NetAmount          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"net_amount"`
	FinalAmount        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"final_amount"`
	PurchaseDate       time.Time       `gorm:"autoCreateTime" json:"purchase_date"`
	ExpireDate         *time.Time      `json:"expire_date"`
	VerifiedAt         *time.Time      `json:"verified_at"`
	VerifiedByID       *uint           `json:"verified_by"`

	User       User          `gorm:"foreignKey:UserID" json:"-"`
	Package    Package       `gorm:"foreignKey:PackageID" json:"-"`
	Discount   *DiscountCode `gorm:"foreignKey:DiscountID" json:"-"`
	VerifiedBy *User         `gorm:"foreignKey:VerifiedByID" json:"-"`
}

func (Purchase) TableName() string {
	return "purchases"
}
