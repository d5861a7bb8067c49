package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawRequest moves through pending -> approved/rejected ->
// completed/rejected. The wallet is only debited on completion; the
// request-time balance check is advisory and funds are not reserved.
type WithdrawRequest struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	WalletID      uint            `gorm:"not null;index" json:"wallet_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	Status        string          `gorm:"size:20;not null;index;default:'pending'" json:"status"`
	AdminMessage  string          `gorm:"type:text" json:"admin_message"`
	ProcessedByID *uint           `json:"processed_by"`
	ProcessedAt   *time.Time      `json:"processed_at"`
	CompletedAt   *time.Time      `json:"completed_at"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	User        User   `gorm:"foreignKey:UserID" json:"-"`
	Wallet      Wallet `gorm:"foreignKey:WalletID" json:"-"`
	ProcessedBy *User  `gorm:"foreignKey:ProcessedByID" json:"-"`
}

func (WithdrawRequest) TableName() string {
	return "withdraw_requests"
}
