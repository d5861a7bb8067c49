package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet is the gym owner's ledger account, 1:1 with an owner user.
// Balance never goes negative; debits are guarded at mutation time.
type Wallet struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OwnerID   uint            `gorm:"uniqueIndex;not null" json:"owner_id"`
	Balance   decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}

func (Wallet) TableName() string {
	return "wallets"
}

// AdminWallet is the platform's single ledger account. Rows other than
// the first are never created; access goes through
// WalletRepository.EnsureAdminWallet.
type AdminWallet struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Balance   decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (AdminWallet) TableName() string {
	return "admin_wallets"
}
