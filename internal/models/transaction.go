package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is an append-only ledger row. Exactly one of WalletID /
// AdminWalletID is set. PurchaseID is nulled (never cascaded) when a
// purchase is removed so the ledger survives its source records.
// Settlement writes debit/credit pairs sharing a Reference.
type Transaction struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	WalletID      *uint           `gorm:"index" json:"wallet_id"`
	AdminWalletID *uint           `gorm:"index" json:"admin_wallet_id"`
	PurchaseID    *uint           `gorm:"index;constraint:OnDelete:SET NULL" json:"purchase_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	Type          string          `gorm:"size:6;not null;default:'credit'" json:"type"`
	Status        string          `gorm:"size:20;not null;index;default:'pending'" json:"status"`
	Reference     string          `gorm:"size:64;index" json:"reference"`
	Description   string          `gorm:"type:text" json:"description"`
	CreatedAt     time.Time       `json:"created_at"`

	Wallet      *Wallet      `gorm:"foreignKey:WalletID" json:"-"`
	AdminWallet *AdminWallet `gorm:"foreignKey:AdminWalletID" json:"-"`
	Purchase    *Purchase    `gorm:"foreignKey:PurchaseID" json:"-"`
}

func (Transaction) TableName() string {
	return "transactions"
}
