package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"gymhub/internal/domain"
	"gymhub/internal/models"
)

type WalletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

func (r *WalletRepository) GetByID(id uint) (*models.Wallet, error) {
	var w models.Wallet
	if err := r.db.First(&w, id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WalletRepository) GetByOwnerID(ownerID uint) (*models.Wallet, error) {
	var w models.Wallet
	if err := r.db.Where("owner_id = ?", ownerID).First(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

// GetOrCreate returns the owner's wallet, creating it at zero balance
// on first touch. Safe to call inside a settlement transaction.
func (r *WalletRepository) GetOrCreate(tx *gorm.DB, ownerID uint) (*models.Wallet, error) {
	var w models.Wallet
	err := tx.Where("owner_id = ?", ownerID).First(&w).Error
	if err == nil {
		return &w, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	w = models.Wallet{OwnerID: ownerID, Balance: decimal.Zero}
	if err := tx.Create(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

// EnsureAdminWallet returns the platform's singleton wallet, creating
// it if absent. Always the lowest-id row, so concurrent first calls
// converge on the same record.
func (r *WalletRepository) EnsureAdminWallet(tx *gorm.DB) (*models.AdminWallet, error) {
	var aw models.AdminWallet
	err := tx.Order("id ASC").First(&aw).Error
	if err == nil {
		return &aw, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	aw = models.AdminWallet{Balance: decimal.Zero}
	if err := tx.Create(&aw).Error; err != nil {
		return nil, err
	}
	return &aw, nil
}

// GetAdminWallet is the read-only view of the platform wallet.
func (r *WalletRepository) GetAdminWallet() (*models.AdminWallet, error) {
	return r.EnsureAdminWallet(r.db)
}

func (r *WalletRepository) ListAll() ([]models.Wallet, error) {
	var ws []models.Wallet
	err := r.db.Preload("Owner").Find(&ws).Error
	return ws, err
}

// Credit adds amount to a wallet balance.
func (r *WalletRepository) Credit(tx *gorm.DB, walletID uint, amount decimal.Decimal) error {
	return tx.Model(&models.Wallet{}).Where("id = ?", walletID).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", amount),
			"updated_at": time.Now(),
		}).Error
}

// Debit subtracts amount from a wallet balance. The balance guard is in
// the UPDATE itself so concurrent debits against the same wallet
// serialize at the row and can never drive it negative.
func (r *WalletRepository) Debit(tx *gorm.DB, walletID uint, amount decimal.Decimal) error {
	res := tx.Model(&models.Wallet{}).
		Where("id = ? AND balance >= ?", walletID, amount).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance - ?", amount),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrInsufficientFunds
	}
	return nil
}

func (r *WalletRepository) CreditAdmin(tx *gorm.DB, adminWalletID uint, amount decimal.Decimal) error {
	return tx.Model(&models.AdminWallet{}).Where("id = ?", adminWalletID).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", amount),
			"updated_at": time.Now(),
		}).Error
}

func (r *WalletRepository) DebitAdmin(tx *gorm.DB, adminWalletID uint, amount decimal.Decimal) error {
	res := tx.Model(&models.AdminWallet{}).
		Where("id = ? AND balance >= ?", adminWalletID, amount).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance - ?", amount),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrInsufficientFunds
	}
	return nil
}
