package repository

import (
	"gorm.io/gorm"

	"gymhub/internal/models"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(tx *gorm.DB, t *models.Transaction) error {
	return tx.Create(t).Error
}

func (r *TransactionRepository) GetByID(id uint) (*models.Transaction, error) {
	var t models.Transaction
	if err := r.db.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepository) ListByWalletID(walletID uint, limit, offset int) ([]models.Transaction, error) {
	var ts []models.Transaction
	err := r.db.Where("wallet_id = ?", walletID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&ts).Error
	return ts, err
}

func (r *TransactionRepository) ListByAdminWalletID(adminWalletID uint, limit, offset int) ([]models.Transaction, error) {
	var ts []models.Transaction
	err := r.db.Where("admin_wallet_id = ?", adminWalletID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&ts).Error
	return ts, err
}

func (r *TransactionRepository) ListByPurchaseID(purchaseID uint) ([]models.Transaction, error) {
	var ts []models.Transaction
	err := r.db.Where("purchase_id = ?", purchaseID).Order("id ASC").Find(&ts).Error
	return ts, err
}

// List returns ledger rows for staff review, optionally filtered by status.
func (r *TransactionRepository) List(status string, limit, offset int) ([]models.Transaction, error) {
	q := r.db.Order("created_at DESC").Limit(limit).Offset(offset)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var ts []models.Transaction
	err := q.Find(&ts).Error
	return ts, err
}
