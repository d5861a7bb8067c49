package repository

import (
	"gorm.io/gorm"

	"gymhub/internal/models"
)

type WithdrawRepository struct {
	db *gorm.DB
}

func NewWithdrawRepository(db *gorm.DB) *WithdrawRepository {
	return &WithdrawRepository{db: db}
}

func (r *WithdrawRepository) Create(w *models.WithdrawRequest) error {
	return r.db.Create(w).Error
}

func (r *WithdrawRepository) GetByID(id uint) (*models.WithdrawRequest, error) {
	var w models.WithdrawRequest
	if err := r.db.Preload("Wallet").First(&w, id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

// ClaimTransition moves a request out of `from` in one compare-and-set,
// so concurrent decisions on the same request cannot both win. fields
// must carry the new status alongside the decision metadata.
func (r *WithdrawRepository) ClaimTransition(tx *gorm.DB, id uint, from string, fields map[string]interface{}) (bool, error) {
	res := tx.Model(&models.WithdrawRequest{}).
		Where("id = ? AND status = ?", id, from).
		Updates(fields)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *WithdrawRepository) ListByUserID(userID uint) ([]models.WithdrawRequest, error) {
	var ws []models.WithdrawRequest
	err := r.db.Where("user_id = ?", userID).Order("id DESC").Find(&ws).Error
	return ws, err
}

// ListAll is the staff view with an optional status filter.
func (r *WithdrawRepository) ListAll(status string, limit, offset int) ([]models.WithdrawRequest, error) {
	q := r.db.Order("id DESC").Limit(limit).Offset(offset)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var ws []models.WithdrawRequest
	err := q.Find(&ws).Error
	return ws, err
}
