package repository

import (
	"time"

	"gorm.io/gorm"

	"gymhub/internal/models"
)

type DiscountRepository struct {
	db *gorm.DB
}

func NewDiscountRepository(db *gorm.DB) *DiscountRepository {
	return &DiscountRepository{db: db}
}

func (r *DiscountRepository) Create(d *models.DiscountCode) error {
	return r.db.Create(d).Error
}

func (r *DiscountRepository) GetByID(id uint) (*models.DiscountCode, error) {
	var d models.DiscountCode
	if err := r.db.Preload("Club").First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DiscountRepository) GetByCode(code string) (*models.DiscountCode, error) {
	var d models.DiscountCode
	if err := r.db.Preload("Club").Where("code = ?", code).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DiscountRepository) Update(d *models.DiscountCode) error {
	return r.db.Save(d).Error
}

func (r *DiscountRepository) Delete(id uint) error {
	return r.db.Delete(&models.DiscountCode{}, id).Error
}

// ListAll is the staff view; ListByOwnerID scopes to codes of the
// owner's own gyms (admin-sourced codes are never visible to owners).
func (r *DiscountRepository) ListAll(limit, offset int) ([]models.DiscountCode, error) {
	var ds []models.DiscountCode
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&ds).Error
	return ds, err
}

func (r *DiscountRepository) ListByOwnerID(ownerID uint) ([]models.DiscountCode, error) {
	var ds []models.DiscountCode
	err := r.db.
		Joins("JOIN gyms ON gyms.id = discount_codes.club_id").
		Where("gyms.owner_id = ?", ownerID).
		Order("discount_codes.created_at DESC").
		Find(&ds).Error
	return ds, err
}

// CountUsageByUser counts the user's prior redemptions of a code.
func (r *DiscountRepository) CountUsageByUser(discountID, userID uint) (int64, error) {
	var n int64
	err := r.db.Model(&models.DiscountUsage{}).
		Where("discount_id = ? AND user_id = ?", discountID, userID).Count(&n).Error
	return n, err
}

// RecordUsage writes the usage row and bumps used_count inside the
// caller's transaction, so a rolled-back purchase never burns the code.
func (r *DiscountRepository) RecordUsage(tx *gorm.DB, discountID, userID uint) error {
	usage := models.DiscountUsage{DiscountID: discountID, UserID: userID, UsedAt: time.Now()}
	if err := tx.Create(&usage).Error; err != nil {
		return err
	}
	return tx.Model(&models.DiscountCode{}).Where("id = ?", discountID).
		Update("used_count", gorm.Expr("used_count + 1")).Error
}
