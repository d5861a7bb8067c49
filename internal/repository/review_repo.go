package repository

import (
	"gorm.io/gorm"

	"gymhub/internal/models"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(rv *models.Review) error {
	return r.db.Create(rv).Error
}

func (r *ReviewRepository) GetByID(id uint) (*models.Review, error) {
	var rv models.Review
	if err := r.db.First(&rv, id).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

// ListByGymID returns visible top-level reviews with replies preloaded
// separately by the handler if needed.
func (r *ReviewRepository) ListByGymID(gymID uint, limit, offset int) ([]models.Review, error) {
	var rvs []models.Review
	err := r.db.Where("gym_id = ? AND deleted = ? AND blocked = ? AND reply_to_id IS NULL", gymID, false, false).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&rvs).Error
	return rvs, err
}

func (r *ReviewRepository) ListReplies(reviewID uint) ([]models.Review, error) {
	var rvs []models.Review
	err := r.db.Where("reply_to_id = ? AND deleted = ? AND blocked = ?", reviewID, false, false).
		Order("created_at ASC").Find(&rvs).Error
	return rvs, err
}

func (r *ReviewRepository) MarkReported(id uint) error {
	return r.db.Model(&models.Review{}).Where("id = ?", id).Update("is_reported", true).Error
}
