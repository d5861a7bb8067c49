package repository

import (
	"gorm.io/gorm"

	"gymhub/internal/models"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) Add(userID, gymID uint) error {
	return r.db.Create(&models.Favorite{UserID: userID, GymID: gymID}).Error
}

func (r *FavoriteRepository) Remove(userID, gymID uint) error {
	return r.db.Where("user_id = ? AND gym_id = ?", userID, gymID).Delete(&models.Favorite{}).Error
}

func (r *FavoriteRepository) IsFavorite(userID, gymID uint) (bool, error) {
	var n int64
	err := r.db.Model(&models.Favorite{}).Where("user_id = ? AND gym_id = ?", userID, gymID).Count(&n).Error
	return n > 0, err
}

func (r *FavoriteRepository) ListByUserID(userID uint, limit, offset int) ([]models.Favorite, error) {
	var list []models.Favorite
	err := r.db.Where("user_id = ?", userID).Preload("Gym").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}
