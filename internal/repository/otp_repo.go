package repository

import (
	"time"

	"gorm.io/gorm"

	"gymhub/internal/models"
)

type OTPRepository struct {
	db *gorm.DB
}

func NewOTPRepository(db *gorm.DB) *OTPRepository {
	return &OTPRepository{db: db}
}

func (r *OTPRepository) Create(o *models.OTP) error {
	return r.db.Create(o).Error
}

// GetActive returns the newest unused, unexpired OTP for a phone.
func (r *OTPRepository) GetActive(phone string, now time.Time) (*models.OTP, error) {
	var o models.OTP
	err := r.db.Where("phone = ? AND is_used = ? AND expires_at > ?", phone, false, now).
		Order("id DESC").First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OTPRepository) MarkUsed(id uint) error {
	return r.db.Model(&models.OTP{}).Where("id = ?", id).Update("is_used", true).Error
}

// CountRecent counts OTPs issued to a phone inside the window, for
// request throttling.
func (r *OTPRepository) CountRecent(phone string, since time.Time) (int64, error) {
	var n int64
	err := r.db.Model(&models.OTP{}).Where("phone = ? AND created_at > ?", phone, since).Count(&n).Error
	return n, err
}
