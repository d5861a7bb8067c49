package models

import (
	"time"

	"gorm.io/gorm"

	"gymhub/internal/domain"
)

type User struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Phone           string         `gorm:"uniqueIndex;size:20;not null" json:"phone"`
	FullName        string         `gorm:"size:250" json:"full_name"`
	PasswordHash    string         `gorm:"size:255" json:"-"` // staff logins only; customers use OTP
	Role            string         `gorm:"size:20;not null;index;default:'customer'" json:"role"`
	IsStaff         bool           `gorm:"default:false" json:"is_staff"`
	IsActive        bool           `gorm:"default:true" json:"is_active"`
	IsPhoneVerified bool           `gorm:"default:false" json:"is_phone_verified"`
	Birthdate       *time.Time     `json:"birthdate"`
	ReferralCode    string         `gorm:"size:20" json:"referral_code"`
	ReferredBy      *string        `gorm:"size:20" json:"referred_by"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsOwner() bool    { return u.Role == domain.RoleOwner }
func (u *User) IsCustomer() bool { return u.Role == domain.RoleCustomer }
