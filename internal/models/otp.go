package models

import "time"

// OTP is a one-time login code sent to a phone number. Delivery is out
// of scope; codes are surfaced through the logger in development.
type OTP struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Phone     string    `gorm:"size:20;not null;index" json:"phone"`
	Code      string    `gorm:"size:10;not null" json:"-"`
	RequestID string    `gorm:"size:64;uniqueIndex" json:"request_id"`
	IsUsed    bool      `gorm:"default:false" json:"is_used"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (OTP) TableName() string {
	return "otps"
}

func (o *OTP) IsExpired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
