package models

import "time"

type Review struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	GymID      uint      `gorm:"not null;index" json:"gym_id"`
	Rating     int       `gorm:"not null" json:"rating"` // 1..5
	Comment    string    `gorm:"type:text" json:"comment"`
	Buyer      bool      `gorm:"default:false" json:"buyer"` // reviewer has a verified purchase at this gym
	IsReported bool      `gorm:"default:false" json:"is_reported"`
	Blocked    bool      `gorm:"default:false" json:"blocked"`
	Deleted    bool      `gorm:"default:false" json:"deleted"`
	ReplyToID  *uint     `gorm:"index" json:"reply_to"`
	CreatedAt  time.Time `json:"created_at"`

	User    User    `gorm:"foreignKey:UserID" json:"-"`
	Gym     Gym     `gorm:"foreignKey:GymID" json:"-"`
	ReplyTo *Review `gorm:"foreignKey:ReplyToID" json:"-"`
}

func (Review) TableName() string {
	return "reviews"
}
