package models

import "time"

type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_fav_user_gym" json:"user_id"`
	GymID     uint      `gorm:"not null;uniqueIndex:idx_fav_user_gym" json:"gym_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Gym  Gym  `gorm:"foreignKey:GymID" json:"-"`
}

func (Favorite) TableName() string {
	return "favorites"
}
