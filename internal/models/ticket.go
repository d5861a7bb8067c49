package models

import "time"

type Ticket struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Subject   string    `gorm:"size:255;not null" json:"subject"`
	CreatorID uint      `gorm:"not null;index" json:"creator_id"`
	AdminID   *uint     `json:"admin_id"`
	Status    string    `gorm:"size:20;not null;index;default:'open'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Creator  User            `gorm:"foreignKey:CreatorID" json:"-"`
	Admin    *User           `gorm:"foreignKey:AdminID" json:"-"`
	Messages []TicketMessage `gorm:"foreignKey:TicketID" json:"messages,omitempty"`
}

func (Ticket) TableName() string {
	return "tickets"
}

type TicketMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TicketID  uint      `gorm:"not null;index" json:"ticket_id"`
	AuthorID  uint      `gorm:"not null" json:"author_id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `json:"created_at"`

	Author User `gorm:"foreignKey:AuthorID" json:"-"`
}

func (TicketMessage) TableName() string {
	return "ticket_messages"
}
