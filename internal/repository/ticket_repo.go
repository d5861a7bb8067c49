package repository

import (
	"gorm.io/gorm"

	"gymhub/internal/models"
)

type TicketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

func (r *TicketRepository) Create(t *models.Ticket) error {
	return r.db.Create(t).Error
}

func (r *TicketRepository) GetByID(id uint) (*models.Ticket, error) {
	var t models.Ticket
	if err := r.db.Preload("Messages").First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TicketRepository) Update(t *models.Ticket) error {
	return r.db.Save(t).Error
}

func (r *TicketRepository) AddMessage(m *models.TicketMessage) error {
	return r.db.Create(m).Error
}

func (r *TicketRepository) ListByCreatorID(creatorID uint) ([]models.Ticket, error) {
	var ts []models.Ticket
	err := r.db.Where("creator_id = ?", creatorID).Order("updated_at DESC").Find(&ts).Error
	return ts, err
}

func (r *TicketRepository) ListAll(status string, limit, offset int) ([]models.Ticket, error) {
	q := r.db.Order("updated_at DESC").Limit(limit).Offset(offset)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var ts []models.Ticket
	err := q.Find(&ts).Error
	return ts, err
}
