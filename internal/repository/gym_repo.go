package repository

import (
	"sort"

	"gorm.io/gorm"

	"gymhub/internal/models"
	"gymhub/pkg/location"
)

type GymRepository struct {
	db *gorm.DB
}

func NewGymRepository(db *gorm.DB) *GymRepository {
	return &GymRepository{db: db}
}

func (r *GymRepository) Create(g *models.Gym) error {
	return r.db.Create(g).Error
}

func (r *GymRepository) GetByID(id uint) (*models.Gym, error) {
	var g models.Gym
	if err := r.db.First(&g, id).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GymRepository) Update(g *models.Gym) error {
	return r.db.Save(g).Error
}

func (r *GymRepository) Delete(id uint) error {
	return r.db.Delete(&models.Gym{}, id).Error
}

func (r *GymRepository) List(limit, offset int) ([]models.Gym, error) {
	var gyms []models.Gym
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&gyms).Error
	return gyms, err
}

func (r *GymRepository) ListByOwnerID(ownerID uint) ([]models.Gym, error) {
	var gyms []models.Gym
	err := r.db.Where("owner_id = ?", ownerID).Find(&gyms).Error
	return gyms, err
}

// GymDistance is a gym with its distance from a search point.
type GymDistance struct {
	Gym        models.Gym `json:"gym"`
	DistanceKm float64    `json:"distance_km"`
}

// Nearest returns up to limit gyms ordered by distance from (lat, lng).
// Uses a bounding-box SQL pre-filter, then exact Haversine ranking in
// the application layer.
func (r *GymRepository) Nearest(lat, lng, maxRadiusKm float64, limit int) ([]GymDistance, error) {
	minLat, maxLat, minLng, maxLng := location.BoundingBox(lat, lng, maxRadiusKm)
	var gyms []models.Gym
	err := r.db.Where("latitude BETWEEN ? AND ? AND longitude BETWEEN ? AND ?",
		minLat, maxLat, minLng, maxLng).Find(&gyms).Error
	if err != nil {
		return nil, err
	}
	out := make([]GymDistance, 0, len(gyms))
	for _, g := range gyms {
		d := location.HaversineKm(lat, lng, g.Latitude, g.Longitude)
		if d > maxRadiusKm {
			continue
		}
		out = append(out, GymDistance{Gym: g, DistanceKm: d})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
