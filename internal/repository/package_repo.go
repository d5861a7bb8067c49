package repository

import (
	"gorm.io/gorm"

	"gymhub/internal/models"
)

type PackageRepository struct {
	db *gorm.DB
}

func NewPackageRepository(db *gorm.DB) *PackageRepository {
	return &PackageRepository{db: db}
}

func (r *PackageRepository) Create(p *models.Package) error {
	return r.db.Create(p).Error
}

// GetByID loads a package with its gym (needed for owner checks and
// settlement routing).
func (r *PackageRepository) GetByID(id uint) (*models.Package, error) {
	var p models.Package
	if err := r.db.Preload("Gym").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PackageRepository) Update(p *models.Package) error {
	return r.db.Save(p).Error
}

func (r *PackageRepository) Delete(id uint) error {
	return r.db.Delete(&models.Package{}, id).Error
}

func (r *PackageRepository) ListByGymID(gymID uint) ([]models.Package, error) {
	var pkgs []models.Package
	err := r.db.Where("gym_id = ?", gymID).Find(&pkgs).Error
	return pkgs, err
}
