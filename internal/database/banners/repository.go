// Package banners provides database operations for storefront banners.
package banners

import (
	"gorm.io/gorm"

	"github.com/svaldez/catalog-admin/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAll returns banners newest first, matching the admin listing.
func (r *Repository) GetAll() ([]entities.Banner, error) {
	var banners []entities.Banner
	err := r.db.Order("created_at DESC").Find(&banners).Error
	return banners, err
}

// GetActive returns only the banners currently shown on the storefront.
func (r *Repository) GetActive() ([]entities.Banner, error) {
	var banners []entities.Banner
	err := r.db.Where("is_active = ?", true).Order("created_at DESC").Find(&banners).Error
	return banners, err
}

func (r *Repository) GetByID(id uint) (*entities.Banner, error) {
	var banner entities.Banner
	if err := r.db.First(&banner, id).Error; err != nil {
		return nil, err
	}
	return &banner, nil
}

func (r *Repository) Create(banner *entities.Banner) error {
	return r.db.Create(banner).Error
}

func (r *Repository) Update(banner *entities.Banner) error {
	return r.db.Save(banner).Error
}

func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&entities.Banner{}, id).Error
}
