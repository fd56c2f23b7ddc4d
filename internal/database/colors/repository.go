// Package colors provides database operations for product colors.
package colors

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

func (r *Repository) GetAll() ([]entities.Color, error) {
	var colors []entities.Color
	err := r.db.Order("name ASC").Find(&colors).Error
	return colors, err
}

func (r *Repository) GetByID(id uint) (*entities.Color, error) {
	var color entities.Color
	if err := r.db.First(&color, id).Error; err != nil {
		return nil, err
	}
	return &color, nil
}

func (r *Repository) GetByIDs(ids []uint) ([]entities.Color, error) {
	var colors []entities.Color
	err := r.db.Where("id IN ?", ids).Find(&colors).Error
	return colors, err
}

func (r *Repository) Create(color *entities.Color) error {
	return r.db.Create(color).Error
}

func (r *Repository) Update(color *entities.Color) error {
	return r.db.Save(color).Error
}

func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&entities.Color{}, id).Error
}
