// Package categories provides database operations for product categories.
package categories

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

func (r *Repository) GetAll() ([]entities.Category, error) {
	var categories []entities.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *Repository) GetByID(id uint) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *Repository) GetByIDs(ids []uint) ([]entities.Category, error) {
	var categories []entities.Category
	err := r.db.Where("id IN ?", ids).Find(&categories).Error
	return categories, err
}

func (r *Repository) Create(category *entities.Category) error {
	return r.db.Create(category).Error
}

func (r *Repository) Update(category *entities.Category) error {
	return r.db.Save(category).Error
}

func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&entities.Category{}, id).Error
}
