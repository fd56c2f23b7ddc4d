// Package orders provides database operations for storefront orders. The
// back-office records and lists them; it does not fulfil them.
package orders

import (
	"time"

	"gorm.io/gorm"

	"github.com/svaldez/catalog-admin/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAll returns orders newest first.
func (r *Repository) GetAll() ([]entities.Order, error) {
	var orders []entities.Order
	err := r.db.Order("ordered_at DESC").Find(&orders).Error
	return orders, err
}

func (r *Repository) GetByID(id uint) (*entities.Order, error) {
	var order entities.Order
	if err := r.db.First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *Repository) Create(order *entities.Order) error {
	if order.OrderedAt.IsZero() {
		order.OrderedAt = time.Now()
	}
	if order.Status == "" {
		order.Status = entities.OrderStatusPending
	}
	return r.db.Create(order).Error
}

func (r *Repository) UpdateStatus(id uint, status entities.OrderStatus) error {
	result := r.db.Model(&entities.Order{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
