package entities

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is a storefront order. The back-office only lists and records them;
// fulfilment happens elsewhere.
type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	CustomerName  string      `gorm:"size:256" json:"customer_name"`
	CustomerEmail string      `gorm:"index;size:255" json:"customer_email"`
	Total         float64     `json:"total"`
	Status        OrderStatus `gorm:"size:20;default:'pending'" json:"status"`
	OrderedAt     time.Time   `gorm:"index" json:"ordered_at"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}
