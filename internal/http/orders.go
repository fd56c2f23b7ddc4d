package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/svaldez/catalog-admin/internal/database/orders"
	"github.com/svaldez/catalog-admin/internal/entities"
)

// OrdersController exposes the order list the back office reviews. Orders
// originate on the storefront; the admin only inspects them and moves them
// through their lifecycle.
type OrdersController struct {
	repo *orders.Repository
}

func NewOrdersController(repo *orders.Repository) *OrdersController {
	return &OrdersController{repo: repo}
}

// GetAll returns all orders, most recent first.
// GET /api/orders
func (oc *OrdersController) GetAll(c *gin.Context) {
	list, err := oc.repo.GetAll()
	if err != nil {
		respondInternalError(c, err, "get all orders")
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetByID returns one order.
// GET /api/orders/:id
func (oc *OrdersController) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := oc.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "order")
			return
		}
		respondInternalError(c, err, "get order")
		return
	}
	c.JSON(http.StatusOK, order)
}

// Create records an order.
// POST /api/orders
func (oc *OrdersController) Create(c *gin.Context) {
	var req struct {
		CustomerName  string    `json:"customer_name" binding:"required"`
		CustomerEmail string    `json:"customer_email" binding:"required"`
		Total         float64   `json:"total"`
		OrderedAt     time.Time `json:"ordered_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "customer_name and customer_email are required")
		return
	}

	order := &entities.Order{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Total:         req.Total,
		OrderedAt:     req.OrderedAt,
	}
	if err := oc.repo.Create(order); err != nil {
		respondInternalError(c, err, "create order")
		return
	}
	respondCreated(c, order)
}

// UpdateStatus moves an order through its lifecycle.
// PATCH /api/orders/:id/status
func (oc *OrdersController) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status entities.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "status is required")
		return
	}

	switch req.Status {
	case entities.OrderStatusPending, entities.OrderStatusPaid,
		entities.OrderStatusShipped, entities.OrderStatusCancelled:
	default:
		respondBadRequest(c, "unknown order status")
		return
	}

	if err := oc.repo.UpdateStatus(id, req.Status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "order")
			return
		}
		respondInternalError(c, err, "update order status")
		return
	}
	respondSuccess(c, "order status updated")
}
