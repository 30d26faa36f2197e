package sellerControllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopora/shopora-api/apperr"
	"github.com/shopora/shopora-api/middleware"
	"github.com/shopora/shopora-api/models"
)

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// -------- Core Logic --------

// UpdateOrderStatus moves an order along the forward-only state machine.
// Only an admin, or a seller owning at least one product in the order,
// may do so.
func UpdateOrderStatus(db *gorm.DB, orderID, newStatusStr, actorID string, actorRole models.Role) (*models.Order, error) {
	var order models.Order
	if err := db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Order not found")
		}
		return nil, err
	}

	if actorRole != models.RoleAdmin {
		var count int64
		if err := db.Model(&models.OrderItem{}).
			Joins("JOIN products ON products.id = order_items.product_id").
			Where("order_items.order_id = ? AND products.seller_id = ?", orderID, actorID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, apperr.Forbidden("You do not manage any product in this order")
		}
	}

	newStatus, err := models.ParseOrderStatus(newStatusStr)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}

	if !models.CanTransition(order.Status, newStatus) {
		nexts := models.NextStatuses(order.Status)
		if len(nexts) == 0 {
			return nil, apperr.Validation("order is in terminal status " + string(order.Status))
		}
		return nil, apperr.Validation("cannot move order from " + string(order.Status) +
			" to " + string(newStatus) + ", choose from: " + strings.Join(nexts, ", "))
	}

	if err := db.Model(&order).Update("status", newStatus).Error; err != nil {
		return nil, err
	}

	if err := db.Preload("Items.Product").First(&order, "id = ?", order.ID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// -------- Handlers --------

// GET /seller/orders returns orders containing at least one of the
// seller's products, each order once.
func ListSellerOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Distinct("orders.*").
			Joins("JOIN order_items ON order_items.order_id = orders.id").
			Joins("JOIN products ON products.id = order_items.product_id").
			Where("products.seller_id = ?", middleware.CurrentUserID(c)).
			Preload("Items.Product").
			Order("orders.created_at DESC").
			Find(&orders).Error; err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// PATCH /seller/orders/:id/update-status
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Validation("Invalid input: "+err.Error()))
			return
		}

		order, err := UpdateOrderStatus(db, c.Param("id"), req.Status,
			middleware.CurrentUserID(c), middleware.CurrentRole(c))
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
