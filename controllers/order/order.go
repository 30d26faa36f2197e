package orderControllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopora/shopora-api/apperr"
	"github.com/shopora/shopora-api/middleware"
	"github.com/shopora/shopora-api/models"
)

const checkoutAttempts = 3

// -------- Core Logic --------

// Checkout converts the user's cart into an order. Everything happens in
// one transaction: price snapshot from the live product rows, stock
// decrement, order + items creation, cart clear. Any failure rolls the
// whole thing back. The retry loop only fires when two checkouts race to
// the same order custom ID.
func Checkout(db *gorm.DB, userID string) (*models.Order, error) {
	var order *models.Order
	var err error
	for attempt := 0; attempt < checkoutAttempts; attempt++ {
		order, err = checkoutOnce(db, userID)
		if err == nil || !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, apperr.Conflict("could not allocate a unique order id, please retry")
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

func checkoutOnce(db *gorm.DB, userID string) (*models.Order, error) {
	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.Validation("cart is empty")
			}
			return err
		}
		if len(cart.Items) == 0 {
			return apperr.Validation("cart is empty")
		}

		var total float64
		var orderItems []models.OrderItem

		for _, item := range cart.Items {
			var product models.Product
			if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.Validation("a product in your cart no longer exists")
				}
				return err
			}
			if !product.IsActive {
				return apperr.Validation(fmt.Sprintf("product %q is no longer available", product.Name))
			}

			// Conditional decrement re-checks stock atomically, so a
			// concurrent checkout cannot oversell even under
			// read-committed isolation.
			result := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", product.ID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return apperr.InsufficientStock(fmt.Sprintf("insufficient stock for product %q", product.Name))
			}

			// Pricing policy: live price at transaction time, never a
			// value cached earlier in the cart.
			unitPrice := product.UnitPrice()
			total += unitPrice * float64(item.Quantity)

			orderItems = append(orderItems, models.OrderItem{
				ProductID:       product.ID,
				Quantity:        item.Quantity,
				PriceAtPurchase: unitPrice,
			})
		}

		customID, err := models.NextCustomID(tx, "orders", "ORD")
		if err != nil {
			return err
		}

		order = models.Order{
			CustomID:    customID,
			UserID:      userID,
			Items:       orderItems,
			TotalAmount: total,
			Status:      models.OrderStatusPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	if err := db.Preload("Items.Product").First(&order, "id = ?", order.ID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOwnOrder fetches an order scoped to its buyer. Other users' orders
// are reported as missing, not forbidden, so their existence never leaks.
func GetOwnOrder(db *gorm.DB, userID, orderID string) (*models.Order, error) {
	var order models.Order
	err := db.Preload("Items.Product").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Order not found")
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// -------- Handlers --------

// POST /sales/orders
func CheckoutHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := Checkout(db, middleware.CurrentUserID(c))
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		broadcastNewOrder(*order)
		c.JSON(http.StatusCreated, order)
	}
}

// GET /sales/orders
func ListMyOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Where("user_id = ?", middleware.CurrentUserID(c)).
			Preload("Items.Product").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /sales/orders/:id
func GetMyOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := GetOwnOrder(db, middleware.CurrentUserID(c), c.Param("id"))
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
