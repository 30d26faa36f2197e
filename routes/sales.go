package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/shopora/shopora-api/controllers/cart"
	orderControllers "github.com/shopora/shopora-api/controllers/order"
	"github.com/shopora/shopora-api/middleware"
	"github.com/shopora/shopora-api/models"
)

// SetupSalesRoutes registers cart and order endpoints for buyers.
func SetupSalesRoutes(r *gin.Engine, db *gorm.DB) {
	sales := r.Group("/sales")
	sales.Use(middleware.ValidateToken)
	{
		// ──────────────── Shopping Cart ────────────────
		cart := sales.Group("/cart")
		{
			cart.GET("", cartControllers.GetCart(db))
			cart.POST("/add-item", cartControllers.AddCartItem(db))
			cart.PATCH("/update-item/:id", cartControllers.UpdateCartItem(db))
			cart.DELETE("/remove-item/:id", cartControllers.RemoveCartItem(db))
		}

		// ──────────────── Orders ────────────────
		orders := sales.Group("/orders")
		{
			orders.GET("", orderControllers.ListMyOrders(db))
			orders.GET("/:id", orderControllers.GetMyOrder(db))
			orders.POST("", middleware.RequireRole(models.RoleBuyer), orderControllers.CheckoutHandler(db))

			// websocket endpoint for real-time order updates
			orders.GET("/ws", orderControllers.OrderWebSocketHandler)
		}
	}
}
