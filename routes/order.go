package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/josuejheymi/backend-levels/controllers/order"
	"github.com/josuejheymi/backend-levels/middleware"
	"github.com/josuejheymi/backend-levels/models"
	"gorm.io/gorm"
)

// SetupOrderRoutes registers checkout and order history endpoints.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orders := r.Group("/orders")
	orders.Use(middleware.RequireAuth)
	{
		orders.POST("/checkout", orderControllers.CheckoutHandler(db))
		orders.GET("/user/:userID", orderControllers.GetUserOrdersHandler(db))
		orders.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))
	}

	staff := r.Group("/orders")
	staff.Use(middleware.RequireAuth, middleware.RequireRole(models.RoleAdmin, models.RoleSeller))
	{
		staff.GET("", orderControllers.GetAllOrdersHandler(db))
		staff.GET("/stats", orderControllers.GetOrderStatsHandler(db))

		// websocket feed of new orders for the dashboard
		staff.GET("/ws", orderControllers.OrderWebSocketHandler)
	}
}
