package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/josuejheymi/backend-levels/controllers/cart"
	"github.com/josuejheymi/backend-levels/middleware"
	"gorm.io/gorm"
)

// SetupCartRoutes registers the shopping cart endpoints. All require a
// valid token.
func SetupCartRoutes(r *gin.Engine, db *gorm.DB) {
	cart := r.Group("/cart")
	cart.Use(middleware.RequireAuth)
	{
		cart.POST("/add", cartControllers.AddItemHandler(db))
		cart.GET("/:userID", cartControllers.GetCartHandler(db))
		cart.PUT("/:userID/product/:productID", cartControllers.UpdateQuantityHandler(db))
		cart.DELETE("/:userID/product/:productID", cartControllers.RemoveItemHandler(db))
	}
}
