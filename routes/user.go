package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/josuejheymi/backend-levels/auth"
	userControllers "github.com/josuejheymi/backend-levels/controllers/user"
	"github.com/josuejheymi/backend-levels/middleware"
	"github.com/josuejheymi/backend-levels/models"
	"gorm.io/gorm"
)

// SetupUserRoutes registers registration, login and profile endpoints.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	users := r.Group("/users")
	{
		// Public
		users.POST("/register", userControllers.RegisterHandler(db))
		users.POST("/login", userControllers.LoginHandler(db, auth.IssueToken))

		// Authenticated
		users.PUT("/:id", middleware.RequireAuth, userControllers.UpdateUserHandler(db))
		users.GET("", middleware.RequireAuth, middleware.RequireRole(models.RoleAdmin),
			userControllers.GetAllUsersHandler(db))
	}
}
