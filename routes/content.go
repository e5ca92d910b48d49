package routes

import (
	"github.com/gin-gonic/gin"
	blogControllers "github.com/josuejheymi/backend-levels/controllers/blog"
	reviewControllers "github.com/josuejheymi/backend-levels/controllers/review"
	"github.com/josuejheymi/backend-levels/middleware"
	"github.com/josuejheymi/backend-levels/models"
	"gorm.io/gorm"
)

// SetupContentRoutes registers blog and review endpoints. Reads are public.
func SetupContentRoutes(r *gin.Engine, db *gorm.DB) {
	blog := r.Group("/blog")
	{
		blog.GET("", blogControllers.GetAllPostsHandler(db))
		blog.GET("/:id", blogControllers.GetPostByIDHandler(db))
	}

	blogAdmin := r.Group("/blog")
	blogAdmin.Use(middleware.RequireAuth, middleware.RequireRole(models.RoleAdmin))
	{
		blogAdmin.POST("", blogControllers.CreatePostHandler(db))
		blogAdmin.DELETE("/:id", blogControllers.DeletePostHandler(db))
	}

	reviews := r.Group("/reviews")
	{
		reviews.GET("/product/:productID", reviewControllers.GetProductReviewsHandler(db))
		reviews.POST("", middleware.RequireAuth, reviewControllers.CreateReviewHandler(db))
	}
}
