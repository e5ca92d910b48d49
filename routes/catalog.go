package routes

import (
	"github.com/gin-gonic/gin"
	productcontroller "github.com/josuejheymi/backend-levels/controllers/product"
	"github.com/josuejheymi/backend-levels/middleware"
	"github.com/josuejheymi/backend-levels/models"
	"gorm.io/gorm"
)

// SetupCatalogRoutes registers product and category endpoints. Reads are
// public; mutations require the admin role.
func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB) {
	products := r.Group("/products")
	{
		products.GET("", productcontroller.GetProducts(db))
		products.GET("/:id", productcontroller.GetProductByID(db))
	}

	productAdmin := r.Group("/products")
	productAdmin.Use(middleware.RequireAuth, middleware.RequireRole(models.RoleAdmin))
	{
		productAdmin.POST("", productcontroller.CreateProduct(db))
		productAdmin.PUT("/:id", productcontroller.UpdateProduct(db))
		productAdmin.DELETE("/:id", productcontroller.DeleteProduct(db))
	}

	categories := r.Group("/categories")
	{
		categories.GET("", productcontroller.GetAllCategories(db))
	}

	categoryAdmin := r.Group("/categories")
	categoryAdmin.Use(middleware.RequireAuth, middleware.RequireRole(models.RoleAdmin))
	{
		categoryAdmin.POST("", productcontroller.CreateCategory(db))
		categoryAdmin.DELETE("/:id", productcontroller.DeleteCategory(db))
	}

	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuth, middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/products/export-excel", productcontroller.ExportProductsToExcel(db))
	}
}
