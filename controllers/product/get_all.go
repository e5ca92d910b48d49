package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/josuejheymi/backend-levels/models"
	"gorm.io/gorm"
)

// GetProducts lists the catalog, optionally filtered by exact category name.
// Example: GET /products?category=Consolas
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryName := c.Query("category")

		query := db.Model(&models.Product{}).Preload("Category")
		if categoryName != "" {
			var category models.Category
			err := db.Where("name = ?", categoryName).First(&category).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, []models.Product{})
				return
			}
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
				return
			}
			query = query.Where("category_id = ?", category.ID)
		}

		var products []models.Product
		if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}
