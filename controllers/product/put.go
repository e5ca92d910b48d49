package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/josuejheymi/backend-levels/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UpdateProduct overwrites the mutable fields of an existing product.
// Accepts the same body as CreateProduct.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var req ProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price cannot be negative"})
			return
		}
		if req.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "stock cannot be negative"})
			return
		}

		product.Name = req.Name
		product.Description = req.Description
		product.Price = req.Price
		product.Stock = req.Stock
		product.ImageURL = req.ImageURL
		product.VideoURL = req.VideoURL

		var category *models.Category
		if req.Category != "" {
			category, err = findOrCreateCategory(db, req.Category)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve category"})
				return
			}
			product.CategoryID = category.ID
		}

		if err := db.Omit(clause.Associations).Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}
		if category != nil {
			product.Category = *category
		}
		c.JSON(http.StatusOK, product)
	}
}
