package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/josuejheymi/backend-levels/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"image_url"`
	VideoURL    string  `json:"video_url"`
	Category    string  `json:"category"` // resolved or created by name
}

// CreateProduct creates a new catalog entry. A category referenced by name
// is resolved, or created when it does not exist yet.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
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

		product := models.Product{
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Stock:       req.Stock,
			ImageURL:    req.ImageURL,
			VideoURL:    req.VideoURL,
		}

		var category *models.Category
		if req.Category != "" {
			var err error
			category, err = findOrCreateCategory(db, req.Category)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve category"})
				return
			}
			product.CategoryID = category.ID
		}

		if err := db.Omit(clause.Associations).Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		if category != nil {
			product.Category = *category
		}
		c.JSON(http.StatusCreated, product)
	}
}
