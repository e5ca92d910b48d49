package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	cartControllers "github.com/josuejheymi/backend-levels/controllers/cart"
	"github.com/josuejheymi/backend-levels/models"
	"gorm.io/gorm"
)

// DeleteProduct removes a product and its dependents. Cart lines and
// reviews referencing it are deleted first so nothing is left orphaned,
// and affected cart totals are recomputed — all in one transaction.
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
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

		err = db.Transaction(func(tx *gorm.DB) error {
			var cartIDs []uint
			if err := tx.Model(&models.CartItem{}).
				Where("product_id = ?", product.ID).
				Distinct().
				Pluck("cart_id", &cartIDs).Error; err != nil {
				return err
			}

			if err := tx.Where("product_id = ?", product.ID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.Review{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&product).Error; err != nil {
				return err
			}

			// Totals of carts that lost a line are stale now.
			for _, cartID := range cartIDs {
				var cart models.Cart
				if err := tx.First(&cart, cartID).Error; err != nil {
					return err
				}
				var user models.User
				if err := tx.First(&user, cart.UserID).Error; err != nil {
					return err
				}
				if err := cartControllers.RecalcTotal(tx, &cart, user.IsStudent); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}
