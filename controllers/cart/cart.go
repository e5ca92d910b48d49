package cartControllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/josuejheymi/backend-levels/models"
	"gorm.io/gorm"
)

const studentDiscountRate = 0.20

type AddItemRequest struct {
	UserID    uint `json:"user_id" binding:"required"`
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// -------- Core Logic --------

// AddItem validates stock, merges the quantity into an existing line or
// creates a new one with the current price as snapshot, then recomputes
// the cart total.
func AddItem(db *gorm.DB, userID, productID uint, quantity int) (*models.Cart, error) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return nil, errors.New("user not found")
	}

	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		return nil, errors.New("product not found")
	}

	cart, err := findOrCreateCart(db, userID)
	if err != nil {
		return nil, err
	}

	var item models.CartItem
	err = db.Where("cart_id = ? AND product_id = ?", cart.ID, productID).First(&item).Error
	switch {
	case err == nil:
		// Merge: the effective quantity must still fit in current stock.
		merged := item.Quantity + quantity
		if merged > product.Stock {
			return nil, fmt.Errorf("insufficient stock, available: %d", product.Stock)
		}
		item.Quantity = merged
		if err := db.Save(&item).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if quantity > product.Stock {
			return nil, fmt.Errorf("insufficient stock, available: %d", product.Stock)
		}
		item = models.CartItem{
			CartID:    cart.ID,
			ProductID: product.ID,
			Quantity:  quantity,
			UnitPrice: product.Price,
			AddedAt:   time.Now(),
		}
		if err := db.Create(&item).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := RecalcTotal(db, cart, user.IsStudent); err != nil {
		return nil, err
	}
	return loadCart(db, userID)
}

// RecalcTotal derives the cart total from its lines. Never cached: the
// student discount is applied on every mutation.
func RecalcTotal(db *gorm.DB, cart *models.Cart, isStudent bool) error {
	var items []models.CartItem
	if err := db.Where("cart_id = ?", cart.ID).Find(&items).Error; err != nil {
		return err
	}

	var total float64
	for _, item := range items {
		total += item.Subtotal()
	}
	if isStudent {
		total *= 1 - studentDiscountRate
	}

	cart.Total = total
	return db.Model(&models.Cart{}).Where("id = ?", cart.ID).Update("total", total).Error
}

func findOrCreateCart(db *gorm.DB, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := db.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		if err := db.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func loadCart(db *gorm.DB, userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := db.Preload("Items.Product").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func removeItem(db *gorm.DB, userID, productID uint) (*models.Cart, error) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return nil, errors.New("user not found")
	}

	var cart models.Cart
	if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, errors.New("cart not found")
	}

	result := db.Where("cart_id = ? AND product_id = ?", cart.ID, productID).Delete(&models.CartItem{})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errors.New("cart item not found")
	}

	if err := RecalcTotal(db, &cart, user.IsStudent); err != nil {
		return nil, err
	}
	return loadCart(db, userID)
}

// -------- Handlers --------

// POST /cart/add
func AddItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		cart, err := AddItem(db, req.UserID, req.ProductID, req.Quantity)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// GET /cart/:userID
func GetCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("userID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			return
		}

		cart, err := loadCart(db, uint(userID))
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No cart yet: same shape as an empty one.
			c.JSON(http.StatusOK, models.Cart{UserID: uint(userID), Items: []models.CartItem{}})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// PUT /cart/:userID/product/:productID?quantity=N
func UpdateQuantityHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("userID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			return
		}
		productID, err := strconv.ParseUint(c.Param("productID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}
		quantity, err := strconv.Atoi(c.Query("quantity"))
		if err != nil || quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be a non-negative integer"})
			return
		}

		// Reducing to zero is a removal.
		if quantity == 0 {
			cart, err := removeItem(db, uint(userID), uint(productID))
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, cart)
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		var cart models.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
			return
		}
		var item models.CartItem
		if err := db.Where("cart_id = ? AND product_id = ?", cart.ID, productID).First(&item).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}
		var product models.Product
		if err := db.First(&product, productID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if quantity > product.Stock {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("insufficient stock, available: %d", product.Stock)})
			return
		}

		item.Quantity = quantity
		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}
		if err := RecalcTotal(db, &cart, user.IsStudent); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to recompute cart total"})
			return
		}

		cartOut, err := loadCart(db, uint(userID))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, cartOut)
	}
}

// DELETE /cart/:userID/product/:productID
func RemoveItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("userID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			return
		}
		productID, err := strconv.ParseUint(c.Param("productID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		cart, err := removeItem(db, uint(userID), uint(productID))
		if err != nil {
			status := http.StatusBadRequest
			if err.Error() == "cart item not found" || err.Error() == "cart not found" {
				status = http.StatusNotFound
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}
