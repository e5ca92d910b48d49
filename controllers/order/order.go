package orderControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/josuejheymi/backend-levels/logger"
	"github.com/josuejheymi/backend-levels/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// -------- Request Structs --------

type CheckoutRequest struct {
	UserID  uint   `json:"user_id" binding:"required"`
	Street  string `json:"street"`
	Region  string `json:"region"`
	Commune string `json:"commune"`
}

// -------- Core Logic --------

// Checkout converts the user's cart into a persisted order, or fails with
// no partial effects. Everything below runs in one transaction: the header
// insert, every stock decrement and order line, and the cart cleanup all
// commit or roll back together.
func Checkout(db *gorm.DB, req CheckoutRequest) (*models.Order, error) {
	var cart models.Cart
	err := db.Preload("Items").Where("user_id = ?", req.UserID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && len(cart.Items) == 0) {
		return nil, errors.New("cart is empty")
	}
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Street) == "" {
		return nil, errors.New("street is required")
	}
	if strings.TrimSpace(req.Region) == "" {
		return nil, errors.New("region is required")
	}
	if strings.TrimSpace(req.Commune) == "" {
		return nil, errors.New("commune is required")
	}

	order := models.Order{
		UserID:    cart.UserID,
		Total:     cart.Total, // already discount-adjusted at cart time
		Street:    req.Street,
		Region:    req.Region,
		Commune:   req.Commune,
		CreatedAt: time.Now(),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		// Header first: lines need its ID.
		if err := tx.Omit(clause.Associations).Create(&order).Error; err != nil {
			return err
		}

		for _, item := range cart.Items {
			var product models.Product
			if err := lockForUpdate(tx).First(&product, item.ProductID).Error; err != nil {
				return err
			}

			// Second stock validation: stock may have moved since the
			// cart mutation. A failure here rolls back every effect above.
			if product.Stock < item.Quantity {
				return errors.New("insufficient stock for product: " + product.Name)
			}

			product.Stock -= item.Quantity
			if err := tx.Save(&product).Error; err != nil {
				return err
			}

			orderItem := models.OrderItem{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice, // cart-line snapshot, not the live price
			}
			if err := tx.Omit(clause.Associations).Create(&orderItem).Error; err != nil {
				return err
			}
			order.Items = append(order.Items, orderItem)
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Cart{}).Where("id = ?", cart.ID).Update("total", 0).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("order created",
		zap.Uint("order_id", order.ID),
		zap.Uint("user_id", order.UserID),
		zap.Float64("total", order.Total))
	return &order, nil
}

// lockForUpdate takes a pessimistic row lock on engines that support it.
// Sqlite has no FOR UPDATE; its single-writer model covers the re-check.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// -------- Handlers --------

// POST /orders/checkout
func CheckoutHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		order, err := Checkout(db, req)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		broadcastNewOrder(*order)
		c.JSON(http.StatusOK, order)
	}
}

// GET /orders/user/:userID
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseUint(c.Param("userID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			return
		}
		var orders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Preload("Items").
			Preload("Items.Product").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/:orderID
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.ParseUint(c.Param("orderID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
			return
		}

		var order models.Order
		if err := db.
			Preload("User").
			Preload("Items").
			Preload("Items.Product").
			First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /orders (staff)
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("User").
			Preload("Items").
			Preload("Items.Product").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/stats (staff): aggregate sales totals for the dashboard.
func GetOrderStatsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var totalSales float64
		if err := db.Model(&models.Order{}).
			Select("COALESCE(SUM(total), 0)").
			Scan(&totalSales).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}

		var orderCount int64
		if err := db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"total_sales": totalSales,
			"order_count": orderCount,
		})
	}
}
