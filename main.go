package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/josuejheymi/backend-levels/config"
	"github.com/josuejheymi/backend-levels/logger"
	"github.com/josuejheymi/backend-levels/models"
	"github.com/josuejheymi/backend-levels/routes"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Load environment variables
	_ = godotenv.Load()
	config.Load()
	logger.Init(config.AppConfig.LogLevel)
	defer logger.Log.Sync()

	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
		&models.BlogPost{},
	); err != nil {
		logger.Log.Fatal("auto-migrate failed", zap.Error(err))
	}

	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, db)

	logger.Log.Info("server starting", zap.String("port", config.AppConfig.Port))
	if err := r.Run(":" + config.AppConfig.Port); err != nil {
		logger.Log.Fatal("failed to start server", zap.Error(err))
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	db, err := gorm.Open(postgres.Open(config.AppConfig.DSN()), &gorm.Config{})
	if err != nil {
		logger.Log.Fatal("failed to connect DB", zap.Error(err))
	}
	return db
}
