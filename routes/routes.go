package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up every route group.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	SetupUserRoutes(r, db)

	SetupCatalogRoutes(r, db)

	SetupCartRoutes(r, db)

	SetupOrderRoutes(r, db)

	SetupContentRoutes(r, db)
}
