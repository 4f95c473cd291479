package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/omrannajeeb/leohol/config"
	"github.com/omrannajeeb/leohol/realtime"
	"github.com/omrannajeeb/leohol/services/orders"
)

// SetupRoutes is the single entry point that wires up every route group.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, svc *orders.Service, hub *realtime.Hub) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// Public storefront routes
	SetupStorefrontRoutes(r, db, cfg)

	// Order placement + realtime feed
	SetupOrderRoutes(r, svc, hub)

	// User routes (JWT-protected)
	SetupUserRoutes(r, db)

	// Admin routes (JWT + admin role)
	SetupAdminRoutes(r, db, cfg, svc)

	// Payment gateway routes
	SetupPaymentRoutes(r, db, cfg, svc)
}
