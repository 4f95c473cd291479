package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/omrannajeeb/leohol/config"
	maintenanceControllers "github.com/omrannajeeb/leohol/controllers/maintenance"
	productControllers "github.com/omrannajeeb/leohol/controllers/product"
	pushControllers "github.com/omrannajeeb/leohol/controllers/push"
	settingsControllers "github.com/omrannajeeb/leohol/controllers/settings"
	shippingControllers "github.com/omrannajeeb/leohol/controllers/shipping"
	"github.com/omrannajeeb/leohol/middleware"
)

// SetupStorefrontRoutes registers the public catalog and storefront endpoints.
func SetupStorefrontRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	products := r.Group("/products")
	{
		products.GET("", productControllers.GetProducts(db))
		products.GET("/:id", productControllers.GetProductByID(db))

		// Reviews are open to signed-in shoppers; moderation lives under /admin.
		products.POST("/:id/reviews", middleware.OptionalToken, productControllers.AddReview(db))
		products.PUT("/:id/reviews/:reviewID/report", productControllers.ReportReview(db))
	}

	r.GET("/categories", productControllers.GetAllCategories(db))
	r.GET("/settings", settingsControllers.GetSettings(db))
	r.POST("/shipping/calculate", shippingControllers.CalculateFeeHandler(db))
	r.GET("/maintenance/status", maintenanceControllers.GetMaintenanceStatus(db))

	push := r.Group("/push")
	push.Use(middleware.OptionalToken)
	{
		push.POST("/subscribe", pushControllers.Subscribe(db))
		push.POST("/unsubscribe", pushControllers.Unsubscribe(db))
	}
}
