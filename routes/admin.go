package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/omrannajeeb/leohol/config"
	deliveryControllers "github.com/omrannajeeb/leohol/controllers/delivery"
	inventoryControllers "github.com/omrannajeeb/leohol/controllers/inventory"
	maintenanceControllers "github.com/omrannajeeb/leohol/controllers/maintenance"
	orderControllers "github.com/omrannajeeb/leohol/controllers/order"
	productControllers "github.com/omrannajeeb/leohol/controllers/product"
	pushControllers "github.com/omrannajeeb/leohol/controllers/push"
	settingsControllers "github.com/omrannajeeb/leohol/controllers/settings"
	shippingControllers "github.com/omrannajeeb/leohol/controllers/shipping"
	"github.com/omrannajeeb/leohol/middleware"
	"github.com/omrannajeeb/leohol/services/orders"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires a valid JWT
// with the admin role.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, svc *orders.Service) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateToken, middleware.RequireAdmin)
	{
		// Order management
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(db))
			orderAdmin.GET("/export-excel", orderControllers.ExportOrdersToExcel(db))
			orderAdmin.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(svc))
			orderAdmin.PUT("/:orderID/payment-status", orderControllers.UpdatePaymentStatusHandler(svc))
		}

		// Product management
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productControllers.CreateProduct(db))
			productAdmin.PUT("/:id", productControllers.UpdateProduct(db))
			productAdmin.DELETE("/:id", productControllers.DeleteProduct(db))
			productAdmin.GET("/export-excel", productControllers.ExportProductsToExcel(db))
			productAdmin.DELETE("/:id/reviews/:reviewID", productControllers.DeleteReview(db))
		}

		// Category management
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productControllers.CreateCategory(db))
			categoryAdmin.PUT("/:id", productControllers.UpdateCategory(db))
			categoryAdmin.DELETE("/:id", productControllers.DeleteCategory(db))
		}

		// Shipping zones and rates
		shippingAdmin := adminGroup.Group("/shipping")
		{
			shippingAdmin.POST("/zones", shippingControllers.CreateZone(db))
			shippingAdmin.GET("/zones", shippingControllers.GetZones(db))
			shippingAdmin.PUT("/zones/:id", shippingControllers.UpdateZone(db))
			shippingAdmin.DELETE("/zones/:id", shippingControllers.DeleteZone(db))
			shippingAdmin.POST("/rates", shippingControllers.CreateRate(db))
			shippingAdmin.DELETE("/rates/:id", shippingControllers.DeleteRate(db))
		}

		// Inventory ledger
		inventoryAdmin := adminGroup.Group("/inventory")
		{
			inventoryAdmin.GET("", inventoryControllers.GetInventory(db))
			inventoryAdmin.POST("", inventoryControllers.CreateInventory(db))
			inventoryAdmin.PUT("/:id", inventoryControllers.UpdateInventoryQuantity(db))
		}

		// Delivery companies
		deliveryAdmin := adminGroup.Group("/delivery")
		{
			deliveryAdmin.POST("/companies", deliveryControllers.CreateCompany(db))
			deliveryAdmin.GET("/companies", deliveryControllers.GetCompanies(db))
			deliveryAdmin.PUT("/companies/:id", deliveryControllers.UpdateCompany(db))
			deliveryAdmin.DELETE("/companies/:id", deliveryControllers.DeleteCompany(db))
			deliveryAdmin.POST("/assign", deliveryControllers.AssignToOrder(db))
		}

		// Store settings + maintenance
		adminGroup.PUT("/settings", settingsControllers.UpdateSettings(db))
		adminGroup.PUT("/maintenance", maintenanceControllers.SetMaintenanceMode(db))
		adminGroup.POST("/redeploy", maintenanceControllers.TriggerRedeploy(cfg))

		// Push broadcast
		adminGroup.POST("/push/broadcast", pushControllers.Broadcast(db, cfg))
	}
}
