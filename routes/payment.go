package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/omrannajeeb/leohol/config"
	paymentControllers "github.com/omrannajeeb/leohol/controllers/payment"
	"github.com/omrannajeeb/leohol/services/orders"
)

// SetupPaymentRoutes registers the PayPal checkout endpoints.
func SetupPaymentRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, svc *orders.Service) {
	payment := r.Group("/payments/paypal")
	{
		payment.POST("/create", paymentControllers.CreatePayPalOrder(db, cfg))
		payment.POST("/capture", paymentControllers.CapturePayPalOrder(db, cfg, svc))
	}
}
