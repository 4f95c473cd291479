package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/omrannajeeb/leohol/controllers/order"
	"github.com/omrannajeeb/leohol/middleware"
	"github.com/omrannajeeb/leohol/realtime"
	"github.com/omrannajeeb/leohol/services/orders"
)

// SetupOrderRoutes registers order placement and the realtime order feed.
// Placement uses soft authentication: a valid token attaches the user, a
// missing or bad token still goes through as guest checkout.
func SetupOrderRoutes(r *gin.Engine, svc *orders.Service, hub *realtime.Hub) {
	group := r.Group("/orders")
	{
		group.POST("", middleware.OptionalToken, orderControllers.CreateOrderHandler(svc))

		// websocket endpoint for real-time order events
		group.GET("/ws", hub.Handle)
	}
}
