package orderControllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/omrannajeeb/leohol/middleware"
	"github.com/omrannajeeb/leohol/models"
	"github.com/omrannajeeb/leohol/services/orders"
)

// Service is the slice of the order service the handlers need; split out so
// handler tests can stub it.
type Service interface {
	CreateOrder(ctx context.Context, req *orders.CreateOrderRequest, actor orders.Actor) (*orders.CreateOrderResponse, error)
	SetOrderStatus(ctx context.Context, orderID uint, status models.OrderStatus, actorID *string) (*models.Order, error)
	SetPaymentStatus(ctx context.Context, orderID uint, status models.PaymentStatus) (*models.Order, error)
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// respondOrderError maps service errors onto HTTP responses. Client-facing
// errors carry their message; anything else is logged in full and answered
// generically.
func respondOrderError(c *gin.Context, err error) {
	var (
		validationErr   *orders.ValidationError
		availabilityErr *orders.AvailabilityError
		sizeErr         *orders.SizeNotFoundError
		productErr      *orders.ProductNotFoundError
	)
	switch {
	case errors.As(err, &validationErr),
		errors.As(err, &availabilityErr),
		errors.As(err, &sizeErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &productErr):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, orders.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	default:
		zap.L().Error("order operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process order"})
	}
}

// CreateOrderHandler places an order. Identity is soft: a valid bearer token
// attaches the user, anything else is guest checkout.
func CreateOrderHandler(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req orders.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		actor := orders.Actor{UserID: middleware.UserID(c)}
		resp, err := svc.CreateOrder(c.Request.Context(), &req, actor)
		if err != nil {
			respondOrderError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message": "Order created successfully",
			"order":   resp,
		})
	}
}

// UpdateOrderStatusHandler drives the fulfillment state machine (admin).
func UpdateOrderStatusHandler(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := orderIDParam(c)
		if !ok {
			return
		}
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		status, err := models.ParseOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := svc.SetOrderStatus(c.Request.Context(), orderID, status, middleware.UserID(c))
		if err != nil {
			respondOrderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Order status updated successfully",
			"order":   order,
		})
	}
}

// UpdatePaymentStatusHandler records a payment outcome (admin).
func UpdatePaymentStatusHandler(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := orderIDParam(c)
		if !ok {
			return
		}
		var req UpdatePaymentStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		status, err := models.ParsePaymentStatus(req.PaymentStatus)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := svc.SetPaymentStatus(c.Request.Context(), orderID, status)
		if err != nil {
			respondOrderError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Payment status updated successfully",
			"order":   order,
		})
	}
}

// GetAllOrdersHandler lists every order, newest first (admin).
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var list []models.Order
		if err := db.Preload("Items").Order("created_at DESC").Find(&list).Error; err != nil {
			zap.L().Error("list orders", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// GetUserOrdersHandler lists the authenticated user's orders.
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)
		if userID == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var list []models.Order
		if err := db.Where("user_id = ?", *userID).
			Preload("Items").Order("created_at DESC").Find(&list).Error; err != nil {
			zap.L().Error("list user orders", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// GetOrderByIDHandler fetches one order by numeric id or order number.
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param("orderID")
		if key == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		query := db.Preload("Items")
		if id, err := strconv.ParseUint(key, 10, 64); err == nil {
			query = query.Where("id = ? OR order_number = ?", id, key)
		} else {
			query = query.Where("order_number = ?", key)
		}

		var order models.Order
		if err := query.First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			zap.L().Error("load order", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func orderIDParam(c *gin.Context) (uint, bool) {
	raw := c.Param("orderID")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return 0, false
	}
	return uint(id), true
}
