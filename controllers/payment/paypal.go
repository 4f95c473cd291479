package paymentControllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/omrannajeeb/leohol/config"
	"github.com/omrannajeeb/leohol/models"
)

// paymentService is the slice of the order service payment capture needs.
type paymentService interface {
	SetPaymentStatus(ctx context.Context, orderID uint, status models.PaymentStatus) (*models.Order, error)
}

var httpClient = &http.Client{Timeout: 15 * time.Second}

type paypalOrderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Links  []struct {
		Href string `json:"href"`
		Rel  string `json:"rel"`
	} `json:"links"`
}

// getAccessToken exchanges client credentials for a PayPal bearer token.
func getAccessToken(ctx context.Context, cfg *config.Config) (string, error) {
	if cfg.PayPalClientID == "" || cfg.PayPalSecret == "" {
		return "", errors.New("paypal configuration missing")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		cfg.PayPalAPIBase+"/v1/oauth2/token",
		strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(cfg.PayPalClientID, cfg.PayPalSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("paypal token endpoint returned %d", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	return body.AccessToken, nil
}

func paypalCall(ctx context.Context, cfg *config.Config, method, path string, payload interface{}) (*paypalOrderResponse, error) {
	token, err := getAccessToken(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, cfg.PayPalAPIBase+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("paypal returned %d for %s", resp.StatusCode, path)
	}

	var out paypalOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePayPalOrder creates a gateway order for a pending local order and
// stores the gateway reference on it.
func CreatePayPalOrder(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			OrderID uint `json:"order_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order_id is required"})
			return
		}

		var order models.Order
		if err := db.First(&order, input.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		if order.PaymentStatus == models.PaymentStatusCompleted {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order is already paid"})
			return
		}
		if order.TotalAmount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order total is invalid"})
			return
		}

		payload := gin.H{
			"intent": "CAPTURE",
			"purchase_units": []gin.H{{
				"reference_id": fmt.Sprintf("%d", order.ID),
				"description":  "Order " + order.OrderNumber,
				"amount": gin.H{
					"currency_code": order.Currency,
					"value":         fmt.Sprintf("%.2f", order.TotalAmount),
				},
			}},
		}

		result, err := paypalCall(c.Request.Context(), cfg, http.MethodPost, "/v2/checkout/orders", payload)
		if err != nil {
			zap.L().Error("paypal create order", zap.Uint("order_id", order.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create PayPal order"})
			return
		}

		if err := db.Model(&order).Update("payment_reference", result.ID).Error; err != nil {
			zap.L().Error("save payment reference", zap.Uint("order_id", order.ID), zap.Error(err))
		}
		c.JSON(http.StatusOK, gin.H{"id": result.ID, "status": result.Status, "links": result.Links})
	}
}

// CapturePayPalOrder captures a previously created gateway order and records
// the outcome on the local order: completed on success, failed on an
// explicit gateway rejection.
func CapturePayPalOrder(db *gorm.DB, cfg *config.Config, svc paymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			PayPalOrderID string `json:"paypal_order_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "paypal_order_id is required"})
			return
		}

		var order models.Order
		if err := db.First(&order, "payment_reference = ?", input.PayPalOrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found for PayPal reference"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		result, err := paypalCall(c.Request.Context(), cfg, http.MethodPost,
			"/v2/checkout/orders/"+input.PayPalOrderID+"/capture", nil)
		if err != nil {
			zap.L().Error("paypal capture", zap.Uint("order_id", order.ID), zap.Error(err))
			// Explicit gateway rejection: record the failure.
			if _, serr := svc.SetPaymentStatus(c.Request.Context(), order.ID, models.PaymentStatusFailed); serr != nil {
				zap.L().Error("record failed payment", zap.Uint("order_id", order.ID), zap.Error(serr))
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to capture PayPal order"})
			return
		}

		status := models.PaymentStatusFailed
		if result.Status == "COMPLETED" {
			status = models.PaymentStatusCompleted
		}
		updated, err := svc.SetPaymentStatus(c.Request.Context(), order.ID, status)
		if err != nil {
			zap.L().Error("record payment outcome", zap.Uint("order_id", order.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment outcome"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Payment captured",
			"status":  result.Status,
			"order":   updated,
		})
	}
}
