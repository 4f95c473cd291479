package orderControllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omrannajeeb/leohol/models"
	"github.com/omrannajeeb/leohol/services/orders"
)

// stubService lets each test script the service outcome.
type stubService struct {
	createResp  *orders.CreateOrderResponse
	createErr   error
	createReq   *orders.CreateOrderRequest
	createActor orders.Actor

	statusOrder *models.Order
	statusErr   error
	lastStatus  models.OrderStatus

	paymentOrder *models.Order
	paymentErr   error
	lastPayment  models.PaymentStatus
}

func (s *stubService) CreateOrder(ctx context.Context, req *orders.CreateOrderRequest, actor orders.Actor) (*orders.CreateOrderResponse, error) {
	s.createReq = req
	s.createActor = actor
	return s.createResp, s.createErr
}

func (s *stubService) SetOrderStatus(ctx context.Context, orderID uint, status models.OrderStatus, actorID *string) (*models.Order, error) {
	s.lastStatus = status
	return s.statusOrder, s.statusErr
}

func (s *stubService) SetPaymentStatus(ctx context.Context, orderID uint, status models.PaymentStatus) (*models.Order, error) {
	s.lastPayment = status
	return s.paymentOrder, s.paymentErr
}

func orderRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/orders", CreateOrderHandler(svc))
	r.PUT("/orders/:orderID/status", UpdateOrderStatusHandler(svc))
	r.PUT("/orders/:orderID/payment-status", UpdatePaymentStatusHandler(svc))
	return r
}

const createBody = `{
	"items": [{"product": 1, "quantity": 2, "size": "M"}],
	"shippingAddress": {"street": "12 Rainbow St", "city": "Amman", "country": "JO"},
	"customerInfo": {"firstName": "Lina", "lastName": "Haddad", "email": "lina@example.com", "mobile": "+9627912345678"},
	"paymentMethod": "cod"
}`

func TestCreateOrderHandlerSuccess(t *testing.T) {
	svc := &stubService{createResp: &orders.CreateOrderResponse{
		OrderID:     1,
		OrderNumber: "ORD17000",
		TotalAmount: 20,
		Currency:    "USD",
		Status:      models.OrderStatusPending,
	}}
	r := orderRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(createBody))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Message string                     `json:"message"`
		Order   orders.CreateOrderResponse `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Order created successfully", body.Message)
	assert.Equal(t, "ORD17000", body.Order.OrderNumber)

	require.NotNil(t, svc.createReq)
	assert.Equal(t, uint(1), svc.createReq.Items[0].ProductID)
	assert.Nil(t, svc.createActor.UserID, "no token means guest checkout")
}

func TestCreateOrderHandlerRejectsMalformedJSON(t *testing.T) {
	svc := &stubService{}
	r := orderRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, svc.createReq, "the service must not be reached")
}

func TestCreateOrderHandlerErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "validation",
			err:      &orders.ValidationError{Message: "Invalid currency"},
			wantCode: http.StatusBadRequest,
			wantBody: "Invalid currency",
		},
		{
			name: "availability",
			err: &orders.AvailabilityError{
				Product: "Linen Shirt", Size: "M", Available: 1, Requested: 2,
			},
			wantCode: http.StatusBadRequest,
			wantBody: "Insufficient stock for Linen Shirt (size: M). Available: 1, Requested: 2",
		},
		{
			name:     "size not found",
			err:      &orders.SizeNotFoundError{Size: "L", Product: "Linen Shirt"},
			wantCode: http.StatusBadRequest,
			wantBody: "Size 'L' not found for product Linen Shirt",
		},
		{
			name:     "product not found",
			err:      &orders.ProductNotFoundError{ProductID: 99},
			wantCode: http.StatusNotFound,
			wantBody: "Product not found: 99",
		},
		{
			name:     "internal failure is generic",
			err:      errors.New("pq: connection reset"),
			wantCode: http.StatusInternalServerError,
			wantBody: "Failed to process order",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubService{createErr: tc.err}
			r := orderRouter(svc)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(createBody))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.wantCode, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.wantBody, body["error"])
		})
	}
}

func TestUpdateOrderStatusHandler(t *testing.T) {
	svc := &stubService{statusOrder: &models.Order{ID: 7, Status: models.OrderStatusDelivered}}
	r := orderRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/orders/7/status",
		strings.NewReader(`{"status": "delivered"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.OrderStatusDelivered, svc.lastStatus)
}

func TestUpdateOrderStatusHandlerRejectsUnknownStatus(t *testing.T) {
	svc := &stubService{}
	r := orderRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/orders/7/status",
		strings.NewReader(`{"status": "teleported"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateOrderStatusHandlerUnknownOrder(t *testing.T) {
	svc := &stubService{statusErr: orders.ErrOrderNotFound}
	r := orderRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/orders/99/status",
		strings.NewReader(`{"status": "shipped"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateOrderStatusHandlerBadID(t *testing.T) {
	svc := &stubService{}
	r := orderRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/orders/abc/status",
		strings.NewReader(`{"status": "shipped"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdatePaymentStatusHandler(t *testing.T) {
	svc := &stubService{paymentOrder: &models.Order{ID: 7, PaymentStatus: models.PaymentStatusCompleted}}
	r := orderRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/orders/7/payment-status",
		strings.NewReader(`{"payment_status": "completed"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.PaymentStatusCompleted, svc.lastPayment)
}

func TestUpdatePaymentStatusHandlerAlreadyCompleted(t *testing.T) {
	svc := &stubService{paymentErr: &orders.ValidationError{Message: "Order payment is already completed"}}
	r := orderRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/orders/7/payment-status",
		strings.NewReader(`{"payment_status": "pending"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Order payment is already completed", body["error"])
}
