package orders

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/omrannajeeb/leohol/models"
)

// Work is one order-assembly critical section. In transactional mode every
// write is invisible to other requests until Commit; in degraded sequential
// mode writes apply immediately and Rollback is a no-op.
type Work interface {
	Products() ProductStore
	Orders() OrderStore
	Recipients() RecipientStore
	Transactional() bool
	Commit() error
	Rollback()
}

// WorkFactory opens a unit of work, degrading to sequential mode when the
// storage engine cannot start a transaction.
type WorkFactory interface {
	Begin(ctx context.Context) Work
}

// ProductStore reads and writes catalog products inside a unit of work.
type ProductStore interface {
	// FindForUpdate loads a product with its size variants and images,
	// row-locked when the work is transactional. Returns (nil, nil) when the
	// product does not exist.
	FindForUpdate(id uint) (*models.Product, error)
	Save(p *models.Product) error
}

// OrderStore persists orders inside a unit of work. Create must return
// ErrOrderNumberConflict (possibly wrapped) when the order-number uniqueness
// constraint is violated.
type OrderStore interface {
	Create(o *models.Order) error
}

// RecipientStore upserts the denormalized customer profile keyed by
// (email, mobile).
type RecipientStore interface {
	Upsert(r *models.Recipient) error
}

// OrderRepository is the status engine's view of persisted orders.
type OrderRepository interface {
	// FindByID loads an order with its items; (nil, nil) when missing.
	FindByID(id uint) (*models.Order, error)
	SaveStatus(o *models.Order) error
}

// InventoryStore is the consumption-side ledger, decremented on first
// transition to a terminal fulfillment state. It has no isolation guarantee.
type InventoryStore interface {
	// Find returns (nil, nil) when no ledger row matches.
	Find(productID uint, size, color string) (*models.Inventory, error)
	UpdateQuantity(id uint, quantity int, actorID *string) error
}

// SettingsSource supplies the store-configured default currency; empty means
// none configured.
type SettingsSource interface {
	DefaultCurrency() string
}

// Notifier broadcasts order lifecycle events to connected listeners.
// Delivery is at-most-once and failures never reach the caller.
type Notifier interface {
	EmitNewOrder(order *models.Order)
	EmitOrderUpdate(order *models.Order)
}

// Actor is the identity resolved once at the request boundary. A nil UserID
// means guest checkout.
type Actor struct {
	UserID *string
}

// Service implements order assembly and the order status engine.
type Service struct {
	works    WorkFactory
	repo     OrderRepository
	ledger   InventoryStore
	settings SettingsSource
	notifier Notifier
	logger   *zap.Logger
}

func NewService(
	works WorkFactory,
	repo OrderRepository,
	ledger InventoryStore,
	settings SettingsSource,
	notifier Notifier,
	logger *zap.Logger,
) *Service {
	return &Service{
		works:    works,
		repo:     repo,
		ledger:   ledger,
		settings: settings,
		notifier: notifier,
		logger:   logger,
	}
}

type LineItemRequest struct {
	ProductID uint   `json:"product"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size,omitempty"`
}

type AddressRequest struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type CustomerRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Mobile          string `json:"mobile"`
	SecondaryMobile string `json:"secondaryMobile,omitempty"`
}

type CreateOrderRequest struct {
	Items           []LineItemRequest `json:"items"`
	ShippingAddress AddressRequest    `json:"shippingAddress"`
	CustomerInfo    CustomerRequest   `json:"customerInfo"`
	PaymentMethod   string            `json:"paymentMethod"`
	Currency        string            `json:"currency,omitempty"`
}

type CreateOrderResponse struct {
	OrderID     uint               `json:"order_id"`
	OrderNumber string             `json:"order_number"`
	TotalAmount float64            `json:"total_amount"`
	Currency    string             `json:"currency"`
	Status      models.OrderStatus `json:"status"`
}

// International format: optional "+", country code, subscriber number.
var mobilePattern = regexp.MustCompile(`^\+?[0-9]{1,4}[0-9]{9,10}$`)

// CreateOrder validates the cart, reserves stock for every line item,
// upserts the recipient and persists the order, all inside one unit of work.
// The "new order" event is emitted only after a successful commit.
func (s *Service) CreateOrder(ctx context.Context, req *CreateOrderRequest, actor Actor) (*CreateOrderResponse, error) {
	currency := req.Currency
	if currency == "" {
		currency = s.settings.DefaultCurrency()
	}
	if currency == "" {
		currency = models.DefaultCurrency
	}
	if !models.IsSupportedCurrency(currency) {
		return nil, &ValidationError{Message: "Invalid currency"}
	}
	exchangeRate := models.CurrencyExchangeRate(currency)

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	w := s.works.Begin(ctx)
	// Release is unconditional; Rollback after Commit is a no-op.
	defer w.Rollback()

	var totalAmount float64
	items := make([]models.OrderItem, 0, len(req.Items))

	for _, line := range req.Items {
		product, err := w.Products().FindForUpdate(line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("load product %d: %w", line.ProductID, err)
		}
		if product == nil {
			return nil, &ProductNotFoundError{ProductID: line.ProductID}
		}

		if line.Size != "" {
			idx := product.FindSize(line.Size)
			if idx == -1 {
				return nil, &SizeNotFoundError{Size: line.Size, Product: product.Name}
			}
			if product.Sizes[idx].Stock < line.Quantity {
				return nil, &AvailabilityError{
					Product:   product.Name,
					Size:      line.Size,
					Available: product.Sizes[idx].Stock,
					Requested: line.Quantity,
				}
			}
			product.Sizes[idx].Stock -= line.Quantity
		} else {
			if product.Stock < line.Quantity {
				return nil, &AvailabilityError{
					Product:   product.Name,
					Available: product.Stock,
					Requested: line.Quantity,
				}
			}
			product.Stock -= line.Quantity
		}

		price := product.Price * exchangeRate
		totalAmount += price * float64(line.Quantity)
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Quantity:  line.Quantity,
			Price:     price,
			Name:      product.Name,
			Image:     product.FirstImage(),
			Size:      line.Size,
		})

		// Aggregate stock is recomputed from variants on save.
		if err := w.Products().Save(product); err != nil {
			return nil, fmt.Errorf("update stock for product %d: %w", product.ID, err)
		}
	}

	recipient := &models.Recipient{
		FirstName:       req.CustomerInfo.FirstName,
		LastName:        req.CustomerInfo.LastName,
		Email:           req.CustomerInfo.Email,
		Mobile:          req.CustomerInfo.Mobile,
		SecondaryMobile: req.CustomerInfo.SecondaryMobile,
		Street:          req.ShippingAddress.Street,
		City:            req.ShippingAddress.City,
		Country:         req.ShippingAddress.Country,
	}
	if err := w.Recipients().Upsert(recipient); err != nil {
		return nil, fmt.Errorf("upsert recipient: %w", err)
	}

	order := &models.Order{
		OrderNumber:  newOrderNumber(),
		UserID:       actor.UserID,
		Items:        items,
		TotalAmount:  totalAmount,
		Currency:     currency,
		ExchangeRate: exchangeRate,
		ShippingAddress: models.ShippingAddress{
			Street:  req.ShippingAddress.Street,
			City:    req.ShippingAddress.City,
			Country: req.ShippingAddress.Country,
		},
		CustomerInfo: models.CustomerInfo{
			FirstName:       req.CustomerInfo.FirstName,
			LastName:        req.CustomerInfo.LastName,
			Email:           req.CustomerInfo.Email,
			Mobile:          req.CustomerInfo.Mobile,
			SecondaryMobile: req.CustomerInfo.SecondaryMobile,
		},
		PaymentMethod: req.PaymentMethod,
		// All methods start unpaid pending provider confirmation.
		PaymentStatus: models.PaymentStatusPending,
		Status:        models.OrderStatusPending,
	}

	if err := w.Orders().Create(order); err != nil {
		if !errors.Is(err, ErrOrderNumberConflict) {
			return nil, fmt.Errorf("create order: %w", err)
		}
		// Regenerate with a random suffix and retry exactly once.
		resetForRetry(order)
		order.OrderNumber = retryOrderNumber()
		s.logger.Warn("order number collision, retrying",
			zap.String("order_number", order.OrderNumber))
		if err := w.Orders().Create(order); err != nil {
			return nil, fmt.Errorf("create order after regenerating number: %w", err)
		}
	}

	if err := w.Commit(); err != nil {
		return nil, fmt.Errorf("commit order: %w", err)
	}

	s.notifier.EmitNewOrder(order)
	s.logger.Info("order created",
		zap.String("order_number", order.OrderNumber),
		zap.Float64("total", order.TotalAmount),
		zap.String("currency", order.Currency),
		zap.Bool("transactional", w.Transactional()))

	return &CreateOrderResponse{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		TotalAmount: order.TotalAmount,
		Currency:    order.Currency,
		Status:      order.Status,
	}, nil
}

func validateRequest(req *CreateOrderRequest) error {
	if len(req.Items) == 0 {
		return &ValidationError{Message: "Order must contain at least one item"}
	}
	for _, line := range req.Items {
		if line.Quantity <= 0 {
			return &ValidationError{Message: "Item quantity must be at least 1"}
		}
	}
	if req.CustomerInfo.Email == "" || req.CustomerInfo.Mobile == "" {
		return &ValidationError{Message: "Customer email and mobile number are required"}
	}
	if req.CustomerInfo.FirstName == "" || req.CustomerInfo.LastName == "" {
		return &ValidationError{Message: "Customer first and last name are required"}
	}
	if !mobilePattern.MatchString(req.CustomerInfo.Mobile) {
		return &ValidationError{Message: "Invalid mobile number format"}
	}
	if req.CustomerInfo.SecondaryMobile != "" && !mobilePattern.MatchString(req.CustomerInfo.SecondaryMobile) {
		return &ValidationError{Message: "Invalid secondary mobile number format"}
	}
	if req.ShippingAddress.Street == "" || req.ShippingAddress.City == "" || req.ShippingAddress.Country == "" {
		return &ValidationError{Message: "Complete shipping address is required"}
	}
	if !models.IsSupportedCountry(req.ShippingAddress.Country) {
		return &ValidationError{Message: fmt.Sprintf("Shipping to country '%s' is not supported", req.ShippingAddress.Country)}
	}
	if req.PaymentMethod != "card" && req.PaymentMethod != "cod" {
		return &ValidationError{Message: "Invalid payment method"}
	}
	return nil
}

func newOrderNumber() string {
	return fmt.Sprintf("ORD%d", time.Now().UnixMilli())
}

func retryOrderNumber() string {
	return fmt.Sprintf("ORD%d-%d", time.Now().UnixMilli(), rand.Intn(1000))
}

// resetForRetry clears storage-assigned identifiers so the retried insert is
// a fresh row set.
func resetForRetry(order *models.Order) {
	order.ID = 0
	for i := range order.Items {
		order.Items[i].ID = 0
		order.Items[i].OrderID = 0
	}
}
