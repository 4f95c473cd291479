package models

import (
	"errors"
	"strings"
	"time"
)

type OrderStatus string
type PaymentStatus string
type DeliveryStatus string

const (
	// Fulfillment statuses
	OrderStatusPending    OrderStatus = "pending"    // Order placed, awaiting confirmation
	OrderStatusProcessing OrderStatus = "processing" // Being prepared for dispatch
	OrderStatusShipped    OrderStatus = "shipped"    // Out for delivery
	OrderStatusDelivered  OrderStatus = "delivered"  // Customer received the item
	OrderStatusCancelled  OrderStatus = "cancelled"  // Cancelled before a terminal state

	// Payment statuses
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"

	// Delivery-company sub-statuses
	DeliveryStatusAssigned       DeliveryStatus = "assigned"
	DeliveryStatusPickedUp       DeliveryStatus = "picked_up"
	DeliveryStatusInTransit      DeliveryStatus = "in_transit"
	DeliveryStatusOutForDelivery DeliveryStatus = "out_for_delivery"
	DeliveryStatusDelivered      DeliveryStatus = "delivered"
	DeliveryStatusFailed         DeliveryStatus = "delivery_failed"
	DeliveryStatusReturned       DeliveryStatus = "returned"
	DeliveryStatusCancelled      DeliveryStatus = "cancelled"
)

// SupportedCountries is the shipping allow-list checked at order creation.
var SupportedCountries = []string{"JO", "SA", "AE", "KW", "QA", "BH", "OM", "EG", "IQ", "LB", "PS"}

func IsSupportedCountry(code string) bool {
	for _, c := range SupportedCountries {
		if c == code {
			return true
		}
	}
	return false
}

// ParseOrderStatus maps a request string to an OrderStatus.
func ParseOrderStatus(status string) (OrderStatus, error) {
	switch OrderStatus(strings.ToLower(status)) {
	case OrderStatusPending:
		return OrderStatusPending, nil
	case OrderStatusProcessing:
		return OrderStatusProcessing, nil
	case OrderStatusShipped:
		return OrderStatusShipped, nil
	case OrderStatusDelivered:
		return OrderStatusDelivered, nil
	case OrderStatusCancelled:
		return OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

// ParsePaymentStatus maps a request string to a PaymentStatus.
func ParsePaymentStatus(status string) (PaymentStatus, error) {
	switch PaymentStatus(strings.ToLower(status)) {
	case PaymentStatusPending:
		return PaymentStatusPending, nil
	case PaymentStatusCompleted:
		return PaymentStatusCompleted, nil
	case PaymentStatusFailed:
		return PaymentStatusFailed, nil
	default:
		return "", errors.New("invalid payment status")
	}
}

type ShippingAddress struct {
	Street  string `gorm:"not null" json:"street"`
	City    string `gorm:"not null" json:"city"`
	Country string `gorm:"not null" json:"country"`
}

type CustomerInfo struct {
	FirstName       string `gorm:"not null" json:"firstName"`
	LastName        string `gorm:"not null" json:"lastName"`
	Email           string `gorm:"not null" json:"email"`
	Mobile          string `gorm:"not null" json:"mobile"`
	SecondaryMobile string `json:"secondaryMobile,omitempty"`
}

// Order is an immutable audit record of a placed purchase. Status fields are
// the only parts mutated after creation; orders are never deleted.
type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	OrderNumber     string          `gorm:"uniqueIndex;not null" json:"order_number"`
	UserID          *string         `gorm:"index" json:"user_id,omitempty"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount     float64         `gorm:"not null" json:"total_amount"`
	Currency        string          `gorm:"type:VARCHAR(3);not null" json:"currency"`
	ExchangeRate    float64         `gorm:"not null;default:1" json:"exchange_rate"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	CustomerInfo    CustomerInfo    `gorm:"embedded;embeddedPrefix:customer_" json:"customer_info"`
	PaymentMethod   string          `gorm:"not null" json:"payment_method"` // "card" or "cod"
	PaymentStatus   PaymentStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	Status          OrderStatus     `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`

	// Payment gateway linkage
	PaymentReference string `json:"payment_reference,omitempty"`

	// Delivery-company linkage
	DeliveryCompanyID      *uint           `gorm:"index" json:"delivery_company_id,omitempty"`
	DeliveryStatus         *DeliveryStatus `gorm:"type:VARCHAR(20)" json:"delivery_status,omitempty"`
	DeliveryTrackingNumber string          `json:"delivery_tracking_number,omitempty"`
	DeliveryFee            float64         `json:"delivery_fee"`
	DeliveryAssignedAt     *time.Time      `json:"delivery_assigned_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderItem is a denormalized snapshot of one cart line at purchase time.
// Price is the unit price in the order currency.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"index" json:"order_id"`
	ProductID uint    `gorm:"not null" json:"product_id"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Size      string  `json:"size,omitempty"`
	Color     string  `json:"color,omitempty"`
}
