package orders

import (
	"errors"
	"fmt"
)

// ErrOrderNumberConflict is returned by an OrderStore when persisting fails
// on the order-number uniqueness constraint specifically. The service
// regenerates the number and retries exactly once.
var ErrOrderNumberConflict = errors.New("order number conflict")

// ErrOrderNotFound is returned by the status engine for an unknown order id.
var ErrOrderNotFound = errors.New("order not found")

// ValidationError is a client-facing rejection of the request payload.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ProductNotFoundError identifies which line item referenced a missing
// product.
type ProductNotFoundError struct {
	ProductID uint
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("Product not found: %d", e.ProductID)
}

// SizeNotFoundError reports a requested size the product does not define,
// independent of stock level.
type SizeNotFoundError struct {
	Size    string
	Product string
}

func (e *SizeNotFoundError) Error() string {
	return fmt.Sprintf("Size '%s' not found for product %s", e.Size, e.Product)
}

// AvailabilityError reports insufficient stock with available-vs-requested
// context so the caller can retry with an adjusted quantity.
type AvailabilityError struct {
	Product   string
	Size      string
	Available int
	Requested int
}

func (e *AvailabilityError) Error() string {
	if e.Size != "" {
		return fmt.Sprintf("Insufficient stock for %s (size: %s). Available: %d, Requested: %d",
			e.Product, e.Size, e.Available, e.Requested)
	}
	return fmt.Sprintf("Insufficient stock for %s. Available: %d, Requested: %d",
		e.Product, e.Available, e.Requested)
}
