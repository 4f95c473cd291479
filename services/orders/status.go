package orders

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/omrannajeeb/leohol/models"
)

// SetOrderStatus moves an order through the fulfillment state machine. On the
// first transition to "delivered" it decrements the matching Inventory ledger
// row for every line item, floored at zero; line items without a matching row
// are skipped. The decrement is independent of the Product stock already
// reserved at creation time.
func (s *Service) SetOrderStatus(ctx context.Context, orderID uint, status models.OrderStatus, actorID *string) (*models.Order, error) {
	order, err := s.repo.FindByID(orderID)
	if err != nil {
		return nil, fmt.Errorf("load order %d: %w", orderID, err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	prev := order.Status
	order.Status = status
	if err := s.repo.SaveStatus(order); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	if status == models.OrderStatusDelivered && prev != status {
		if err := s.consumeInventory(order, actorID); err != nil {
			return nil, err
		}
	}

	s.notifier.EmitOrderUpdate(order)
	s.logger.Info("order status updated",
		zap.Uint("order_id", order.ID),
		zap.String("from", string(prev)),
		zap.String("to", string(status)))
	return order, nil
}

func (s *Service) consumeInventory(order *models.Order, actorID *string) error {
	for _, item := range order.Items {
		inv, err := s.ledger.Find(item.ProductID, item.Size, item.Color)
		if err != nil {
			return fmt.Errorf("find inventory for product %d: %w", item.ProductID, err)
		}
		if inv == nil {
			// No ledger row for this variant; not an error.
			continue
		}
		quantity := inv.Quantity - item.Quantity
		if quantity < 0 {
			quantity = 0
		}
		if err := s.ledger.UpdateQuantity(inv.ID, quantity, actorID); err != nil {
			return fmt.Errorf("update inventory %d: %w", inv.ID, err)
		}
	}
	return nil
}

// SetPaymentStatus records the payment outcome for an order. A completed
// payment never regresses except to "failed" on an explicit gateway
// rejection.
func (s *Service) SetPaymentStatus(ctx context.Context, orderID uint, status models.PaymentStatus) (*models.Order, error) {
	order, err := s.repo.FindByID(orderID)
	if err != nil {
		return nil, fmt.Errorf("load order %d: %w", orderID, err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if order.PaymentStatus == models.PaymentStatusCompleted && status != models.PaymentStatusFailed {
		return nil, &ValidationError{Message: "Order payment is already completed"}
	}

	order.PaymentStatus = status
	if err := s.repo.SaveStatus(order); err != nil {
		return nil, fmt.Errorf("update payment status: %w", err)
	}

	s.notifier.EmitOrderUpdate(order)
	return order, nil
}
