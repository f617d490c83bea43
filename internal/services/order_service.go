package services

import (
	"context"
	"fmt"
	"log"

	"shop-api/internal/auth"
	"shop-api/internal/domain"
	rabbit "shop-api/internal/infra/rabbitmq"
	"shop-api/internal/repository"
)

type OrderService struct {
	store     repository.Store
	publisher rabbit.PublisherInterface
}

func NewOrderService(store repository.Store, pub rabbit.PublisherInterface) *OrderService {
	return &OrderService{store: store, publisher: pub}
}

// ListOrders returns the user's orders newest first, items and payments
// loaded.
func (s *OrderService) ListOrders(ctx context.Context, userID uint64) ([]domain.Order, error) {
	return s.store.Orders().ListByUser(ctx, userID)
}

func (s *OrderService) GetOrder(ctx context.Context, actor *domain.User, orderID uint64) (*domain.Order, error) {
	order, err := s.store.Orders().FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("order %d: %w", orderID, domain.ErrNotFound)
	}
	if err := auth.Authorize(actor, auth.ActionViewOrder, order.UserID); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateStatus moves an order along the fulfilment chain. Admin only.
func (s *OrderService) UpdateStatus(ctx context.Context, actor *domain.User, orderID uint64, status domain.OrderStatus) (*domain.Order, error) {
	if err := auth.Authorize(actor, auth.ActionUpdateOrderStatus, 0); err != nil {
		return nil, err
	}

	order, err := s.store.Orders().FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("order %d: %w", orderID, domain.ErrNotFound)
	}
	if !domain.ValidTransition(order.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, order.Status, status)
	}

	if err := s.store.Orders().UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}

	// The event is built before the status is overwritten so the
	// goroutine never reads the mutated struct.
	evt := domain.OrderStatusChangedEvent{
		OrderID: order.ID,
		UserID:  order.UserID,
		From:    order.Status,
		To:      status,
	}
	go s.publishStatusChanged(context.Background(), evt)

	order.Status = status
	return order, nil
}

// Cancel is allowed for the owner or an admin, and rejected once the
// order has shipped. Cancelled orders are not restocked.
func (s *OrderService) Cancel(ctx context.Context, actor *domain.User, orderID uint64) (*domain.Order, error) {
	order, err := s.store.Orders().FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("order %d: %w", orderID, domain.ErrNotFound)
	}
	if err := auth.Authorize(actor, auth.ActionCancelOrder, order.UserID); err != nil {
		return nil, err
	}
	if !order.Cancellable() {
		return nil, fmt.Errorf("%w: order is %s", domain.ErrInvalidTransition, order.Status)
	}

	if err := s.store.Orders().UpdateStatus(ctx, orderID, domain.StatusCancelled); err != nil {
		return nil, err
	}

	go func() {
		evt := domain.OrderCancelledEvent{OrderID: order.ID, UserID: order.UserID}
		if err := s.publisher.Publish(context.Background(), "order.cancelled", evt); err != nil {
			log.Printf("Failed to publish order.cancelled for order %d: %v", order.ID, err)
		}
	}()

	order.Status = domain.StatusCancelled
	return order, nil
}

func (s *OrderService) publishStatusChanged(ctx context.Context, evt domain.OrderStatusChangedEvent) {
	if err := s.publisher.Publish(ctx, "order.status_changed", evt); err != nil {
		log.Printf("Failed to publish order.status_changed for order %d: %v", evt.OrderID, err)
	}
}
