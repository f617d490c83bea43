package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shop-api/internal/domain"
	rabbit "shop-api/internal/infra/rabbitmq"
	"shop-api/internal/metrics"
	"shop-api/internal/repository"
)

// ShippingAddress carries the delivery fields for a HOME checkout.
type ShippingAddress struct {
	Address    string
	City       string
	PostalCode string
}

type CheckoutService struct {
	store     repository.Store
	publisher rabbit.PublisherInterface
	metrics   *metrics.CheckoutMetrics
}

func NewCheckoutService(store repository.Store, pub rabbit.PublisherInterface) *CheckoutService {
	return &CheckoutService{store: store, publisher: pub}
}

func (s *CheckoutService) SetMetrics(m *metrics.CheckoutMetrics) {
	s.metrics = m
}

// Checkout converts the user's cart into an order inside one transaction:
// stock is re-validated and decremented, the order with its items and a
// simulated payment is written, and the cart lines are deleted. Any
// failure rolls back every step, leaving the cart untouched.
func (s *CheckoutService) Checkout(ctx context.Context, userID uint64, mode domain.DeliveryMode, addr *ShippingAddress) (*domain.Order, error) {
	if mode == "" {
		mode = domain.DeliveryHome
	}
	if mode != domain.DeliveryHome && mode != domain.DeliveryPickupPoint {
		return nil, fmt.Errorf("%w: unknown delivery mode %q", domain.ErrValidation, mode)
	}
	if mode == domain.DeliveryHome {
		if addr == nil || addr.Address == "" || addr.City == "" || addr.PostalCode == "" {
			return nil, fmt.Errorf("%w: home delivery requires address, city and postal code", domain.ErrValidation)
		}
	}

	var orderID uint64
	err := s.store.Atomically(ctx, func(tx repository.Store) error {
		cart, err := tx.Carts().FindByUser(ctx, userID)
		if err != nil {
			return err
		}
		if cart == nil || len(cart.Items) == 0 {
			return domain.ErrEmptyCart
		}

		total := decimal.Zero
		items := make([]domain.OrderItem, 0, len(cart.Items))
		for _, line := range cart.Items {
			if line.Product == nil {
				return fmt.Errorf("cart line %d has no product", line.ID)
			}

			// The stock check lives inside the UPDATE itself, so a
			// concurrent checkout of the same product cannot slip
			// between a read and a write.
			ok, err := tx.Products().DecrementStock(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return &domain.InsufficientStockError{
					ProductName: line.Product.Name,
					Available:   line.Product.StockQuantity,
				}
			}

			total = total.Add(line.Product.Price.Mul(decimal.NewFromInt(line.Quantity)))
			items = append(items, domain.OrderItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitPrice: line.Product.Price,
			})
		}

		order := &domain.Order{
			UserID:       userID,
			TotalAmount:  total,
			Status:       domain.StatusPending,
			DeliveryMode: mode,
			Items:        items,
			Payments: []domain.Payment{{
				Amount:    total,
				Status:    domain.PaymentSuccess,
				Method:    domain.PaymentMethodCard,
				Reference: uuid.NewString(),
			}},
		}
		if addr != nil {
			order.ShippingAddress = &addr.Address
			order.ShippingCity = &addr.City
			order.ShippingPostalCode = &addr.PostalCode
		}

		if err := tx.Orders().Create(ctx, order); err != nil {
			return err
		}

		if err := tx.Carts().DeleteItems(ctx, cart.ID); err != nil {
			return err
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		if s.metrics != nil {
			s.metrics.Record(false)
		}
		return nil, err
	}

	order, err := s.store.Orders().FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.Record(true)
	}
	go s.publishOrderCreated(context.Background(), order)

	return order, nil
}

func (s *CheckoutService) publishOrderCreated(ctx context.Context, order *domain.Order) {
	evt := domain.OrderCreatedEvent{
		OrderID:     order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		ItemCount:   len(order.Items),
		CreatedAt:   order.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, "order.created", evt); err != nil {
		log.Printf("Failed to publish order.created for order %d: %v", order.ID, err)
	}
}
