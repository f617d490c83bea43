package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"shop-api/internal/domain"
	"shop-api/internal/repository"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, data any) error {
	args := m.Called(ctx, routingKey, data)
	return args.Error(0)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByUser(ctx context.Context, userID uint64) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uint64, status domain.OrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOrderRepository) CountByUser(ctx context.Context, userID uint64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) MostPurchasedProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

// StubStore plugs individual repositories into the Store interface for
// unit tests. Atomically just runs the closure; rollback behavior is
// covered by the in-memory store in the services tests.
type StubStore struct {
	UsersRepo    repository.UserRepository
	ProductsRepo repository.ProductRepository
	CartsRepo    repository.CartRepository
	OrdersRepo   repository.OrderRepository
	ReviewsRepo  repository.ReviewRepository
	PickupsRepo  repository.PickupPointRepository
}

func (s *StubStore) Users() repository.UserRepository               { return s.UsersRepo }
func (s *StubStore) Products() repository.ProductRepository         { return s.ProductsRepo }
func (s *StubStore) Carts() repository.CartRepository               { return s.CartsRepo }
func (s *StubStore) Orders() repository.OrderRepository             { return s.OrdersRepo }
func (s *StubStore) Reviews() repository.ReviewRepository           { return s.ReviewsRepo }
func (s *StubStore) PickupPoints() repository.PickupPointRepository { return s.PickupsRepo }

func (s *StubStore) Atomically(ctx context.Context, fn func(repository.Store) error) error {
	return fn(s)
}
