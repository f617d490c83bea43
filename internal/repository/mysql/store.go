package mysql

import (
	"context"

	"shop-api/internal/repository"

	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Users() repository.UserRepository          { return &userRepo{db: s.db} }
func (s *Store) Products() repository.ProductRepository    { return &productRepo{db: s.db} }
func (s *Store) Carts() repository.CartRepository          { return &cartRepo{db: s.db} }
func (s *Store) Orders() repository.OrderRepository        { return &orderRepo{db: s.db} }
func (s *Store) Reviews() repository.ReviewRepository      { return &reviewRepo{db: s.db} }
func (s *Store) PickupPoints() repository.PickupPointRepository {
	return &pickupPointRepo{db: s.db}
}

func (s *Store) Atomically(ctx context.Context, fn func(repository.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
