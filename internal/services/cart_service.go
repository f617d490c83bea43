package services

import (
	"context"
	"fmt"

	"shop-api/internal/domain"
	"shop-api/internal/repository"
)

type CartService struct {
	store repository.Store
}

func NewCartService(store repository.Store) *CartService {
	return &CartService{store: store}
}

// GetOrCreateCart lazily creates the user's cart on first access.
func (s *CartService) GetOrCreateCart(ctx context.Context, userID uint64) (*domain.Cart, error) {
	cart, err := s.store.Carts().FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}

	if err := s.store.Carts().Create(ctx, &domain.Cart{UserID: userID}); err != nil {
		return nil, err
	}
	return s.store.Carts().FindByUser(ctx, userID)
}

// AddItem inserts a new line or bumps an existing one. Stock is not
// checked here; it is only enforced at checkout.
func (s *CartService) AddItem(ctx context.Context, userID, productID uint64, quantity int64) (*domain.Cart, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrValidation)
	}

	err := s.store.Atomically(ctx, func(tx repository.Store) error {
		product, err := tx.Products().FindByID(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("product %d: %w", productID, domain.ErrNotFound)
		}

		cart, err := tx.Carts().FindByUser(ctx, userID)
		if err != nil {
			return err
		}
		if cart == nil {
			cart = &domain.Cart{UserID: userID}
			if err := tx.Carts().Create(ctx, cart); err != nil {
				return err
			}
		}

		item, err := tx.Carts().FindItem(ctx, cart.ID, productID)
		if err != nil {
			return err
		}
		if item != nil {
			return tx.Carts().AdjustItemQuantity(ctx, item.ID, quantity)
		}
		return tx.Carts().CreateItem(ctx, &domain.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  quantity,
		})
	})
	if err != nil {
		return nil, err
	}

	return s.store.Carts().FindByUser(ctx, userID)
}

// RemoveItem decrements a line by amount and deletes it when it reaches
// zero or below.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID uint64, amount int64) (*domain.Cart, error) {
	if amount <= 0 {
		amount = 1
	}

	err := s.store.Atomically(ctx, func(tx repository.Store) error {
		cart, err := tx.Carts().FindByUser(ctx, userID)
		if err != nil {
			return err
		}
		if cart == nil {
			return fmt.Errorf("cart: %w", domain.ErrNotFound)
		}

		item, err := tx.Carts().FindItem(ctx, cart.ID, productID)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("cart line for product %d: %w", productID, domain.ErrNotFound)
		}

		if item.Quantity-amount <= 0 {
			return tx.Carts().DeleteItem(ctx, item.ID)
		}
		return tx.Carts().AdjustItemQuantity(ctx, item.ID, -amount)
	})
	if err != nil {
		return nil, err
	}

	return s.store.Carts().FindByUser(ctx, userID)
}

// Clear deletes all lines of the user's cart. A missing cart is a no-op,
// matching GetOrCreateCart's idempotence.
func (s *CartService) Clear(ctx context.Context, userID uint64) error {
	return s.store.Atomically(ctx, func(tx repository.Store) error {
		cart, err := tx.Carts().FindByUser(ctx, userID)
		if err != nil {
			return err
		}
		if cart == nil {
			return nil
		}
		return tx.Carts().DeleteItems(ctx, cart.ID)
	})
}
