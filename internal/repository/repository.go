package repository

import (
	"context"

	"shop-api/internal/domain"
)

// Lookup methods return (nil, nil) when the row is absent; callers decide
// which sentinel to surface.

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context) ([]domain.User, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uint64) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Search(ctx context.Context, keyword string) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uint64) error

	// DecrementStock atomically subtracts qty where stock covers it and
	// reports whether a row was changed. A false return means the stock
	// check failed; nothing was written.
	DecrementStock(ctx context.Context, productID uint64, qty int64) (bool, error)

	CreateCategory(ctx context.Context, category *domain.Category) error
	FindCategoryByName(ctx context.Context, name string) (*domain.Category, error)
}

type CartRepository interface {
	Create(ctx context.Context, cart *domain.Cart) error
	FindByUser(ctx context.Context, userID uint64) (*domain.Cart, error)
	FindItem(ctx context.Context, cartID, productID uint64) (*domain.CartItem, error)
	CreateItem(ctx context.Context, item *domain.CartItem) error

	// AdjustItemQuantity adds delta (which may be negative) to the line's
	// quantity inside the UPDATE itself, so concurrent merges on the same
	// line cannot overwrite each other.
	AdjustItemQuantity(ctx context.Context, itemID uint64, delta int64) error
	DeleteItem(ctx context.Context, itemID uint64) error
	DeleteItems(ctx context.Context, cartID uint64) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uint64) (*domain.Order, error)
	ListByUser(ctx context.Context, userID uint64) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id uint64, status domain.OrderStatus) error
	CountByUser(ctx context.Context, userID uint64) (int64, error)
	MostPurchasedProducts(ctx context.Context, limit int) ([]domain.Product, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	FindByID(ctx context.Context, id uint64) (*domain.Review, error)
	FindByUserAndProduct(ctx context.Context, userID, productID uint64) (*domain.Review, error)
	ListByProduct(ctx context.Context, productID uint64) ([]domain.Review, error)
	Delete(ctx context.Context, id uint64) error
}

type PickupPointRepository interface {
	Create(ctx context.Context, point *domain.PickupPoint) error
	List(ctx context.Context) ([]domain.PickupPoint, error)
}

// Store bundles the repositories behind one handle so services receive their
// data access explicitly instead of reaching for a package-level client.
type Store interface {
	Users() UserRepository
	Products() ProductRepository
	Carts() CartRepository
	Orders() OrderRepository
	Reviews() ReviewRepository
	PickupPoints() PickupPointRepository

	// Atomically runs fn against a Store bound to a single transaction.
	// The transaction commits when fn returns nil and rolls back when it
	// returns an error or panics.
	Atomically(ctx context.Context, fn func(Store) error) error
}
