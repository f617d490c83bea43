package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-api/internal/domain"
)

func TestProductCRUDRequiresAdmin(t *testing.T) {
	store := newMemStore()
	svc := NewProductService(store)
	ctx := context.Background()

	customer := seedTestUser(store, "alice", domain.RoleCustomer)

	input := ProductInput{
		Name:        "Chrono",
		Description: "A chronograph",
		Price:       decimal.RequireFromString("199.90"),
	}

	_, err := svc.Create(ctx, customer, input)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.Create(ctx, nil, input)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.Update(ctx, customer, 1, ProductUpdate{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = svc.Delete(ctx, customer, 1)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreateProduct(t *testing.T) {
	store := newMemStore()
	svc := NewProductService(store)
	ctx := context.Background()

	admin := seedTestUser(store, "root", domain.RoleAdmin)

	product, err := svc.Create(ctx, admin, ProductInput{
		Name:          "Chrono",
		Description:   "A chronograph",
		Price:         decimal.RequireFromString("199.90"),
		StockQuantity: 10,
		Images: []domain.ProductImage{
			{URL: "https://img.test/a.jpg"},
			{URL: "https://img.test/b.jpg", AltText: "side view"},
		},
	})
	require.NoError(t, err)
	require.Len(t, product.Images, 2)

	// First image becomes primary, positions follow input order, and a
	// missing alt text falls back to the product name.
	assert.True(t, product.Images[0].IsPrimary)
	assert.Equal(t, 0, product.Images[0].Position)
	assert.Equal(t, "Chrono", product.Images[0].AltText)
	assert.False(t, product.Images[1].IsPrimary)
	assert.Equal(t, "side view", product.Images[1].AltText)
}

func TestCreateProductValidation(t *testing.T) {
	store := newMemStore()
	svc := NewProductService(store)
	ctx := context.Background()

	admin := seedTestUser(store, "root", domain.RoleAdmin)

	cases := []ProductInput{
		{Description: "no name", Price: decimal.NewFromInt(1)},
		{Name: "no description", Price: decimal.NewFromInt(1)},
		{Name: "x", Description: "y", Price: decimal.NewFromInt(-1)},
		{Name: "x", Description: "y", StockQuantity: -1},
	}
	for _, input := range cases {
		_, err := svc.Create(ctx, admin, input)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}

func TestUpdateProductPartial(t *testing.T) {
	store := newMemStore()
	svc := NewProductService(store)
	ctx := context.Background()

	admin := seedTestUser(store, "root", domain.RoleAdmin)
	watch := seedTestProduct(store, "Chrono", "10.00", 5)

	newPrice := decimal.RequireFromString("12.50")
	got, err := svc.Update(ctx, admin, watch.ID, ProductUpdate{Price: &newPrice})
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(newPrice))
	assert.Equal(t, "Chrono", got.Name, "untouched fields survive")
	assert.EqualValues(t, 5, got.StockQuantity)

	_, err = svc.Update(ctx, admin, 999, ProductUpdate{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetAndSearch(t *testing.T) {
	store := newMemStore()
	svc := NewProductService(store)
	ctx := context.Background()

	watch := seedTestProduct(store, "Diver Chrono", "10.00", 5)
	seedTestProduct(store, "Leather Strap", "5.00", 5)

	got, err := svc.Get(ctx, watch.ID)
	require.NoError(t, err)
	assert.Equal(t, watch.Name, got.Name)

	_, err = svc.Get(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	results, err := svc.Search(ctx, "chrono")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, watch.ID, results[0].ID)

	_, err = svc.Search(ctx, "   ")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRecommendedRanksBySales(t *testing.T) {
	store := newMemStore()
	svc := NewProductService(store)
	ctx := context.Background()

	user := seedTestUser(store, "alice", domain.RoleCustomer)
	popular := seedTestProduct(store, "Bestseller", "10.00", 50)
	niche := seedTestProduct(store, "Niche", "20.00", 50)
	seedTestProduct(store, "Unsold", "30.00", 50)

	order := &domain.Order{
		UserID:       user.ID,
		TotalAmount:  decimal.RequireFromString("70.00"),
		Status:       domain.StatusPaid,
		DeliveryMode: domain.DeliveryPickupPoint,
		Items: []domain.OrderItem{
			{ProductID: popular.ID, Quantity: 5, UnitPrice: popular.Price},
			{ProductID: niche.ID, Quantity: 1, UnitPrice: niche.Price},
		},
	}
	require.NoError(t, store.Orders().Create(ctx, order))

	got, err := svc.Recommended(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, popular.ID, got[0].ID)
	assert.Equal(t, niche.ID, got[1].ID)
}

func TestRecommendedFallsBackToCatalog(t *testing.T) {
	store := newMemStore()
	svc := NewProductService(store)
	ctx := context.Background()

	seedTestProduct(store, "A", "10.00", 1)
	seedTestProduct(store, "B", "10.00", 1)
	seedTestProduct(store, "C", "10.00", 1)

	// No orders yet: serve the catalog, capped at the limit.
	got, err := svc.Recommended(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestDeleteProduct(t *testing.T) {
	store := newMemStore()
	svc := NewProductService(store)
	ctx := context.Background()

	admin := seedTestUser(store, "root", domain.RoleAdmin)
	watch := seedTestProduct(store, "Chrono", "10.00", 5)

	require.NoError(t, svc.Delete(ctx, admin, watch.ID))

	_, err := svc.Get(ctx, watch.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = svc.Delete(ctx, admin, watch.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
