package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shop-api/internal/domain"
	"shop-api/internal/mocks"
)

func newCheckoutFixture(t *testing.T) (*CheckoutService, *memStore, *mocks.MockPublisher) {
	t.Helper()
	store := newMemStore()
	pub := new(mocks.MockPublisher)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	return NewCheckoutService(store, pub), store, pub
}

func TestCheckoutSuccess(t *testing.T) {
	svc, store, _ := newCheckoutFixture(t)
	ctx := context.Background()

	user := seedTestUser(store, "alice", domain.RoleCustomer)
	watch := seedTestProduct(store, "Chrono", "10.00", 5)
	strap := seedTestProduct(store, "Strap", "5.00", 3)
	seedTestCart(store, user.ID, map[uint64]int64{watch.ID: 2, strap.ID: 1})

	order, err := svc.Checkout(ctx, user.ID, domain.DeliveryHome, &ShippingAddress{
		Address:    "1 rue de Rivoli",
		City:       "Paris",
		PostalCode: "75001",
	})
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Equal(t, domain.StatusPending, order.Status)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("25.00")),
		"total was %s", order.TotalAmount)
	require.Len(t, order.Items, 2)
	require.Len(t, order.Payments, 1)
	assert.Equal(t, domain.PaymentSuccess, order.Payments[0].Status)
	assert.True(t, order.Payments[0].Amount.Equal(order.TotalAmount))
	assert.NotEmpty(t, order.Payments[0].Reference)

	// Unit prices are frozen on the order line.
	for _, item := range order.Items {
		if item.ProductID == watch.ID {
			assert.True(t, item.UnitPrice.Equal(decimal.RequireFromString("10.00")))
			assert.EqualValues(t, 2, item.Quantity)
		}
	}

	// Stock was decremented and the cart emptied.
	p, err := store.Products().FindByID(ctx, watch.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, p.StockQuantity)

	cart, err := store.Carts().FindByUser(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, cart)
	assert.Empty(t, cart.Items)
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, store, _ := newCheckoutFixture(t)
	ctx := context.Background()

	user := seedTestUser(store, "bob", domain.RoleCustomer)
	seedTestCart(store, user.ID, nil)

	_, err := svc.Checkout(ctx, user.ID, domain.DeliveryPickupPoint, nil)
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestCheckoutHomeDeliveryRequiresAddress(t *testing.T) {
	svc, store, _ := newCheckoutFixture(t)
	ctx := context.Background()

	user := seedTestUser(store, "carl", domain.RoleCustomer)
	watch := seedTestProduct(store, "Chrono", "10.00", 5)
	seedTestCart(store, user.ID, map[uint64]int64{watch.ID: 1})

	cases := []*ShippingAddress{
		nil,
		{City: "Paris", PostalCode: "75001"},
		{Address: "1 rue de Rivoli", PostalCode: "75001"},
		{Address: "1 rue de Rivoli", City: "Paris"},
	}
	for _, addr := range cases {
		_, err := svc.Checkout(ctx, user.ID, domain.DeliveryHome, addr)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}

	// Nothing was touched by the rejected attempts.
	p, err := store.Products().FindByID(ctx, watch.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 5, p.StockQuantity)
}

func TestCheckoutRejectsUnknownDeliveryMode(t *testing.T) {
	svc, store, _ := newCheckoutFixture(t)

	user := seedTestUser(store, "dora", domain.RoleCustomer)
	_, err := svc.Checkout(context.Background(), user.ID, domain.DeliveryMode("DRONE"), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCheckoutInsufficientStockRollsBackEverything(t *testing.T) {
	svc, store, _ := newCheckoutFixture(t)
	ctx := context.Background()

	user := seedTestUser(store, "eve", domain.RoleCustomer)
	watch := seedTestProduct(store, "Chrono", "10.00", 5)
	rare := seedTestProduct(store, "Tourbillon", "900.00", 1)
	seedTestCart(store, user.ID, map[uint64]int64{watch.ID: 2, rare.ID: 3})

	_, err := svc.Checkout(ctx, user.ID, domain.DeliveryPickupPoint, nil)
	require.Error(t, err)

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "Tourbillon", stockErr.ProductName)
	assert.EqualValues(t, 1, stockErr.Available)

	// The first line's decrement was rolled back with the rest.
	p, err := store.Products().FindByID(ctx, watch.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 5, p.StockQuantity)

	cart, err := store.Carts().FindByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)

	orders, err := store.Orders().ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCheckoutConcurrentLastUnit(t *testing.T) {
	svc, store, _ := newCheckoutFixture(t)
	ctx := context.Background()

	lastOne := seedTestProduct(store, "Unique", "50.00", 1)

	alice := seedTestUser(store, "alice", domain.RoleCustomer)
	bob := seedTestUser(store, "bob", domain.RoleCustomer)
	seedTestCart(store, alice.ID, map[uint64]int64{lastOne.ID: 1})
	seedTestCart(store, bob.ID, map[uint64]int64{lastOne.ID: 1})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, userID := range []uint64{alice.ID, bob.ID} {
		wg.Add(1)
		go func(i int, userID uint64) {
			defer wg.Done()
			_, errs[i] = svc.Checkout(ctx, userID, domain.DeliveryPickupPoint, nil)
		}(i, userID)
	}
	wg.Wait()

	var won, lost int
	for _, err := range errs {
		if err == nil {
			won++
			continue
		}
		lost++
		var stockErr *domain.InsufficientStockError
		assert.True(t, errors.As(err, &stockErr))
	}
	assert.Equal(t, 1, won, "exactly one checkout should win the last unit")
	assert.Equal(t, 1, lost)

	p, err := store.Products().FindByID(ctx, lastOne.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, p.StockQuantity)
}

func TestCheckoutPublishesOrderCreated(t *testing.T) {
	store := newMemStore()
	pub := new(mocks.MockPublisher)

	published := make(chan struct{})
	pub.On("Publish", mock.Anything, "order.created", mock.Anything).
		Run(func(mock.Arguments) { close(published) }).
		Return(nil).Once()

	svc := NewCheckoutService(store, pub)
	ctx := context.Background()

	user := seedTestUser(store, "fred", domain.RoleCustomer)
	watch := seedTestProduct(store, "Chrono", "10.00", 5)
	seedTestCart(store, user.ID, map[uint64]int64{watch.ID: 1})

	_, err := svc.Checkout(ctx, user.ID, domain.DeliveryPickupPoint, nil)
	require.NoError(t, err)

	<-published
	pub.AssertExpectations(t)
}
