package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-api/internal/domain"
)

func TestGetOrCreateCartIsIdempotent(t *testing.T) {
	store := newMemStore()
	svc := NewCartService(store)
	ctx := context.Background()

	user := seedTestUser(store, "alice", domain.RoleCustomer)

	first, err := svc.GetOrCreateCart(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := svc.GetOrCreateCart(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestAddItemMergesExistingLine(t *testing.T) {
	store := newMemStore()
	svc := NewCartService(store)
	ctx := context.Background()

	user := seedTestUser(store, "alice", domain.RoleCustomer)
	watch := seedTestProduct(store, "Chrono", "10.00", 10)

	_, err := svc.AddItem(ctx, user.ID, watch.ID, 2)
	require.NoError(t, err)

	cart, err := svc.AddItem(ctx, user.ID, watch.ID, 3)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.EqualValues(t, 5, cart.Items[0].Quantity)
}

func TestAddItemConcurrentMergesBothLand(t *testing.T) {
	store := newMemStore()
	svc := NewCartService(store)
	ctx := context.Background()

	user := seedTestUser(store, "alice", domain.RoleCustomer)
	watch := seedTestProduct(store, "Chrono", "10.00", 100)

	_, err := svc.AddItem(ctx, user.ID, watch.ID, 1)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddItem(ctx, user.ID, watch.ID, 2)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	cart, err := store.Carts().FindByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.EqualValues(t, 21, cart.Items[0].Quantity, "every concurrent merge must land")
}

func TestAddItemValidation(t *testing.T) {
	store := newMemStore()
	svc := NewCartService(store)
	ctx := context.Background()

	user := seedTestUser(store, "alice", domain.RoleCustomer)
	watch := seedTestProduct(store, "Chrono", "10.00", 10)

	_, err := svc.AddItem(ctx, user.ID, watch.ID, 0)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.AddItem(ctx, user.ID, watch.ID, -1)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.AddItem(ctx, user.ID, 999, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddItemIgnoresStockLevel(t *testing.T) {
	store := newMemStore()
	svc := NewCartService(store)
	ctx := context.Background()

	user := seedTestUser(store, "alice", domain.RoleCustomer)
	watch := seedTestProduct(store, "Chrono", "10.00", 1)

	// Over-asking is fine here; stock is only enforced at checkout.
	cart, err := svc.AddItem(ctx, user.ID, watch.ID, 50)
	require.NoError(t, err)
	assert.EqualValues(t, 50, cart.Items[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	store := newMemStore()
	svc := NewCartService(store)
	ctx := context.Background()

	user := seedTestUser(store, "alice", domain.RoleCustomer)
	watch := seedTestProduct(store, "Chrono", "10.00", 10)
	seedTestCart(store, user.ID, map[uint64]int64{watch.ID: 3})

	cart, err := svc.RemoveItem(ctx, user.ID, watch.ID, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.EqualValues(t, 2, cart.Items[0].Quantity)

	// Removing more than remains deletes the line.
	cart, err = svc.RemoveItem(ctx, user.ID, watch.ID, 5)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = svc.RemoveItem(ctx, user.ID, watch.ID, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveItemDefaultsAmountToOne(t *testing.T) {
	store := newMemStore()
	svc := NewCartService(store)
	ctx := context.Background()

	user := seedTestUser(store, "alice", domain.RoleCustomer)
	watch := seedTestProduct(store, "Chrono", "10.00", 10)
	seedTestCart(store, user.ID, map[uint64]int64{watch.ID: 3})

	cart, err := svc.RemoveItem(ctx, user.ID, watch.ID, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, cart.Items[0].Quantity)
}

func TestClearCart(t *testing.T) {
	store := newMemStore()
	svc := NewCartService(store)
	ctx := context.Background()

	user := seedTestUser(store, "alice", domain.RoleCustomer)
	watch := seedTestProduct(store, "Chrono", "10.00", 10)
	strap := seedTestProduct(store, "Strap", "5.00", 10)
	seedTestCart(store, user.ID, map[uint64]int64{watch.ID: 1, strap.ID: 2})

	require.NoError(t, svc.Clear(ctx, user.ID))

	cart, err := store.Carts().FindByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	// Clearing a user with no cart is a no-op.
	other := seedTestUser(store, "bob", domain.RoleCustomer)
	assert.NoError(t, svc.Clear(ctx, other.ID))
}
