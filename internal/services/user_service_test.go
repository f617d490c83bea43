package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"shop-api/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestUpdateProfile(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(store)
	ctx := context.Background()

	user := seedTestUser(store, "alice", domain.RoleCustomer)

	got, err := svc.UpdateProfile(ctx, user, ProfileUpdate{
		Name:     strPtr("  Alice Cooper  "),
		Email:    strPtr("Alice.Cooper@Test.com"),
		Password: strPtr("new-password"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Cooper", got.Name)
	assert.Equal(t, "alice.cooper@test.com", got.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("new-password")))
	assert.Equal(t, domain.RoleCustomer, got.Role, "profile updates never touch the role")

	_, err = svc.UpdateProfile(ctx, nil, ProfileUpdate{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUpdateProfileBlankFieldsIgnored(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(store)
	ctx := context.Background()

	user := seedTestUser(store, "alice", domain.RoleCustomer)

	got, err := svc.UpdateProfile(ctx, user, ProfileUpdate{
		Name:  strPtr("   "),
		Email: strPtr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, user.Name, got.Name)
	assert.Equal(t, user.Email, got.Email)
}

func TestUpdateProfileEmailConflict(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(store)
	ctx := context.Background()

	alice := seedTestUser(store, "alice", domain.RoleCustomer)
	seedTestUser(store, "bob", domain.RoleCustomer)

	_, err := svc.UpdateProfile(ctx, alice, ProfileUpdate{Email: strPtr("bob@test.com")})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	// Re-submitting your own email is not a conflict.
	_, err = svc.UpdateProfile(ctx, alice, ProfileUpdate{Email: strPtr("ALICE@test.com")})
	assert.NoError(t, err)
}

func TestListUsersRequiresAdmin(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(store)
	ctx := context.Background()

	admin := seedTestUser(store, "root", domain.RoleAdmin)
	customer := seedTestUser(store, "alice", domain.RoleCustomer)

	_, err := svc.ListUsers(ctx, customer)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	users, err := svc.ListUsers(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestDeleteUser(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(store)
	ctx := context.Background()

	admin := seedTestUser(store, "root", domain.RoleAdmin)
	customer := seedTestUser(store, "alice", domain.RoleCustomer)

	err := svc.DeleteUser(ctx, customer, customer.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = svc.DeleteUser(ctx, admin, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, svc.DeleteUser(ctx, admin, customer.ID))

	got, err := store.Users().FindByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteUserWithOrdersRejected(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(store)
	ctx := context.Background()

	admin := seedTestUser(store, "root", domain.RoleAdmin)
	customer := seedTestUser(store, "alice", domain.RoleCustomer)
	seedTestOrder(store, customer.ID, domain.StatusDelivered)

	err := svc.DeleteUser(ctx, admin, customer.ID)
	assert.ErrorIs(t, err, domain.ErrUserHasOrders)

	got, err := store.Users().FindByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.NotNil(t, got, "the account stays when deletion is rejected")
}
