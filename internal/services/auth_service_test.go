package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"shop-api/internal/auth"
	"shop-api/internal/domain"
)

const testAdminSecret = "super-secret"

func newAuthFixture() (*AuthService, *memStore, *auth.TokenManager) {
	store := newMemStore()
	tokens := auth.NewTokenManager("test-signing-key", auth.DefaultTokenTTL)
	return NewAuthService(store, tokens, testAdminSecret), store, tokens
}

func TestRegister(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	user, err := svc.Register(ctx, "Alice", "Alice@Test.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "alice@test.com", user.Email, "email is normalized")
	assert.Equal(t, domain.RoleCustomer, user.Role)
	assert.NotEqual(t, "hunter22", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22")))
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	cases := []struct{ name, email, password string }{
		{"", "a@b.com", "pw"},
		{"Alice", "", "pw"},
		{"Alice", "a@b.com", ""},
	}
	for _, tc := range cases {
		_, err := svc.Register(ctx, tc.name, tc.email, tc.password)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "alice@test.com", "pw1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Imposter", "ALICE@test.com", "pw2")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestRegisterAdmin(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.RegisterAdmin(ctx, "Root", "root@test.com", "pw", "wrong-secret")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	admin, err := svc.RegisterAdmin(ctx, "Root", "root@test.com", "pw", testAdminSecret)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
}

func TestRegisterAdminDisabledWithoutSecret(t *testing.T) {
	store := newMemStore()
	tokens := auth.NewTokenManager("test-signing-key", auth.DefaultTokenTTL)
	svc := NewAuthService(store, tokens, "")

	// An empty configured secret never matches, even an empty input.
	_, err := svc.RegisterAdmin(context.Background(), "Root", "root@test.com", "pw", "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLogin(t *testing.T) {
	svc, _, tokens := newAuthFixture()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "Alice", "alice@test.com", "hunter22")
	require.NoError(t, err)

	token, user, err := svc.Login(ctx, "alice@test.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
	assert.Equal(t, domain.RoleCustomer, claims.Role)
}

func TestLoginBadCredentialsAreIndistinguishable(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "alice@test.com", "hunter22")
	require.NoError(t, err)

	_, _, wrongPassword := svc.Login(ctx, "alice@test.com", "nope")
	_, _, unknownEmail := svc.Login(ctx, "nobody@test.com", "nope")

	assert.ErrorIs(t, wrongPassword, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, domain.ErrInvalidCredentials)
}

func TestResolveUser(t *testing.T) {
	svc, store, _ := newAuthFixture()
	ctx := context.Background()

	user := seedTestUser(store, "alice", domain.RoleCustomer)

	got, err := svc.ResolveUser(ctx, &auth.Claims{UserID: user.ID, Role: user.Role})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	// A token for a deleted account is rejected.
	_, err = svc.ResolveUser(ctx, &auth.Claims{UserID: 999})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
