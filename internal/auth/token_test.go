package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-api/internal/domain"
)

func TestIssueAndVerify(t *testing.T) {
	m := NewTokenManager("signing-key", time.Hour)

	token, err := m.Issue(42, domain.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := NewTokenManager("signing-key", time.Hour)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := m.Verify(token)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	issuer := NewTokenManager("key-one", time.Hour)
	verifier := NewTokenManager("key-two", time.Hour)

	token, err := issuer.Issue(1, domain.RoleCustomer)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	// NewTokenManager clamps non-positive ttls, so build the already
	// expired manager directly.
	m := &TokenManager{secret: []byte("signing-key"), ttl: -time.Minute}

	token, err := m.Issue(1, domain.RoleCustomer)
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestNewTokenManagerDefaultTTL(t *testing.T) {
	m := NewTokenManager("signing-key", 0)
	assert.Equal(t, DefaultTokenTTL, m.ttl)
}
