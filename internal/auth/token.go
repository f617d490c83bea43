package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"shop-api/internal/domain"
)

const DefaultTokenTTL = time.Hour

type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

type Claims struct {
	UserID uint64
	Role   domain.Role
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue mints an HS256 token carrying the subject id and role.
func (m *TokenManager) Issue(userID uint64, role domain.Role) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  strconv.FormatUint(userID, 10),
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  now.Add(m.ttl).Unix(),
	})
	return token.SignedString(m.secret)
}

// Verify parses and validates a token. Expired or malformed tokens map to
// ErrUnauthorized, never to an internal error.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	userID, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	role, _ := claims["role"].(string)
	return &Claims{UserID: userID, Role: domain.Role(role)}, nil
}
