package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"shop-api/internal/auth"
	"shop-api/internal/domain"
	"shop-api/internal/repository"
)

const bcryptCost = 10

type AuthService struct {
	store       repository.Store
	tokens      *auth.TokenManager
	adminSecret string
}

func NewAuthService(store repository.Store, tokens *auth.TokenManager, adminSecret string) *AuthService {
	return &AuthService{store: store, tokens: tokens, adminSecret: adminSecret}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	return s.register(ctx, name, email, password, domain.RoleCustomer)
}

// RegisterAdmin creates an ADMIN account; callers must present the
// deployment's admin secret.
func (s *AuthService) RegisterAdmin(ctx context.Context, name, email, password, adminSecret string) (*domain.User, error) {
	if s.adminSecret == "" || adminSecret != s.adminSecret {
		return nil, domain.ErrForbidden
	}
	return s.register(ctx, name, email, password, domain.RoleAdmin)
}

func (s *AuthService) register(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", domain.ErrValidation)
	}

	existing, err := s.store.Users().FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.store.Users().Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and returns a bearer token with the user.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	user, err := s.store.Users().FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ResolveUser loads the acting identity for a verified token claim.
func (s *AuthService) ResolveUser(ctx context.Context, claims *auth.Claims) (*domain.User, error) {
	user, err := s.store.Users().FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}
