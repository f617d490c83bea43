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

type UserService struct {
	store repository.Store
}

func NewUserService(store repository.Store) *UserService {
	return &UserService{store: store}
}

type ProfileUpdate struct {
	Name     *string
	Email    *string
	Password *string
}

// UpdateProfile lets a user edit their own name, email or password.
// The role is never touched here.
func (s *UserService) UpdateProfile(ctx context.Context, actor *domain.User, update ProfileUpdate) (*domain.User, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := auth.Authorize(actor, auth.ActionUpdateProfile, actor.ID); err != nil {
		return nil, err
	}

	user, err := s.store.Users().FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}

	if update.Name != nil && strings.TrimSpace(*update.Name) != "" {
		user.Name = strings.TrimSpace(*update.Name)
	}
	if update.Email != nil && strings.TrimSpace(*update.Email) != "" {
		email := strings.TrimSpace(strings.ToLower(*update.Email))
		other, err := s.store.Users().FindByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != user.ID {
			return nil, domain.ErrEmailTaken
		}
		user.Email = email
	}
	if update.Password != nil && *update.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.store.Users().Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, actor *domain.User) ([]domain.User, error) {
	if err := auth.Authorize(actor, auth.ActionManageUsers, 0); err != nil {
		return nil, err
	}
	return s.store.Users().List(ctx)
}

// DeleteUser removes an account, but only when it owns no orders; order
// history is never orphaned.
func (s *UserService) DeleteUser(ctx context.Context, actor *domain.User, userID uint64) error {
	if err := auth.Authorize(actor, auth.ActionManageUsers, 0); err != nil {
		return err
	}

	return s.store.Atomically(ctx, func(tx repository.Store) error {
		user, err := tx.Users().FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("user %d: %w", userID, domain.ErrNotFound)
		}

		n, err := tx.Orders().CountByUser(ctx, userID)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrUserHasOrders
		}

		return tx.Users().Delete(ctx, userID)
	})
}
