package services

import (
	"context"
	"fmt"

	"shop-api/internal/auth"
	"shop-api/internal/domain"
	"shop-api/internal/repository"
)

type ReviewService struct {
	store repository.Store
}

func NewReviewService(store repository.Store) *ReviewService {
	return &ReviewService{store: store}
}

// Add records one review per (user, product); a second submission for the
// same product is rejected on every path.
func (s *ReviewService) Add(ctx context.Context, actor *domain.User, productID uint64, rating int, comment string) (*domain.Review, error) {
	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrValidation)
	}

	var reviewID uint64
	err := s.store.Atomically(ctx, func(tx repository.Store) error {
		product, err := tx.Products().FindByID(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("product %d: %w", productID, domain.ErrNotFound)
		}

		existing, err := tx.Reviews().FindByUserAndProduct(ctx, actor.ID, productID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrReviewExists
		}

		review := &domain.Review{
			UserID:    actor.ID,
			ProductID: productID,
			Rating:    rating,
			Comment:   comment,
		}
		if err := tx.Reviews().Create(ctx, review); err != nil {
			return err
		}
		reviewID = review.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.store.Reviews().FindByID(ctx, reviewID)
}

func (s *ReviewService) ListByProduct(ctx context.Context, productID uint64) ([]domain.Review, error) {
	return s.store.Reviews().ListByProduct(ctx, productID)
}

func (s *ReviewService) Delete(ctx context.Context, actor *domain.User, reviewID uint64) error {
	review, err := s.store.Reviews().FindByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review == nil {
		return fmt.Errorf("review %d: %w", reviewID, domain.ErrNotFound)
	}
	if err := auth.Authorize(actor, auth.ActionDeleteReview, review.UserID); err != nil {
		return err
	}
	return s.store.Reviews().Delete(ctx, reviewID)
}
