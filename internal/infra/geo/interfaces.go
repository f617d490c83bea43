package geo

import (
	"context"

	"shop-api/internal/domain"
)

type ClientInterface interface {
	SearchAddress(ctx context.Context, keyword string, limit int) ([]AddressSuggestion, error)
	NearbyPickupPoints(ctx context.Context, postalCode string, limit int) ([]domain.PickupPoint, error)
}

var _ ClientInterface = (*Client)(nil)
