package services

import (
	"context"

	"shop-api/internal/domain"
	"shop-api/internal/infra/geo"
	"shop-api/internal/repository"
)

// PickupService serves the seeded pickup points and, when a postal code is
// given, live parcel-locker lookups from OpenStreetMap.
type PickupService struct {
	store repository.Store
	geo   geo.ClientInterface
}

func NewPickupService(store repository.Store, geoClient geo.ClientInterface) *PickupService {
	return &PickupService{store: store, geo: geoClient}
}

func (s *PickupService) List(ctx context.Context) ([]domain.PickupPoint, error) {
	return s.store.PickupPoints().List(ctx)
}

func (s *PickupService) Nearby(ctx context.Context, postalCode string, limit int) ([]domain.PickupPoint, error) {
	return s.geo.NearbyPickupPoints(ctx, postalCode, limit)
}
