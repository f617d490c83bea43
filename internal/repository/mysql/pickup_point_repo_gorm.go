package mysql

import (
	"context"

	"shop-api/internal/domain"

	"gorm.io/gorm"
)

type pickupPointRepo struct {
	db *gorm.DB
}

func (r *pickupPointRepo) Create(ctx context.Context, point *domain.PickupPoint) error {
	return r.db.WithContext(ctx).Create(point).Error
}

func (r *pickupPointRepo) List(ctx context.Context) ([]domain.PickupPoint, error) {
	var out []domain.PickupPoint
	if err := r.db.WithContext(ctx).Order("city ASC, name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
