package domain

import "time"

// Review is unique per (user, product); the unique index backs the
// one-review-per-product policy on every submission path.
type Review struct {
	ID        uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    uint64    `json:"userId" gorm:"not null;uniqueIndex:ux_reviews_user_product"`
	ProductID uint64    `json:"productId" gorm:"not null;uniqueIndex:ux_reviews_user_product"`
	Rating    int       `json:"rating" gorm:"not null;check:rating BETWEEN 1 AND 5"`
	Comment   string    `json:"comment" gorm:"type:text"`
	User      *User     `json:"user,omitempty"`
	Product   *Product  `json:"product,omitempty"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}
