package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID   uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

type Product struct {
	ID            uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Name          string          `json:"name" gorm:"not null"`
	Description   string          `json:"description" gorm:"type:text"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	StockQuantity int64           `json:"stockQuantity" gorm:"not null;default:0"`
	CategoryID    *uint64         `json:"categoryId" gorm:"index"`
	Category      *Category       `json:"category,omitempty"`
	Images        []ProductImage  `json:"images" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time       `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `json:"updatedAt" gorm:"autoUpdateTime"`
}

// ProductImage rows are ordered by Position; the first one is the storefront thumbnail.
type ProductImage struct {
	ID        uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	ProductID uint64 `json:"productId" gorm:"not null;index"`
	URL       string `json:"url" gorm:"not null"`
	AltText   string `json:"altText"`
	IsPrimary bool   `json:"isPrimary" gorm:"default:false"`
	Position  int    `json:"position" gorm:"not null;default:0"`
}
