package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is 1:1 with its owning user and created lazily on first access.
type Cart struct {
	ID        uint64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    uint64     `json:"userId" gorm:"uniqueIndex;not null"`
	Items     []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updatedAt" gorm:"autoUpdateTime"`
}

// CartItem is unique per (cart, product); re-adding a product increments
// the existing line instead of inserting a second row.
type CartItem struct {
	ID        uint64   `json:"id" gorm:"primaryKey;autoIncrement"`
	CartID    uint64   `json:"cartId" gorm:"not null;uniqueIndex:ux_cart_items_cart_product"`
	ProductID uint64   `json:"productId" gorm:"not null;uniqueIndex:ux_cart_items_cart_product"`
	Quantity  int64    `json:"quantity" gorm:"not null;check:quantity > 0"`
	Product   *Product `json:"product,omitempty"`
}

// Total prices the cart at current product prices. Order totals are frozen
// at checkout instead.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		if item.Product == nil {
			continue
		}
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(item.Quantity)))
	}
	return total
}
