package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderCreatedEvent struct {
	OrderID     uint64          `json:"orderId"`
	UserID      uint64          `json:"userId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	ItemCount   int             `json:"itemCount"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type OrderStatusChangedEvent struct {
	OrderID uint64      `json:"orderId"`
	UserID  uint64      `json:"userId"`
	From    OrderStatus `json:"from"`
	To      OrderStatus `json:"to"`
}

type OrderCancelledEvent struct {
	OrderID uint64 `json:"orderId"`
	UserID  uint64 `json:"userId"`
}
