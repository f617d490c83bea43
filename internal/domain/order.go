package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

type DeliveryMode string

const (
	DeliveryHome        DeliveryMode = "HOME"
	DeliveryPickupPoint DeliveryMode = "PICKUP_POINT"
)

type Order struct {
	ID                 uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID             uint64          `json:"userId" gorm:"not null;index"`
	TotalAmount        decimal.Decimal `json:"totalAmount" gorm:"type:decimal(10,2);not null"`
	Status             OrderStatus     `json:"status" gorm:"type:enum('PENDING','PAID','SHIPPED','DELIVERED','CANCELLED');default:'PENDING'"`
	DeliveryMode       DeliveryMode    `json:"deliveryMode" gorm:"type:enum('HOME','PICKUP_POINT');default:'HOME'"`
	ShippingAddress    *string         `json:"shippingAddress"`
	ShippingCity       *string         `json:"shippingCity"`
	ShippingPostalCode *string         `json:"shippingPostalCode"`
	Items              []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payments           []Payment       `json:"payments" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt          time.Time       `json:"createdAt" gorm:"autoCreateTime"`
}

// OrderItem freezes the unit price at checkout time; Product.Price may move afterwards.
type OrderItem struct {
	ID        uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID   uint64          `json:"orderId" gorm:"not null;uniqueIndex:ux_order_items_order_product"`
	ProductID uint64          `json:"productId" gorm:"not null;uniqueIndex:ux_order_items_order_product"`
	Quantity  int64           `json:"quantity" gorm:"not null"`
	UnitPrice decimal.Decimal `json:"unitPrice" gorm:"type:decimal(10,2);not null"`
	Product   *Product        `json:"product,omitempty"`
}

func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// next holds the forward edge of the fulfilment chain
// PENDING -> PAID -> SHIPPED -> DELIVERED.
var next = map[OrderStatus]OrderStatus{
	StatusPending: StatusPaid,
	StatusPaid:    StatusShipped,
	StatusShipped: StatusDelivered,
}

// ValidTransition reports whether an order may move from one status to
// another. CANCELLED is reachable from any non-terminal state; every other
// move follows the fulfilment chain one step at a time.
func ValidTransition(from, to OrderStatus) bool {
	if to == StatusCancelled {
		return !from.Terminal()
	}
	return next[from] == to
}

// Cancellable is the user-facing rule: once an order is SHIPPED it is
// already on its way and the owner can no longer cancel it.
func (o *Order) Cancellable() bool {
	return o.Status != StatusShipped && !o.Status.Terminal()
}
