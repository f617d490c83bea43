package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentSuccess PaymentStatus = "SUCCESS"
	PaymentFailed  PaymentStatus = "FAILED"
)

// PaymentMethodCard is the only method in the simulated flow; no gateway
// is integrated.
const PaymentMethodCard = "CARD"

type Payment struct {
	ID        uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID   uint64          `json:"orderId" gorm:"not null;index"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	Status    PaymentStatus   `json:"status" gorm:"type:enum('SUCCESS','FAILED');not null"`
	Method    string          `json:"method" gorm:"not null"`
	Reference string          `json:"reference" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time       `json:"createdAt" gorm:"autoCreateTime"`
}
