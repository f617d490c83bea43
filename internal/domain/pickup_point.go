package domain

// PickupPoint is static reference data. Orders carry only a delivery mode;
// there is no foreign key from Order to a pickup point.
type PickupPoint struct {
	ID         uint64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name       string  `json:"name" gorm:"not null"`
	Address    string  `json:"address" gorm:"not null"`
	City       string  `json:"city" gorm:"not null"`
	PostalCode string  `json:"postalCode" gorm:"not null;index"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
}
