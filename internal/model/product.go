package model

import "fmt"

// Product is the master catalog definition of a product. Pricing and physical
// attributes live here once, unit-independent; per-warehouse quantities live in
// StockEntry.
type Product struct {
	BaseModel
	Code          string  `gorm:"type:varchar(10);uniqueIndex;not null" json:"code"` // P0001, P0002, ...
	Name          string  `gorm:"type:varchar(255);not null;index" json:"name" validate:"required"`
	Weight        float64 `gorm:"not null" json:"weight" validate:"gte=0"`
	Volume        float64 `gorm:"not null" json:"volume" validate:"gte=0"`
	Category      string  `gorm:"type:varchar(100);not null" json:"category" validate:"required"`
	PurchasePrice float64 `gorm:"not null" json:"purchase_price" validate:"gte=0"`
	SellingPrice  float64 `gorm:"not null" json:"selling_price" validate:"gte=0"`
	Manufacturer  string  `gorm:"type:varchar(255);not null" json:"manufacturer" validate:"required"`
}

// ProductCode formats a sequence number as a catalog code (1 -> "P0001").
func ProductCode(seq int64) string {
	return fmt.Sprintf("P%04d", seq)
}
