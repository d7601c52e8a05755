package model

import "fmt"

// Unit is a warehouse location with a finite volume capacity.
type Unit struct {
	BaseModel
	Code           string  `gorm:"type:varchar(10);uniqueIndex;not null" json:"code"` // 001, 002, ...
	Name           string  `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	VolumeCapacity float64 `gorm:"not null" json:"volume_capacity" validate:"gt=0"`
}

// UnitCode formats a sequence number as a warehouse code (1 -> "001").
func UnitCode(seq int64) string {
	return fmt.Sprintf("%03d", seq)
}
