package model

type TransactionType string

const (
	TxSale     TransactionType = "sale"
	TxPurchase TransactionType = "purchase"
)

// Transaction is the append-only audit record of a stock movement. Rows are
// written exactly once, in the same database transaction as the ledger update
// they describe, and never modified afterwards.
type Transaction struct {
	BaseModel
	UnitCode    string          `gorm:"type:varchar(10);not null;index" json:"unit_code" validate:"required"`
	ProductCode string          `gorm:"type:varchar(10);not null;index" json:"product_code" validate:"required"`
	Type        TransactionType `gorm:"type:varchar(10);not null" json:"type" validate:"required,oneof=sale purchase"`
	Quantity    int             `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	UnitPrice   float64         `gorm:"not null" json:"unit_price"`   // catalog price snapshot at adjust time
	TotalAmount float64         `gorm:"not null" json:"total_amount"` // Quantity * UnitPrice
	PerformedBy string          `gorm:"type:varchar(255);not null;index" json:"performed_by"`
	Notes       string          `gorm:"type:text" json:"notes"`
}
