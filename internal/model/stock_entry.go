package model

import "errors"

var (
	ErrInsufficientStock = errors.New("insufficient stock remaining")
	ErrUnknownMovement   = errors.New("unknown stock movement type")
)

// StockEntry is the mutable per-(unit, product) quantity record. Every product
// has an entry in every unit (fan-out initialization at create time), so reads
// never have to handle sparse combinations.
type StockEntry struct {
	BaseModel
	UnitCode     string  `gorm:"type:varchar(10);not null;uniqueIndex:idx_unit_product;index" json:"unit_code"`
	ProductCode  string  `gorm:"type:varchar(10);not null;uniqueIndex:idx_unit_product" json:"product_code"`
	Quantity     int     `gorm:"not null;default:0" json:"quantity"`
	SoldQuantity int     `gorm:"not null;default:0" json:"sold_quantity"`
	UnitGain     float64 `gorm:"not null;default:0" json:"unit_gain"` // running gain, negative after purchases
}

// Apply dispatches a movement to the matching ledger operation and returns the
// catalog price it was booked at. The entry is left untouched on error.
func (e *StockEntry) Apply(txType TransactionType, qty int, purchasePrice, sellingPrice float64) (float64, error) {
	switch txType {
	case TxSale:
		return sellingPrice, e.ApplySale(qty, sellingPrice)
	case TxPurchase:
		e.ApplyPurchase(qty, purchasePrice)
		return purchasePrice, nil
	default:
		return 0, ErrUnknownMovement
	}
}

// ApplySale removes qty from stock and books the revenue at the catalog selling
// price. The entry is left untouched when stock is insufficient.
func (e *StockEntry) ApplySale(qty int, sellingPrice float64) error {
	if e.Quantity < qty {
		return ErrInsufficientStock
	}
	e.Quantity -= qty
	e.SoldQuantity += qty
	e.UnitGain += float64(qty) * sellingPrice
	return nil
}

// ApplyPurchase adds qty to stock and books the outlay at the catalog purchase
// price. Gain may go negative: cost basis until later sales recover it.
func (e *StockEntry) ApplyPurchase(qty int, purchasePrice float64) {
	e.Quantity += qty
	e.UnitGain -= float64(qty) * purchasePrice
}
