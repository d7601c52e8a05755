package repository

import (
	"errors"

	"go-warehouse-wms/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrUnknownEntry   = errors.New("no stock entry for this unit and product")
	ErrUnknownProduct = errors.New("product not found in catalog")
)

// StockQuery holds the optional filters and sorting for stock listings.
type StockQuery struct {
	Name        string // case-insensitive substring on product name
	ProductCode string // exact match
	QtyMin      *int
	QtyMax      *int
	SortField   string // name | quantity | sold_quantity
	SortDesc    bool
}

// StockRow is a stock entry joined with its master catalog attributes.
type StockRow struct {
	UnitCode      string  `json:"unit_code"`
	ProductCode   string  `json:"product_code"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Manufacturer  string  `json:"manufacturer"`
	Weight        float64 `json:"weight"`
	Volume        float64 `json:"volume"`
	PurchasePrice float64 `json:"purchase_price"`
	SellingPrice  float64 `json:"selling_price"`
	Quantity      int     `json:"quantity"`
	SoldQuantity  int     `json:"sold_quantity"`
	UnitGain      float64 `json:"unit_gain"`
}

// ProductTotal is a product's summed quantity across all units.
type ProductTotal struct {
	ProductCode   string `json:"product_code"`
	TotalQuantity int    `json:"total_quantity"`
}

type StockRepository interface {
	InitializeEntry(tx *gorm.DB, unitCode, productCode string, quantity int) error
	Adjust(unitCode, productCode string, qty int, txType model.TransactionType, performedBy, notes string) (*model.StockEntry, *model.Transaction, error)
	Query(unitCode string, q StockQuery) ([]StockRow, error)
	FindRow(unitCode, productCode string) (*StockRow, error)
	TotalsByProduct() ([]ProductTotal, error)
}

type stockRepo struct {
	db *gorm.DB
}

func NewStockRepo(db *gorm.DB) StockRepository {
	return &stockRepo{db}
}

// InitializeEntry creates or resets the entry for (unit, product). Used by the
// fan-out when a unit or product is created, so it runs inside the caller's tx.
func (r *stockRepo) InitializeEntry(tx *gorm.DB, unitCode, productCode string, quantity int) error {
	if tx == nil {
		tx = r.db
	}
	entry := model.StockEntry{
		UnitCode:     unitCode,
		ProductCode:  productCode,
		Quantity:     quantity,
		SoldQuantity: 0,
		UnitGain:     0,
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "unit_code"}, {Name: "product_code"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":      quantity,
			"sold_quantity": 0,
			"unit_gain":     0.0,
		}),
	}).Create(&entry).Error
}

// Adjust is the single mutation path for stock. The entry is locked FOR UPDATE,
// the ledger arithmetic is applied against the catalog price snapshot, and the
// transaction record is appended — all in one database transaction, so a
// failed append rolls the ledger back too.
func (r *stockRepo) Adjust(unitCode, productCode string, qty int, txType model.TransactionType, performedBy, notes string) (*model.StockEntry, *model.Transaction, error) {
	var entry model.StockEntry
	var record model.Transaction

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&entry, "unit_code = ? AND product_code = ?", unitCode, productCode).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownEntry
			}
			return err
		}

		var product model.Product
		if err := tx.First(&product, "code = ?", productCode).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownProduct
			}
			return err
		}

		unitPrice, err := entry.Apply(txType, qty, product.PurchasePrice, product.SellingPrice)
		if err != nil {
			return err
		}
		entry.UpdatedBy = performedBy

		if err := tx.Save(&entry).Error; err != nil {
			return err
		}

		record = model.Transaction{
			UnitCode:    unitCode,
			ProductCode: productCode,
			Type:        txType,
			Quantity:    qty,
			UnitPrice:   unitPrice,
			TotalAmount: float64(qty) * unitPrice,
			PerformedBy: performedBy,
			Notes:       notes,
		}
		record.CreatedBy = performedBy
		record.UpdatedBy = performedBy
		return tx.Create(&record).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &entry, &record, nil
}

// sortColumns whitelists the caller-supplied sort fields
var sortColumns = map[string]string{
	"name":          "products.name",
	"quantity":      "stock_entries.quantity",
	"sold_quantity": "stock_entries.sold_quantity",
}

func (r *stockRepo) Query(unitCode string, q StockQuery) ([]StockRow, error) {
	tx := r.baseQuery().Where("stock_entries.unit_code = ?", unitCode)

	if q.Name != "" {
		tx = tx.Where("products.name ILIKE ?", "%"+q.Name+"%")
	}
	if q.ProductCode != "" {
		tx = tx.Where("stock_entries.product_code = ?", q.ProductCode)
	}
	if q.QtyMin != nil {
		tx = tx.Where("stock_entries.quantity >= ?", *q.QtyMin)
	}
	if q.QtyMax != nil {
		tx = tx.Where("stock_entries.quantity <= ?", *q.QtyMax)
	}

	column, ok := sortColumns[q.SortField]
	if !ok {
		column = sortColumns["name"]
	}
	direction := "ASC"
	if q.SortDesc {
		direction = "DESC"
	}

	var rows []StockRow
	err := tx.Order(column + " " + direction).Scan(&rows).Error
	return rows, err
}

func (r *stockRepo) FindRow(unitCode, productCode string) (*StockRow, error) {
	var row StockRow
	result := r.baseQuery().
		Where("stock_entries.unit_code = ? AND stock_entries.product_code = ?", unitCode, productCode).
		Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrUnknownEntry
	}
	return &row, nil
}

func (r *stockRepo) TotalsByProduct() ([]ProductTotal, error) {
	var totals []ProductTotal
	err := r.db.Model(&model.StockEntry{}).
		Select("product_code, COALESCE(SUM(quantity), 0) as total_quantity").
		Group("product_code").
		Scan(&totals).Error
	return totals, err
}

func (r *stockRepo) baseQuery() *gorm.DB {
	return r.db.Model(&model.StockEntry{}).
		Select(`stock_entries.unit_code, stock_entries.product_code,
			products.name, products.category, products.manufacturer,
			products.weight, products.volume,
			products.purchase_price, products.selling_price,
			stock_entries.quantity, stock_entries.sold_quantity, stock_entries.unit_gain`).
		Joins("JOIN products ON products.code = stock_entries.product_code AND products.deleted_at IS NULL")
}
