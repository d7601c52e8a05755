package repository

import (
	"time"

	"go-warehouse-wms/internal/model"

	"gorm.io/gorm"
)

// TransactionQuery filters the per-unit transaction listing.
type TransactionQuery struct {
	From        *time.Time
	To          *time.Time
	PerformedBy string
	Type        model.TransactionType
	Limit       int
}

// DefaultTransactionLimit bounds unfiltered listings.
const DefaultTransactionLimit = 100

// TransactionRepository is the read side of the append-only log. Writes happen
// exclusively inside StockRepository.Adjust.
type TransactionRepository interface {
	FindByUnit(unitCode string, q TransactionQuery) ([]model.Transaction, error)
	FindRecentByProduct(unitCode, productCode string, limit int) ([]model.Transaction, error)
	FindSalesBetween(from, to time.Time) ([]model.Transaction, error)
	FindSalesByPerformer(unitCode, performedBy string) ([]model.Transaction, error)
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) FindByUnit(unitCode string, q TransactionQuery) ([]model.Transaction, error) {
	tx := r.db.Where("unit_code = ?", unitCode)

	if q.From != nil {
		tx = tx.Where("created_at >= ?", *q.From)
	}
	if q.To != nil {
		tx = tx.Where("created_at <= ?", *q.To)
	}
	if q.PerformedBy != "" {
		tx = tx.Where("performed_by = ?", q.PerformedBy)
	}
	if q.Type != "" {
		tx = tx.Where("type = ?", q.Type)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultTransactionLimit
	}

	var transactions []model.Transaction
	err := tx.Order("created_at DESC").Limit(limit).Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindRecentByProduct(unitCode, productCode string, limit int) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.
		Where("unit_code = ? AND product_code = ?", unitCode, productCode).
		Order("created_at DESC").
		Limit(limit).
		Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindSalesBetween(from, to time.Time) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.
		Where("type = ? AND created_at BETWEEN ? AND ?", model.TxSale, from, to).
		Order("created_at ASC").
		Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindSalesByPerformer(unitCode, performedBy string) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.
		Where("unit_code = ? AND performed_by = ? AND type = ?", unitCode, performedBy, model.TxSale).
		Order("created_at ASC").
		Find(&transactions).Error
	return transactions, err
}
