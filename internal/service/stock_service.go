package service

import (
	"fmt"

	"go-warehouse-wms/internal/model"
	"go-warehouse-wms/internal/repository"
	"go-warehouse-wms/internal/ws"
	"go-warehouse-wms/pkg/validator"
)

type StockService interface {
	Adjust(req *AdjustRequest, performedBy string) (*model.StockEntry, *model.Transaction, error)
	Query(unitCode string, q repository.StockQuery) ([]repository.StockRow, error)
	ProductDetails(unitCode, productCode string) (*ProductDetails, error)
	ListTransactions(unitCode string, q repository.TransactionQuery) ([]model.Transaction, error)
}

type AdjustRequest struct {
	UnitCode    string                `json:"unit_code" validate:"required"`
	ProductCode string                `json:"product_code" validate:"required"`
	Type        model.TransactionType `json:"type" validate:"required,oneof=sale purchase"`
	Quantity    int                   `json:"quantity" validate:"required,gt=0"`
	Notes       string                `json:"notes"`
}

// ProductDetails is the per-unit product view: the joined stock row plus the
// most recent movements.
type ProductDetails struct {
	Stock              repository.StockRow `json:"stock"`
	RecentTransactions []model.Transaction `json:"recent_transactions"`
}

const recentTransactionLimit = 10

type stockService struct {
	stockRepo repository.StockRepository
	txRepo    repository.TransactionRepository
	wsHub     *ws.Hub
}

func NewStockService(stockRepo repository.StockRepository, txRepo repository.TransactionRepository, hub *ws.Hub) StockService {
	return &stockService{
		stockRepo: stockRepo,
		txRepo:    txRepo,
		wsHub:     hub,
	}
}

// Adjust validates the request and delegates to the repository, where the
// ledger update and the log append commit as one transaction.
func (s *stockService) Adjust(req *AdjustRequest, performedBy string) (*model.StockEntry, *model.Transaction, error) {
	if err := validator.FirstError(req); err != nil {
		return nil, nil, err
	}

	notes := req.Notes
	if notes == "" {
		if req.Type == model.TxSale {
			notes = fmt.Sprintf("Sold %d units", req.Quantity)
		} else {
			notes = fmt.Sprintf("Purchased %d units", req.Quantity)
		}
	}

	entry, record, err := s.stockRepo.Adjust(req.UnitCode, req.ProductCode, req.Quantity, req.Type, performedBy, notes)
	if err != nil {
		return nil, nil, err
	}

	s.wsHub.BroadcastJSON(map[string]interface{}{
		"type":   "stock_update",
		"action": "transaction_created",
		"transaction": map[string]interface{}{
			"id":           record.ID,
			"unit_code":    record.UnitCode,
			"product_code": record.ProductCode,
			"tx_type":      record.Type,
			"quantity":     record.Quantity,
			"total_amount": record.TotalAmount,
			"new_quantity": entry.Quantity,
		},
		"performed_by": performedBy,
	})

	return entry, record, nil
}

func (s *stockService) Query(unitCode string, q repository.StockQuery) ([]repository.StockRow, error) {
	return s.stockRepo.Query(unitCode, q)
}

func (s *stockService) ProductDetails(unitCode, productCode string) (*ProductDetails, error) {
	row, err := s.stockRepo.FindRow(unitCode, productCode)
	if err != nil {
		return nil, err
	}

	recent, err := s.txRepo.FindRecentByProduct(unitCode, productCode, recentTransactionLimit)
	if err != nil {
		return nil, err
	}

	return &ProductDetails{Stock: *row, RecentTransactions: recent}, nil
}

func (s *stockService) ListTransactions(unitCode string, q repository.TransactionQuery) ([]model.Transaction, error) {
	return s.txRepo.FindByUnit(unitCode, q)
}
