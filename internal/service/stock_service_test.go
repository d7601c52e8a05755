package service

import (
	"testing"

	"go-warehouse-wms/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededStockService() (*fakeStockRepo, *fakeTxRepo, StockService) {
	stockRepo := newFakeStockRepo()
	txRepo := &fakeTxRepo{}

	stockRepo.products["P0001"] = model.Product{
		Code: "P0001", Name: "Pallet Jack", PurchasePrice: 3, SellingPrice: 5,
	}
	stockRepo.entries[entryKey("001", "P0001")] = &model.StockEntry{
		UnitCode: "001", ProductCode: "P0001",
	}

	return stockRepo, txRepo, NewStockService(stockRepo, txRepo, nil)
}

func TestStockAdjust(t *testing.T) {
	t.Run("Should reject invalid requests before touching the ledger", func(t *testing.T) {
		stockRepo, _, svc := seededStockService()

		cases := []*AdjustRequest{
			{UnitCode: "001", ProductCode: "P0001", Type: model.TxSale, Quantity: 0},
			{UnitCode: "001", ProductCode: "P0001", Type: model.TxSale, Quantity: -3},
			{UnitCode: "001", ProductCode: "P0001", Type: "transfer", Quantity: 1},
			{UnitCode: "", ProductCode: "P0001", Type: model.TxSale, Quantity: 1},
		}
		for _, req := range cases {
			_, _, err := svc.Adjust(req, "alice.a.001")
			assert.Error(t, err)
		}
		assert.Empty(t, stockRepo.log)
	})

	t.Run("Purchase then sale updates ledger and logs both movements", func(t *testing.T) {
		stockRepo, _, svc := seededStockService()

		entry, record, err := svc.Adjust(&AdjustRequest{
			UnitCode: "001", ProductCode: "P0001", Type: model.TxPurchase, Quantity: 10,
		}, "bob.b.001")
		require.NoError(t, err)
		assert.Equal(t, 10, entry.Quantity)
		assert.Equal(t, -30.0, entry.UnitGain)
		assert.Equal(t, 3.0, record.UnitPrice)
		assert.Equal(t, 30.0, record.TotalAmount)
		assert.Equal(t, "Purchased 10 units", record.Notes)

		entry, record, err = svc.Adjust(&AdjustRequest{
			UnitCode: "001", ProductCode: "P0001", Type: model.TxSale, Quantity: 4,
		}, "bob.b.001")
		require.NoError(t, err)
		assert.Equal(t, 6, entry.Quantity)
		assert.Equal(t, 4, entry.SoldQuantity)
		assert.Equal(t, -10.0, entry.UnitGain)
		assert.Equal(t, "Sold 4 units", record.Notes)

		require.Len(t, stockRepo.log, 2)
		assert.Equal(t, model.TxPurchase, stockRepo.log[0].Type)
		assert.Equal(t, model.TxSale, stockRepo.log[1].Type)
		assert.Equal(t, "bob.b.001", stockRepo.log[1].PerformedBy)
	})

	t.Run("Insufficient stock leaves the entry and the log untouched", func(t *testing.T) {
		stockRepo, _, svc := seededStockService()
		stockRepo.entries[entryKey("001", "P0001")].Quantity = 2

		_, _, err := svc.Adjust(&AdjustRequest{
			UnitCode: "001", ProductCode: "P0001", Type: model.TxSale, Quantity: 5,
		}, "alice.a.001")

		assert.ErrorIs(t, err, model.ErrInsufficientStock)
		entry := stockRepo.entries[entryKey("001", "P0001")]
		assert.Equal(t, 2, entry.Quantity)
		assert.Equal(t, 0, entry.SoldQuantity)
		assert.Equal(t, 0.0, entry.UnitGain)
		assert.Empty(t, stockRepo.log)
	})

	t.Run("Caller notes are kept verbatim", func(t *testing.T) {
		_, _, svc := seededStockService()

		_, record, err := svc.Adjust(&AdjustRequest{
			UnitCode: "001", ProductCode: "P0001", Type: model.TxPurchase, Quantity: 1,
			Notes: "restock from supplier",
		}, "alice.a.001")

		require.NoError(t, err)
		assert.Equal(t, "restock from supplier", record.Notes)
	})
}

func TestProductDetails(t *testing.T) {
	stockRepo, txRepo, svc := seededStockService()
	stockRepo.entries[entryKey("001", "P0001")].Quantity = 7

	for i := 0; i < 15; i++ {
		txRepo.records = append(txRepo.records, model.Transaction{
			UnitCode: "001", ProductCode: "P0001", Type: model.TxSale, Quantity: 1, TotalAmount: 5,
		})
	}

	details, err := svc.ProductDetails("001", "P0001")

	require.NoError(t, err)
	assert.Equal(t, 7, details.Stock.Quantity)
	assert.Equal(t, "Pallet Jack", details.Stock.Name)
	assert.Len(t, details.RecentTransactions, 10)
}
