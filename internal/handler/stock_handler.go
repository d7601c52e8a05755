package handler

import (
	"strconv"
	"time"

	"go-warehouse-wms/internal/model"
	"go-warehouse-wms/internal/repository"
	"go-warehouse-wms/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StockHandler struct {
	service service.StockService
}

func NewStockHandler(s service.StockService) *StockHandler {
	return &StockHandler{service: s}
}

// GetStock lists the unit's stock joined with catalog attributes.
// GET /api/v1/stock?name=&product=&qty_min=&qty_max=&sort=&order=
func (h *StockHandler) GetStock(c *fiber.Ctx) error {
	q := repository.StockQuery{
		Name:        c.Query("name"),
		ProductCode: c.Query("product"),
		SortField:   c.Query("sort", "name"),
		SortDesc:    c.Query("order") == "desc",
	}
	if v := c.Query("qty_min"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q.QtyMin = &n
		}
	}
	if v := c.Query("qty_max"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q.QtyMax = &n
		}
	}

	rows, err := h.service.Query(getScopeUnit(c), q)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(rows)
}

// GetProductDetails returns the per-unit stock row plus recent movements.
// GET /api/v1/stock/:product
func (h *StockHandler) GetProductDetails(c *fiber.Ctx) error {
	details, err := h.service.ProductDetails(getScopeUnit(c), c.Params("product"))
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(details)
}

type adjustBody struct {
	ProductCode string `json:"product_code"`
	Quantity    int    `json:"quantity"`
	Notes       string `json:"notes"`
}

// Sell records a sale against the scoped unit.
// POST /api/v1/stock/sell
func (h *StockHandler) Sell(c *fiber.Ctx) error {
	return h.adjust(c, model.TxSale)
}

// Purchase records a purchase (restock) against the scoped unit.
// POST /api/v1/stock/purchase
func (h *StockHandler) Purchase(c *fiber.Ctx) error {
	return h.adjust(c, model.TxPurchase)
}

func (h *StockHandler) adjust(c *fiber.Ctx, txType model.TransactionType) error {
	var body adjustBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	req := &service.AdjustRequest{
		UnitCode:    getScopeUnit(c),
		ProductCode: body.ProductCode,
		Type:        txType,
		Quantity:    body.Quantity,
		Notes:       body.Notes,
	}

	entry, record, err := h.service.Adjust(req, getUsername(c))
	if err != nil {
		return errJSON(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message":     "Transaction recorded",
		"entry":       entry,
		"transaction": record,
	})
}

// GetTransactions lists the unit's transaction log, newest first.
// GET /api/v1/transactions?from=&to=&performed_by=&type=&limit=
func (h *StockHandler) GetTransactions(c *fiber.Ctx) error {
	q := repository.TransactionQuery{
		PerformedBy: c.Query("performed_by"),
		Type:        model.TransactionType(c.Query("type")),
	}
	if v := c.Query("from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			q.From = &t
		}
	}
	if v := c.Query("to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			q.To = &t
		}
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q.Limit = n
		}
	}

	transactions, err := h.service.ListTransactions(getScopeUnit(c), q)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(transactions)
}
