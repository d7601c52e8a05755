package handler

import (
	"strconv"
	"time"

	"go-warehouse-wms/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// GetUnitReport returns the scoped unit's financial summary and volume usage.
// GET /api/v1/reports/unit
func (h *ReportHandler) GetUnitReport(c *fiber.Ctx) error {
	report, err := h.service.UnitReport(getScopeUnit(c))
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(report)
}

// GetCompanySummary aggregates every unit's summary plus company volume usage.
// GET /api/v1/reports/company
func (h *ReportHandler) GetCompanySummary(c *fiber.Ctx) error {
	summary, err := h.service.CompanySummary()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(summary)
}

// GetEmployeeRanking ranks employees by total sales, descending.
// GET /api/v1/reports/employees?limit=10
func (h *ReportHandler) GetEmployeeRanking(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil || limit <= 0 {
		limit = service.DefaultRankingLimit
	}

	ranking, err := h.service.EmployeeRanking(limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(ranking)
}

// GetEmployeePerformance sums one employee's sales within the scoped unit.
// GET /api/v1/reports/employees/:username
func (h *ReportHandler) GetEmployeePerformance(c *fiber.Ctx) error {
	perf, err := h.service.EmployeePerformance(getScopeUnit(c), c.Params("username"))
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(perf)
}

// GetMonthlySales buckets sales per calendar month for charting.
// GET /api/v1/reports/monthly-sales?months=12
func (h *ReportHandler) GetMonthlySales(c *fiber.Ctx) error {
	months, err := strconv.Atoi(c.Query("months", "12"))
	if err != nil || months <= 0 {
		months = 12
	}

	to := time.Now()
	from := to.AddDate(0, -months, 0)

	buckets, err := h.service.MonthlySales(from, to)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(fiber.Map{"months": months, "data": buckets})
}
