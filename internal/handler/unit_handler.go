package handler

import (
	"go-warehouse-wms/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UnitHandler struct {
	unitService   service.UnitService
	reportService service.ReportService
}

func NewUnitHandler(unitService service.UnitService, reportService service.ReportService) *UnitHandler {
	return &UnitHandler{unitService: unitService, reportService: reportService}
}

// CreateUnit creates a warehouse unit and initializes stock entries for every
// catalog product.
// POST /api/v1/units
func (h *UnitHandler) CreateUnit(c *fiber.Ctx) error {
	var req service.CreateUnitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	unit, err := h.unitService.CreateUnit(&req, getUsername(c))
	if err != nil {
		return errJSON(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Unit created", "data": unit})
}

// GetUnits lists all warehouse units.
// GET /api/v1/units
func (h *UnitHandler) GetUnits(c *fiber.Ctx) error {
	units, err := h.unitService.ListUnits()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(units)
}

// GetUnit returns one unit with its financial report. Supervisors and
// employees may only fetch their own unit; admins fetch any.
// GET /api/v1/units/:code
func (h *UnitHandler) GetUnit(c *fiber.Ctx) error {
	code := c.Params("code")
	if scope := staffScope(c); scope != "" && scope != code {
		return c.Status(403).JSON(fiber.Map{"error": "Forbidden: not your warehouse unit"})
	}

	report, err := h.reportService.UnitReport(code)
	if err != nil {
		return errJSON(c, err)
	}
	return c.JSON(report)
}

// DeleteUnit removes a unit and its stock entries and transactions. Blocked
// while staff are still assigned.
// DELETE /api/v1/units/:code
func (h *UnitHandler) DeleteUnit(c *fiber.Ctx) error {
	if err := h.unitService.DeleteUnit(c.Params("code")); err != nil {
		return errJSON(c, err)
	}
	return c.JSON(fiber.Map{"message": "Unit deleted"})
}
