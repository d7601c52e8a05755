package handler

import (
	"go-warehouse-wms/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

// CreateStaff creates a supervisor (admin only) or employee. Supervisors may
// only create employees inside their own unit.
// POST /api/v1/staff
func (h *UserHandler) CreateStaff(c *fiber.Ctx) error {
	var req service.CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	// Non-admins are pinned to their own unit and may only create employees
	if scope := staffScope(c); scope != "" {
		req.UnitCode = scope
		req.RoleCode = "EMPLOYEE"
	}

	user, err := h.service.CreateStaff(&req, getUsername(c))
	if err != nil {
		return errJSON(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Staff member created", "data": user.ToResponse()})
}

// GetStaff lists the scoped unit's supervisors and employees.
// GET /api/v1/staff
func (h *UserHandler) GetStaff(c *fiber.Ctx) error {
	staff, err := h.service.ListUnitStaff(getScopeUnit(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(staff)
}

// GetSupervisors lists all supervisors company-wide (admin view).
// GET /api/v1/supervisors
func (h *UserHandler) GetSupervisors(c *fiber.Ctx) error {
	supervisors, err := h.service.ListSupervisors()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(supervisors)
}

// DeleteStaff removes a staff member, scoped to the caller's unit for
// supervisors.
// DELETE /api/v1/staff/:username
func (h *UserHandler) DeleteStaff(c *fiber.Ctx) error {
	if err := h.service.DeleteStaff(c.Params("username"), staffScope(c)); err != nil {
		return errJSON(c, err)
	}
	return c.JSON(fiber.Map{"message": "Staff member deleted"})
}

type setPasswordBody struct {
	NewPassword string `json:"new_password"`
}

// SetStaffPassword resets another staff member's password.
// PUT /api/v1/staff/:username/password
func (h *UserHandler) SetStaffPassword(c *fiber.Ctx) error {
	var body setPasswordBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.SetStaffPassword(c.Params("username"), staffScope(c), body.NewPassword); err != nil {
		return errJSON(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password updated"})
}
