package handler

import (
	"errors"

	"go-warehouse-wms/internal/model"
	"go-warehouse-wms/internal/repository"
	"go-warehouse-wms/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Helpers to pull the caller's identity out of the JWT context (set by the
// auth middleware).

func getUsername(c *fiber.Ctx) string {
	username, ok := c.Locals("username").(string)
	if !ok {
		return "system"
	}
	return username
}

func getRoleCode(c *fiber.Ctx) string {
	role, _ := c.Locals("role_code").(string)
	return role
}

// getScopeUnit returns the unit resolved by the UnitScope middleware.
func getScopeUnit(c *fiber.Ctx) string {
	unit, _ := c.Locals("scope_unit").(string)
	return unit
}

// staffScope is the unit restriction passed into staff operations: empty for
// admins (company-wide), the caller's own unit otherwise.
func staffScope(c *fiber.Ctx) string {
	if getRoleCode(c) == model.RoleAdmin {
		return ""
	}
	unit, _ := c.Locals("unit_code").(string)
	return unit
}

// errStatus maps the typed service failures onto HTTP statuses. Anything
// unrecognized is treated as a bad request, matching the recoverable-error
// contract (no failure here is fatal to the process).
func errStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrUnitNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, repository.ErrUnknownEntry),
		errors.Is(err, repository.ErrUnknownProduct):
		return 404
	case errors.Is(err, service.ErrUnitHasStaff),
		errors.Is(err, service.ErrUsernameExists),
		errors.Is(err, model.ErrInsufficientStock):
		return 409
	default:
		return 400
	}
}

func errJSON(c *fiber.Ctx, err error) error {
	return c.Status(errStatus(err)).JSON(fiber.Map{"error": err.Error()})
}
