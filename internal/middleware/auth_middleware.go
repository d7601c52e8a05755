package middleware

import (
	"strings"

	"go-warehouse-wms/internal/model"
	"go-warehouse-wms/internal/repository"
	"go-warehouse-wms/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth validates the JWT token and sets the caller's identity, role,
// unit scope, and privileges in the request context.
func RequireAuth(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		// Strict session check against the DB
		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "User not found"})
		}
		if user.TokenVersion != claims.TokenVersion {
			return c.Status(401).JSON(fiber.Map{"error": "Session expired (logged in on another device)"})
		}

		c.Locals("user_id", claims.UserID.String())
		c.Locals("username", claims.Username)
		c.Locals("user_name", claims.Name)
		c.Locals("role_code", claims.RoleCode)
		c.Locals("unit_code", claims.UnitCode)
		c.Locals("user_privileges", claims.Privileges)

		return c.Next()
	}
}

// RequirePrivilege checks if the authenticated user has the required privilege
func RequirePrivilege(requiredPrivilege string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		privileges, ok := c.Locals("user_privileges").([]string)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"error": "No privileges found"})
		}

		for _, p := range privileges {
			if p == requiredPrivilege {
				return c.Next()
			}
		}

		return c.Status(403).JSON(fiber.Map{
			"error": "Forbidden: requires '" + requiredPrivilege + "' privilege",
		})
	}
}

// UnitScope resolves which warehouse unit the request operates on. Supervisors
// and employees are pinned to their own unit; admins choose one explicitly via
// the ?unit= query parameter.
func UnitScope() fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleCode, _ := c.Locals("role_code").(string)
		unitCode, _ := c.Locals("unit_code").(string)

		if roleCode == model.RoleAdmin {
			unitCode = c.Query("unit")
		}
		if unitCode == "" {
			return c.Status(400).JSON(fiber.Map{"error": "No warehouse unit in scope"})
		}

		c.Locals("scope_unit", unitCode)
		return c.Next()
	}
}
