package middleware

import (
	"strings"

	"Backend-GnaasCMS/src/models"
	"Backend-GnaasCMS/src/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthJWT rejects requests without a valid bearer token and stashes the
// caller's id and role in locals for the handlers.
func AuthJWT(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{
				Status: fiber.StatusUnauthorized, Message: "missing or malformed token",
			})
		}
		claims, err := utils.ParseToken(strings.TrimPrefix(header, "Bearer "), secret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{
				Status: fiber.StatusUnauthorized, Message: "invalid or expired token",
			})
		}
		c.Locals("userId", claims.UserID)
		c.Locals("role", claims.Role)
		return c.Next()
	}
}

// RequireRoles allows only callers whose role is in the list.
func RequireRoles(roles ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		for _, allowed := range roles {
			if role == string(allowed) {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse{
			Status: fiber.StatusForbidden, Message: "insufficient permissions",
		})
	}
}

// PerformerID returns the authenticated user's id for action attribution.
func PerformerID(c *fiber.Ctx) string {
	id, _ := c.Locals("userId").(string)
	return id
}
