package middleware

import (
	"strings"

	"github.com/hamzaRio/MarrakechTours/src/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthJWT guards admin routes with a bearer token.
func AuthJWT(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing or invalid Authorization header"})
	}

	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
	claims, err := utils.ParseJWT(tokenStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token", "detail": err.Error()})
	}

	if revoked, err := utils.IsTokenBlacklisted(claims.ID); err == nil && revoked {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token has been revoked"})
	}

	c.Locals("userId", claims.UserID)
	c.Locals("username", claims.Username)
	c.Locals("role", claims.Role)
	c.Locals("jti", claims.ID)
	c.Locals("claims", claims)

	return c.Next()
}

// RequireSuperadmin must run after AuthJWT.
func RequireSuperadmin(c *fiber.Ctx) error {
	if role, _ := c.Locals("role").(string); role != "superadmin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Superadmin access required"})
	}
	return c.Next()
}
