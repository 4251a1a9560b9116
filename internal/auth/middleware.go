package auth

import (
	"strings"

	"github.com/campushq/sitebuilder/internal/response"
	"github.com/campushq/sitebuilder/internal/utils"

	"github.com/gofiber/fiber/v2"
)

func JWTProtected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error": fiber.Map{
					"code":    "UNAUTHORIZED",
					"message": "Missing authorization token",
				},
			})
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error": fiber.Map{
					"code":    "INVALID_TOKEN_FORMAT",
					"message": "Invalid token format",
				},
			})
		}

		claims, err := utils.ParseJWT(tokenParts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error": fiber.Map{
					"code":    "INVALID_TOKEN",
					"message": "Invalid or expired token",
				},
			})
		}

		c.Locals("user_id", claims.UserID())
		c.Locals("tenant_id", claims.TenantID)
		c.Locals("role", Role(claims.Role))
		return c.Next()
	}
}

// MutationProtected gates every write route on the site-mutation policy.
func MutationProtected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(Role)
		if !ok {
			return response.Unauthorized(c, "Missing principal")
		}

		if !CanMutateSite(role) {
			return response.Forbidden(c, "You don't have permission to modify this site")
		}

		return c.Next()
	}
}

// TenantID reads the authenticated tenant from the request context.
func TenantID(c *fiber.Ctx) uint {
	id, _ := c.Locals("tenant_id").(uint)
	return id
}
