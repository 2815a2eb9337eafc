package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"backend-turnero/internal/config"
	"backend-turnero/internal/helper"
)

func JWTAuth(tokens *config.TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Falta el encabezado de autorización",
			})
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Formato de autorización inválido",
			})
		}

		claims, err := tokens.Validate(tokenParts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Token inválido o expirado",
			})
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("nombre", claims.Name)
		c.Locals("email", claims.Email)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}

func RoleAuth(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)

		if err := helper.CheckRole(role, allowedRoles...); err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"error":   "No tiene permisos para esta acción",
			})
		}
		return c.Next()
	}
}
