package middleware

import (
	"strings"

	userModel "locker-booking/models/user"
	"locker-booking/types"
	"locker-booking/utils"

	"github.com/gofiber/fiber/v2"
)

// extractToken pulls the session token from the Authorization header, falling
// back to the access cookie set at login.
func extractToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			return "", false
		}
		return tokenParts[1], true
	}

	token := c.Cookies("access")
	if token == "" {
		return "", false
	}
	return token, true
}

// RequireAuth checks for a valid session token and attaches its claims to the
// request context.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := extractToken(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Status:  fiber.StatusUnauthorized,
				Message: "Authorization token missing",
			})
		}

		claims, err := utils.VerifyToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Status:  fiber.StatusUnauthorized,
				Message: "Session expired. Login again.",
			})
		}

		c.Locals("user", claims)
		return c.Next()
	}
}

// RequireAdmin checks for a valid session token carrying the admin role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := extractToken(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Status:  fiber.StatusUnauthorized,
				Message: "Authorization token missing",
			})
		}

		claims, err := utils.VerifyToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Status:  fiber.StatusUnauthorized,
				Message: "Session expired. Login again.",
			})
		}

		if role, _ := claims["role"].(string); role != userModel.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
				Status:  fiber.StatusForbidden,
				Message: "Insufficient permissions",
			})
		}

		c.Locals("user", claims)
		return c.Next()
	}
}
