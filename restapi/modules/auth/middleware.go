package auth

import (
	"github.com/gofiber/fiber/v2"
)

type contextKey string

// Context keys used to carry the attested identity into GraphQL resolvers
const (
	AddressKey contextKey = "address"
	IsAdminKey contextKey = "is_admin"
)

// RequireIdentity middleware validates the JWT token from the cookie and
// blocks guests. Handlers downstream read the attested address from locals.
func RequireIdentity(c *fiber.Ctx) error {
	token := c.Cookies("auth_token")
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired session",
		})
	}

	c.Locals("is_authenticated", true)
	c.Locals("address", claims.Address)
	c.Locals("is_admin", claims.IsAdmin)

	return c.Next()
}

// OptionalIdentity identifies the caller if a token is present but does not
// block guests. Read endpoints serve both.
func OptionalIdentity(c *fiber.Ctx) error {
	token := c.Cookies("auth_token")
	if token == "" {
		c.Locals("is_authenticated", false)
		return c.Next()
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		// Treat invalid/expired tokens as guest access
		c.Locals("is_authenticated", false)
		return c.Next()
	}

	c.Locals("is_authenticated", true)
	c.Locals("address", claims.Address)
	c.Locals("is_admin", claims.IsAdmin)

	return c.Next()
}

// CallerAddress returns the attested address set by the middleware, or ""
// for guests.
func CallerAddress(c *fiber.Ctx) string {
	if address, ok := c.Locals("address").(string); ok {
		return address
	}
	return ""
}
