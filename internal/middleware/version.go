package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// DefaultAPIVersion is used when the request carries no X-Api-Version header
const DefaultAPIVersion = "1.0.0"

// VersionMiddleware parses the X-Api-Version header, stores it in context and echoes it back
func VersionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		version := c.Get("X-Api-Version", DefaultAPIVersion)

		// Support short aliases
		switch version {
		case "1", "1.0":
			version = DefaultAPIVersion
		}

		c.Locals("apiVersion", version)
		c.Set("X-Api-Version", version)

		return c.Next()
	}
}
