package transport

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/kursadbilgin/call-assistant/internal/observability"
)

// UserIDHeader carries the caller identity. Every data route is scoped to
// this identifier.
const UserIDHeader = "X-User-ID"

const userIDLocal = "userID"

// RequireUser validates the identity header and stores the user id in both
// fiber locals and the request context.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(UserIDHeader)
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing "+UserIDHeader+" header")
		}

		parsed, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid "+UserIDHeader+" header")
		}

		userID := parsed.String()
		c.Locals(userIDLocal, userID)
		c.SetUserContext(observability.WithUserID(c.UserContext(), userID))
		return c.Next()
	}
}

// UserID returns the identity stored by RequireUser. It is empty on routes
// that skip the middleware.
func UserID(c *fiber.Ctx) string {
	userID, _ := c.Locals(userIDLocal).(string)
	return userID
}
