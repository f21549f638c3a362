// Package middleware provides authentication, rate limiting and observability
// middleware for the application.
package middleware

import (
	"github.com/gofiber/fiber/v2"

	"stuntcare/internal/auth"
	"stuntcare/internal/models"
)

// SessionCookieName is the cookie issued at login.
const SessionCookieName = "session"

// AuthRequired returns a middleware that enforces a valid session cookie for
// protected routes. On success the auth subject id is stored in
// c.Locals("uid").
func AuthRequired(provider auth.Provider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cookie := c.Cookies(SessionCookieName)
		if cookie == "" {
			return models.RespondWithError(c, models.NewUnauthorizedError("Session cookie required"))
		}

		uid, err := provider.VerifySessionCookie(c.Context(), cookie)
		if err != nil {
			return models.RespondWithError(c, models.NewUnauthorizedError("Invalid or expired session"))
		}

		c.Locals("uid", uid)
		return c.Next()
	}
}
