package middleware

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/recepcao-app/recepcao/internal/auth"
)

// AdminIDKey is the Locals key under which the guard stores the
// authenticated administrator's identifier.
const AdminIDKey = "admin_id"

// RequireAdmin rejects requests without a valid admin session before the
// protected handler runs. The guard treats a session whose administrator
// was deleted like any other anonymous session.
func RequireAdmin(sessions *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(auth.SessionCookie)
		a, err := sessions.CurrentAdmin(c.UserContext(), token)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "Não autenticado")
		}

		c.Locals(AdminIDKey, a.ID)
		return c.Next()
	}
}
