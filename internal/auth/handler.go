package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/recepcao-app/recepcao/internal/admin"
)

// SessionCookie is the cookie carrying the opaque session token.
const SessionCookie = "admin_session"

// Handler exposes the login/logout/me endpoints.
type Handler struct {
	sessions *Service
	secure   bool
}

// NewHandler constructs an auth HTTP handler. secure controls the cookie
// Secure attribute and should be true behind HTTPS.
func NewHandler(sessions *Service, secure bool) *Handler {
	return &Handler{sessions: sessions, secure: secure}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates an administrator and sets the session cookie.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "Email e senha são obrigatórios")
	}

	token, a, err := h.sessions.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, admin.ErrInvalidCredentials) {
			return fiber.NewError(http.StatusUnauthorized, "Email ou senha incorretos")
		}
		return fiber.NewError(http.StatusInternalServerError, "Erro interno do servidor")
	}

	h.setCookie(c, token, h.sessions.TTL())
	return c.JSON(fiber.Map{
		"message": "Login realizado com sucesso",
		"admin":   a,
	})
}

// Logout revokes the current session. Always succeeds.
func (h *Handler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.Logout(c.UserContext(), c.Cookies(SessionCookie)); err != nil {
		return fiber.NewError(http.StatusInternalServerError, "Erro interno do servidor")
	}
	h.clearCookie(c)
	return c.JSON(fiber.Map{"message": "Logout realizado com sucesso"})
}

// Me returns the administrator bound to the current session.
func (h *Handler) Me(c *fiber.Ctx) error {
	a, err := h.sessions.CurrentAdmin(c.UserContext(), c.Cookies(SessionCookie))
	if err != nil {
		switch {
		case errors.Is(err, ErrUnauthenticated):
			return fiber.NewError(http.StatusUnauthorized, "Não autenticado")
		case errors.Is(err, admin.ErrNotFound):
			h.clearCookie(c)
			return fiber.NewError(http.StatusNotFound, "Administrador não encontrado")
		default:
			return fiber.NewError(http.StatusInternalServerError, "Erro interno do servidor")
		}
	}
	return c.JSON(a)
}

func (h *Handler) setCookie(c *fiber.Ctx, token string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (h *Handler) clearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
