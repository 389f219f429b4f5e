package visitor

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes visitor endpoints.
type Handler struct {
	service        *Service
	defaultPerPage int
}

// NewHandler constructs a visitor HTTP handler.
func NewHandler(service *Service, defaultPerPage int) *Handler {
	return &Handler{service: service, defaultPerPage: defaultPerPage}
}

type createRequest struct {
	Nome          string `json:"nome"`
	Telefone      string `json:"telefone"`
	Idade         any    `json:"idade"`
	Consentimento bool   `json:"consentimento"`
	Origem        string `json:"origem"`
}

type updateRequest struct {
	Telefone *string `json:"telefone"`
	Idade    any     `json:"idade"`
	Status   *string `json:"status"`
	Nota     *string `json:"nota"`
}

// Create registers a walk-in visitor. This is the public form endpoint.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	v, err := h.service.Create(c.UserContext(), Submission{
		Nome:          req.Nome,
		Telefone:      req.Telefone,
		Idade:         req.Idade,
		Consentimento: req.Consentimento,
		Origem:        req.Origem,
	}, clientAddr(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Visitante registrado com sucesso!",
		"visitor": v,
	})
}

// List returns a filtered, paginated listing, newest first.
func (h *Handler) List(c *fiber.Ctx) error {
	filter := Filter{
		Search: strings.TrimSpace(c.Query("search")),
		Status: strings.TrimSpace(c.Query("status")),
	}
	page := Page{
		Number:  c.QueryInt("page", 1),
		PerPage: c.QueryInt("per_page", h.defaultPerPage),
	}
	if page.Number < 1 {
		page.Number = 1
	}
	if page.PerPage < 1 {
		page.PerPage = h.defaultPerPage
	}

	visitors, total, pages, err := h.service.List(c.UserContext(), filter, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"visitors":     visitors,
		"total":        total,
		"pages":        pages,
		"current_page": page.Number,
		"per_page":     page.PerPage,
	})
}

// Get returns a single visitor.
func (h *Handler) Get(c *fiber.Ctx) error {
	v, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(v)
}

// Update applies a partial update to a visitor.
func (h *Handler) Update(c *fiber.Ctx) error {
	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	v, err := h.service.Update(c.UserContext(), c.Params("id"), Update{
		Telefone: req.Telefone,
		Idade:    req.Idade,
		Status:   req.Status,
		Nota:     req.Nota,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(v)
}

// Delete removes a visitor.
func (h *Handler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// Stats reports visitor totals.
func (h *Handler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext(), time.Now().UTC())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// clientAddr prefers the forwarded address set by the reverse proxy.
func clientAddr(c *fiber.Ctx) string {
	if fwd := c.Get(fiber.HeaderXForwardedFor); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	return c.IP()
}

func respondError(c *fiber.Ctx, err error) error {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"errors": verr.Fields})
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(http.StatusNotFound, "Visitante não encontrado")
	default:
		return fiber.NewError(http.StatusInternalServerError, "Erro interno do servidor")
	}
}
