package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/recepcao-app/recepcao/internal/visitor"
)

// RegisterVisitorRoutes wires the admin-facing visitor endpoints. The
// stats route goes first so it never matches as a visitor id.
func RegisterVisitorRoutes(r fiber.Router, h *visitor.Handler) {
	group := r.Group("/visitors")
	group.Get("/stats", h.Stats)
	group.Get("/", h.List)
	group.Get("/:id", h.Get)
	group.Put("/:id", h.Update)
	group.Delete("/:id", h.Delete)
}
