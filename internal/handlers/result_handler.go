package handlers

import (
	"github.com/gofiber/fiber/v2"

	"smartbot/career-matcher/internal/services"
)

type ResultHandler struct {
	sessions services.SessionService
}

func NewResultHandler(sessions services.SessionService) *ResultHandler {
	return &ResultHandler{
		sessions: sessions,
	}
}

// HandleGetResult handles GET /sessions/:id/result with the rendered
// projection: banded scores, role-dependent headings.
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	session, err := loadSession(c, h.sessions)
	if session == nil {
		return err
	}

	result := session.Result()
	if result == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Result is not ready",
		})
	}

	return c.JSON(services.RenderResult(session.Role(), result))
}
