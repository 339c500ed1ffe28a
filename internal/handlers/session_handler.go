package handlers

import (
	"github.com/gofiber/fiber/v2"

	"smartbot/career-matcher/internal/services"
)

type SessionHandler struct {
	sessions services.SessionService
	wizard   services.WizardService
}

func NewSessionHandler(sessions services.SessionService, wizard services.WizardService) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		wizard:   wizard,
	}
}

// HandleCreate handles POST /sessions
func (h *SessionHandler) HandleCreate(c *fiber.Ctx) error {
	session := h.sessions.Create()
	return c.Status(fiber.StatusCreated).JSON(session.Snapshot())
}

// HandleGet handles GET /sessions/:id
func (h *SessionHandler) HandleGet(c *fiber.Ctx) error {
	session, err := loadSession(c, h.sessions)
	if session == nil {
		return err
	}
	return c.JSON(session.Snapshot())
}

// HandleReset handles POST /sessions/:id/reset. Everything goes back to
// defaults, including the reseeded greeting turn.
func (h *SessionHandler) HandleReset(c *fiber.Ctx) error {
	session, err := loadSession(c, h.sessions)
	if session == nil {
		return err
	}

	if err := h.wizard.Reset(session); err != nil {
		return respondError(c, err)
	}
	return c.JSON(session.Snapshot())
}
