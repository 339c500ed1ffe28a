package handlers

import (
	"github.com/gofiber/fiber/v2"

	"smartbot/career-matcher/internal/models"
	"smartbot/career-matcher/internal/services"
)

type ChatHandler struct {
	sessions services.SessionService
	wizard   services.WizardService
}

func NewChatHandler(sessions services.SessionService, wizard services.WizardService) *ChatHandler {
	return &ChatHandler{
		sessions: sessions,
		wizard:   wizard,
	}
}

// HandleMessage handles POST /sessions/:id/chat
func (h *ChatHandler) HandleMessage(c *fiber.Ctx) error {
	session, err := loadSession(c, h.sessions)
	if session == nil {
		return err
	}

	var req models.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	reply, err := h.wizard.SendChatMessage(c.UserContext(), session, req.Message)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.ChatResponse{
		Reply:      reply,
		Transcript: session.Snapshot().Transcript,
	})
}

// HandleFinalize handles POST /sessions/:id/finalize: the user elects
// to leave the refinement chat and run the structured analysis.
func (h *ChatHandler) HandleFinalize(c *fiber.Ctx) error {
	session, err := loadSession(c, h.sessions)
	if session == nil {
		return err
	}

	if err := h.wizard.Finalize(c.UserContext(), session); err != nil {
		return respondError(c, err)
	}
	return c.JSON(session.Snapshot())
}
