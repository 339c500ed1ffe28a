package handlers

import (
	"github.com/gofiber/fiber/v2"

	"smartbot/career-matcher/internal/models"
	"smartbot/career-matcher/internal/services"
)

type WizardHandler struct {
	sessions services.SessionService
	wizard   services.WizardService
}

func NewWizardHandler(sessions services.SessionService, wizard services.WizardService) *WizardHandler {
	return &WizardHandler{
		sessions: sessions,
		wizard:   wizard,
	}
}

// HandleSelectRole handles POST /sessions/:id/role
func (h *WizardHandler) HandleSelectRole(c *fiber.Ctx) error {
	session, err := loadSession(c, h.sessions)
	if session == nil {
		return err
	}

	var req models.SelectRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := h.wizard.SelectRole(session, req.Role); err != nil {
		return respondError(c, err)
	}
	return c.JSON(session.Snapshot())
}

// HandleQuestions handles GET /sessions/:id/questions
func (h *WizardHandler) HandleQuestions(c *fiber.Ctx) error {
	session, err := loadSession(c, h.sessions)
	if session == nil {
		return err
	}

	role := session.Role()
	if !role.Valid() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Role is not selected yet",
		})
	}

	return c.JSON(fiber.Map{
		"role":      role,
		"questions": models.QuestionsFor(role),
	})
}

// HandleAnswers handles POST /sessions/:id/answers
func (h *WizardHandler) HandleAnswers(c *fiber.Ctx) error {
	session, err := loadSession(c, h.sessions)
	if session == nil {
		return err
	}

	var req models.AnswersRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if len(req.Answers) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "answers is required",
		})
	}

	if err := h.wizard.SubmitAnswers(session, req.Answers); err != nil {
		return respondError(c, err)
	}
	return c.JSON(session.Snapshot())
}

// HandleAdvance handles POST /sessions/:id/advance. For a recruiter on
// the upload view this runs the structured analysis before responding.
func (h *WizardHandler) HandleAdvance(c *fiber.Ctx) error {
	session, err := loadSession(c, h.sessions)
	if session == nil {
		return err
	}

	if err := h.wizard.Advance(c.UserContext(), session); err != nil {
		return respondError(c, err)
	}
	return c.JSON(session.Snapshot())
}

// HandleBack handles POST /sessions/:id/back
func (h *WizardHandler) HandleBack(c *fiber.Ctx) error {
	session, err := loadSession(c, h.sessions)
	if session == nil {
		return err
	}

	if err := h.wizard.Back(session); err != nil {
		return respondError(c, err)
	}
	return c.JSON(session.Snapshot())
}
