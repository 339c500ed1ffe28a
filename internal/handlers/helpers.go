package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"smartbot/career-matcher/internal/models"
	"smartbot/career-matcher/internal/services"
)

// loadSession resolves the :id path parameter. On failure it writes the
// response itself and returns a nil session.
func loadSession(c *fiber.Ctx, sessions services.SessionService) (*models.Session, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID format",
		})
	}

	session, err := sessions.Get(id)
	if err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	}

	return session, nil
}

// respondError maps domain and gateway sentinels onto HTTP statuses.
// Validation banners stay in Russian, matching the rest of the
// user-facing copy; API misuse gets English developer-facing text.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrInvalidRole):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown role",
		})
	case errors.Is(err, services.ErrEmptyMessage):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message must not be empty",
		})
	case errors.Is(err, models.ErrIncompleteQuestionnaire):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Пожалуйста, ответьте на все вопросы перед продолжением.",
		})
	case errors.Is(err, services.ErrFileTooLarge):
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"error": "Файл слишком большой. Максимальный размер 500 КБ.",
		})
	case errors.Is(err, services.ErrUnreadableContent):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Ошибка чтения файла. Поддерживаются только текстовые файлы (.txt).",
		})
	case errors.Is(err, models.ErrDocumentRequired):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Сначала загрузите файл с текстовым содержимым.",
		})
	case errors.Is(err, models.ErrSessionBusy):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Запрос уже выполняется. Дождитесь завершения.",
		})
	case errors.Is(err, models.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Action is not allowed in the current view",
		})
	case errors.Is(err, services.ErrAnalysisFailed):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": services.MsgAnalysisFailed,
		})
	case errors.Is(err, services.ErrChatFailed):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": services.MsgChatFailed,
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}
