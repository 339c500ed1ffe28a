package handlers

import (
	"github.com/gofiber/fiber/v2"

	"smartbot/career-matcher/internal/services"
)

type UploadHandler struct {
	sessions services.SessionService
	wizard   services.WizardService
	ingest   services.IngestService
}

func NewUploadHandler(
	sessions services.SessionService,
	wizard services.WizardService,
	ingest services.IngestService,
) *UploadHandler {
	return &UploadHandler{
		sessions: sessions,
		wizard:   wizard,
		ingest:   ingest,
	}
}

// HandleUpload handles POST /sessions/:id/document. The file is read
// into the session only; nothing touches the disk.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	session, err := loadSession(c, h.sessions)
	if session == nil {
		return err
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded. Send the document as multipart field 'document'.",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to open uploaded file",
		})
	}
	defer file.Close()

	doc, err := h.ingest.Ingest(
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
	)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.wizard.AttachDocument(session, doc); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Файл загружен!",
		"document": doc,
	})
}
