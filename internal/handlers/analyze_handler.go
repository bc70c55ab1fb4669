package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"resumelens/resume-analyzer/internal/services"
)

type AnalyzeHandler struct {
	analyzer       services.AnalyzerService
	storageService services.StorageService
	logger         *zap.Logger
}

func NewAnalyzeHandler(
	analyzer services.AnalyzerService,
	storageService services.StorageService,
	logger *zap.Logger,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer:       analyzer,
		storageService: storageService,
		logger:         logger,
	}
}

// HandleAnalyze handles POST /analyze: a multipart form with a "resume"
// PDF and an optional "jd_text" field.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No resume file provided",
		})
	}

	jdText := c.FormValue("jd_text", "")

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read resume file",
		})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read resume file",
		})
	}

	// Archive the upload; analysis proceeds either way.
	if _, err := h.storageService.SaveResume(data); err != nil {
		h.logger.Warn("failed to archive resume", zap.Error(err))
	}

	response, err := h.analyzer.Analyze(c.Context(), data, jdText)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(response)
}

// HandleHealthCheck handles GET /.
func (h *AnalyzeHandler) HandleHealthCheck(c *fiber.Ctx) error {
	return c.SendString("Resume Service is Running!")
}
