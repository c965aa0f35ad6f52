package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"laudoapi/internal/http/middleware"
	"laudoapi/internal/model"
	"laudoapi/internal/service"
)

// generateResponse is the body returned by the report endpoint.
type generateResponse struct {
	Text         string `json:"laudo_txt"`
	DownloadPath string `json:"download_docx"`
}

// GenerateReport builds the thyroid report for an exam and stores its document.
//
// @Summary Generate thyroid ultrasound report
// @Tags laudos
// @Accept json
// @Produce json
// @Param exam body model.ExamInput true "Exam measurements"
// @Success 200 {object} generateResponse
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /gerar-laudo-tireoide [post]
func GenerateReport(svc service.ReportService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		exam, err := model.DecodeExam(c.Body())
		if err != nil {
			var verr *model.ValidationError
			if errors.As(err, &verr) {
				return writeErrorDetails(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "invalid exam payload", verr.Fields)
			}
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "bad request")
		}

		rep, err := svc.Generate(c.UserContext(), exam)
		if err != nil {
			log.Error("report_generation_failed",
				zap.String("request_id", middleware.RequestIDFromCtx(c)),
				zap.Error(err),
			)
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		return c.Status(fiber.StatusOK).JSON(generateResponse{
			Text:         rep.Text,
			DownloadPath: rep.DownloadPath,
		})
	}
}

// DownloadReport streams a previously generated report document.
//
// @Summary Download report document
// @Tags laudos
// @Produce application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Param arquivo path string true "Document file name (<uuid>.docx)"
// @Success 200 {file} binary
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /baixar-laudo/{arquivo} [get]
func DownloadReport(svc service.ReportService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := c.Params("arquivo")

		rc, info, err := svc.Open(c.UserContext(), name)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidFilename):
				return writeError(c, fiber.StatusBadRequest, "INVALID_FILENAME", "invalid file name")
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "report not found")
			default:
				log.Error("report_download_failed",
					zap.String("request_id", middleware.RequestIDFromCtx(c)),
					zap.String("filename", name),
					zap.Error(err),
				)
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}

		c.Attachment(name)
		c.Set(fiber.HeaderContentType, info.ContentType)

		size := -1
		if info.Size > 0 {
			size = int(info.Size)
		}
		// fasthttp closes rc once the body has been sent
		return c.Status(fiber.StatusOK).SendStream(rc, size)
	}
}
