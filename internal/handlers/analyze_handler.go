package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"hiringlab/ats-analyzer/internal/models"
	"hiringlab/ats-analyzer/internal/repositories"
	"hiringlab/ats-analyzer/internal/services"
)

type AnalyzeHandler struct {
	docRepo        repositories.DocumentRepository
	storageService services.StorageService
	analyzer       services.AnalyzerService
	maxFileSize    int64
	log            *zap.SugaredLogger
}

func NewAnalyzeHandler(
	docRepo repositories.DocumentRepository,
	storageService services.StorageService,
	analyzer services.AnalyzerService,
	maxFileSize int64,
	log *zap.SugaredLogger,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		docRepo:        docRepo,
		storageService: storageService,
		analyzer:       analyzer,
		maxFileSize:    maxFileSize,
		log:            log,
	}
}

// HandleAnalyze handles POST /api/v1/analyze. A malformed request is rejected
// with a client error before any pipeline work; an accepted request always
// returns a complete report, with failures expressed as ERROR reports.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing 'file' field in multipart form",
		})
	}

	if file.Filename == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "uploaded file has no filename",
		})
	}

	if !services.IsSupportedDocument(file.Filename) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unsupported document type; upload a .pdf, .docx or .txt resume",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("file too large, max size: %d bytes", h.maxFileSize),
		})
	}

	h.log.Infow("analysis request accepted",
		"filename", file.Filename, "size", file.Size)

	filename, filePath, err := h.storageService.SaveFile(file)
	if err != nil {
		h.log.Errorw("failed to store upload", "error", err)
		return c.JSON(services.ErrorReport(services.NewFailure(services.FailureTransient, err)))
	}

	if h.docRepo != nil {
		doc := models.Document{
			ID:               uuid.New(),
			Filename:         filename,
			OriginalFileName: file.Filename,
			ContentType:      file.Header.Get("Content-Type"),
			SizeBytes:        file.Size,
			FilePath:         filePath,
			CreatedAt:        time.Now(),
			UpdatedAt:        time.Now(),
		}
		// Registry is an audit trail only; failure to record never blocks
		// the analysis.
		if err := h.docRepo.Create(&doc); err != nil {
			h.log.Warnw("failed to record document", "error", err)
		}
	}

	report := h.analyzer.AnalyzeResume(c.UserContext(), filePath)

	h.log.Infow("analysis completed",
		"filename", file.Filename,
		"verdict", report.Verdict,
		"score", report.OverallScore)

	return c.JSON(report)
}
