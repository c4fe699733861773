package handler

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"docusight/internal/config"
	"docusight/internal/domain"
)

// Processor runs one document through the OCR pipeline.
type Processor interface {
	Process(ctx context.Context, imageRef string) *domain.OrchestrationResult
}

// OCRHandler handles document processing endpoints.
type OCRHandler struct {
	processor   Processor
	maxFileSize int64
	tempDir     string
}

// NewOCRHandler creates a new OCRHandler.
func NewOCRHandler(processor Processor, cfg *config.UploadConfig) *OCRHandler {
	return &OCRHandler{
		processor:   processor,
		maxFileSize: cfg.MaxFileSizeMB * 1024 * 1024,
		tempDir:     cfg.TempDir,
	}
}

// Process handles POST /api/v1/ocr/process. The uploaded image is staged to
// a temporary file for the duration of the request; nothing is persisted.
func (h *OCRHandler) Process(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "multipart field 'file' is required")
		return
	}

	if fileHeader.Size > h.maxFileSize {
		HandleError(c, domain.ErrFileTooLarge)
		return
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileHeader.Filename)), ".")
	if _, ok := domain.AllowedExtensions[ext]; !ok {
		HandleError(c, domain.ErrUnsupportedFileType)
		return
	}
	if ct := fileHeader.Header.Get("Content-Type"); ct != "" {
		if _, ok := domain.AllowedContentTypes[ct]; !ok {
			HandleError(c, domain.ErrUnsupportedFileType)
			return
		}
	}

	tmp, err := os.CreateTemp(h.tempDir, fmt.Sprintf("upload-*.%s", ext))
	if err != nil {
		HandleError(c, err)
		return
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	defer func() { _ = os.Remove(tmpPath) }()

	if err := c.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		HandleError(c, err)
		return
	}

	result := h.processor.Process(c.Request.Context(), tmpPath)
	RespondOK(c, result)
}
