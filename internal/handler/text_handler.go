package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docusight/internal/textnorm"
)

// TextHandler exposes the text normalization stage directly, for callers
// that already have OCR text and only want cleanup and structure.
type TextHandler struct{}

// NewTextHandler creates a new TextHandler.
func NewTextHandler() *TextHandler {
	return &TextHandler{}
}

type structureRequest struct {
	Text string `json:"text" binding:"required"`
}

type structureResponse struct {
	Cleaned    string              `json:"cleaned"`
	Structured textnorm.Structured `json:"structured"`
}

// Structure handles POST /api/v1/text/structure.
func (h *TextHandler) Structure(c *gin.Context) {
	var req structureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "field 'text' is required")
		return
	}

	cleaned := textnorm.Clean(req.Text)
	RespondOK(c, structureResponse{
		Cleaned:    cleaned,
		Structured: textnorm.ToParagraphs(cleaned),
	})
}
