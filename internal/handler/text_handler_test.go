package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docusight/internal/handler"
	"docusight/internal/textnorm"
)

func newTextRouter() *gin.Engine {
	r := gin.New()
	r.POST("/api/v1/text/structure", handler.NewTextHandler().Structure)
	return r
}

func TestTextHandler_Structure(t *testing.T) {
	body := `{"text": "Line one\nLine two\n\n\n\nSecond para"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/text/structure", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	newTextRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Cleaned    string              `json:"cleaned"`
			Structured textnorm.Structured `json:"structured"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Line one\nLine two\n\nSecond para", resp.Data.Cleaned)
	require.Len(t, resp.Data.Structured.Paragraphs, 2)
	assert.Equal(t, []string{"Line one", "Line two"}, resp.Data.Structured.Paragraphs[0].Lines)
	assert.Equal(t, []string{"Second para"}, resp.Data.Structured.Paragraphs[1].Lines)
}

func TestTextHandler_MissingText(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/text/structure", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	newTextRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_REQUEST")
}
