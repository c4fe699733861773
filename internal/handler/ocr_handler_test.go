package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docusight/internal/config"
	"docusight/internal/domain"
	"docusight/internal/handler"
	"docusight/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newOCRRouter(processor handler.Processor, maxFileSizeMB int64) *gin.Engine {
	h := handler.NewOCRHandler(processor, &config.UploadConfig{MaxFileSizeMB: maxFileSizeMB})
	r := gin.New()
	r.POST("/api/v1/ocr/process", h.Process)
	return r
}

func multipartUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	if ct := mime.TypeByExtension(filepath.Ext(filename)); ct != "" {
		h.Set("Content-Type", ct)
	}
	fw, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestOCRHandler_Process(t *testing.T) {
	processor := new(mocks.MockProcessor)
	result := &domain.OrchestrationResult{
		Text:             "Total: 110.00",
		ConfidenceScore:  0.95,
		ValidationStatus: domain.ValidationStatusValid,
		Metadata:         domain.ResultMetadata{EngineUsed: "trocr", DocumentType: "invoice"},
	}
	processor.On("Process", mock.Anything, mock.AnythingOfType("string")).Return(result)

	body, contentType := multipartUpload(t, "invoice.png", []byte("fake png"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ocr/process", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	newOCRRouter(processor, 20).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                       `json:"success"`
		Data    domain.OrchestrationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Total: 110.00", resp.Data.Text)
	assert.Equal(t, "trocr", resp.Data.Metadata.EngineUsed)
	processor.AssertExpectations(t)
}

func TestOCRHandler_MissingFile(t *testing.T) {
	processor := new(mocks.MockProcessor)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ocr/process", nil)
	w := httptest.NewRecorder()

	newOCRRouter(processor, 20).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_REQUEST")
	processor.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestOCRHandler_UnsupportedFileType(t *testing.T) {
	processor := new(mocks.MockProcessor)

	body, contentType := multipartUpload(t, "document.pdf", []byte("%PDF-1.4"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ocr/process", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	newOCRRouter(processor, 20).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "UNSUPPORTED_FILE_TYPE")
	processor.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestOCRHandler_MismatchedContentType(t *testing.T) {
	processor := new(mocks.MockProcessor)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="invoice.png"`)
	h.Set("Content-Type", "text/plain")
	fw, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = fw.Write([]byte("not an image"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ocr/process", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()

	newOCRRouter(processor, 20).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "UNSUPPORTED_FILE_TYPE")
	processor.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestOCRHandler_FileTooLarge(t *testing.T) {
	processor := new(mocks.MockProcessor)

	// 0 MB limit makes any non-empty upload oversized.
	body, contentType := multipartUpload(t, "invoice.png", []byte("fake png"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ocr/process", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	newOCRRouter(processor, 0).ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "FILE_TOO_LARGE")
	processor.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}
