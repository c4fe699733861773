// Package trocr implements port.OCREngine against a TrOCR inference server.
package trocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"docusight/internal/config"
	"docusight/internal/domain"
	"docusight/internal/port"
)

// Engine calls the transformer recognizer over HTTP.
type Engine struct {
	endpoint string
	client   *http.Client
}

// NewEngine creates a TrOCR engine from configuration.
func NewEngine(cfg *config.TrOCRConfig) *Engine {
	return NewEngineWithEndpoint(cfg, cfg.Endpoint)
}

// NewEngineWithEndpoint creates an engine pointing at a custom endpoint (for testing).
func NewEngineWithEndpoint(cfg *config.TrOCRConfig, endpoint string) *Engine {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Engine{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Name implements port.OCREngine.
func (e *Engine) Name() string { return string(domain.EngineTrOCR) }

type recognizeRequest struct {
	Image string `json:"image"`
}

type recognizeResponse struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Error      string  `json:"error"`
}

// Recognize uploads the image to the inference server and returns its
// transcription with confidence.
func (e *Engine) Recognize(ctx context.Context, imageRef string) (*port.Recognition, error) {
	data, err := os.ReadFile(imageRef)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image %s: %w", imageRef, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("reading image: %w", err)
	}

	body, err := json.Marshal(recognizeRequest{Image: base64.StdEncoding.EncodeToString(data)})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling trocr server: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trocr server error (status %d): %s: %w", resp.StatusCode, string(respBody), domain.ErrEngineFailed)
	}

	var out recognizeResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if out.Error != "" {
		return nil, fmt.Errorf("trocr inference: %s: %w", out.Error, domain.ErrEngineFailed)
	}

	return &port.Recognition{Text: out.Text, Confidence: out.Confidence}, nil
}
