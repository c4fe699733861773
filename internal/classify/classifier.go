// Package classify implements port.DocumentClassifier against the external
// document-type model server.
package classify

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

// Classifier calls the document-type model over HTTP.
type Classifier struct {
	endpoint string
	client   *http.Client
}

// New creates a Classifier from configuration.
func New(cfg *config.ClassifierConfig) *Classifier {
	return NewWithEndpoint(cfg, cfg.Endpoint)
}

// NewWithEndpoint creates a classifier pointing at a custom endpoint (for testing).
func NewWithEndpoint(cfg *config.ClassifierConfig, endpoint string) *Classifier {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Classifier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type classifyRequest struct {
	Image string `json:"image"`
}

// Classify predicts the document type of the referenced image. A missing
// image surfaces domain.ErrNotFound so the router can record it as a routing
// error instead of failing the request.
func (c *Classifier) Classify(ctx context.Context, imageRef string) (*port.Classification, error) {
	if _, err := os.Stat(imageRef); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image %s: %w", imageRef, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("stat image: %w", err)
	}

	data, err := os.ReadFile(imageRef)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}

	body, err := json.Marshal(classifyRequest{Image: base64.StdEncoding.EncodeToString(data)})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling classifier: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classifier error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var out port.Classification
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &out, nil
}
