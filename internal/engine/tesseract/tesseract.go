// Package tesseract implements port.OCREngine on top of a local Tesseract
// installation via gosseract.
package tesseract

import (
	"context"
	"fmt"
	"os"

	"github.com/otiai10/gosseract/v2"

	"docusight/internal/config"
	"docusight/internal/domain"
	"docusight/internal/port"
	"docusight/internal/textnorm"
)

// Engine is the general-purpose OCR engine and the fallback of last resort.
type Engine struct {
	languages     []string
	clientFactory func() *gosseract.Client
}

// NewEngine creates a Tesseract-backed engine from configuration.
func NewEngine(cfg *config.TesseractConfig) *Engine {
	return &Engine{
		languages:     cfg.Languages,
		clientFactory: gosseract.NewClient,
	}
}

// Name implements port.OCREngine.
func (e *Engine) Name() string { return string(domain.EngineTesseract) }

// Recognize runs Tesseract on the referenced image. Confidence is the mean
// word-level confidence mapped to [0,1]; the raw text is cleaned of
// fragmentation artifacts before being returned.
func (e *Engine) Recognize(ctx context.Context, imageRef string) (*port.Recognition, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := os.ReadFile(imageRef)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image %s: %w", imageRef, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("reading image: %w", err)
	}

	c := e.clientFactory()
	defer func() { _ = c.Close() }()

	if err := c.SetImageFromBytes(data); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}
	if len(e.languages) > 0 {
		if err := c.SetLanguage(e.languages...); err != nil {
			return nil, fmt.Errorf("set languages: %w", err)
		}
	}

	text, err := c.Text()
	if err != nil {
		return nil, fmt.Errorf("recognize text: %v: %w", err, domain.ErrEngineFailed)
	}

	return &port.Recognition{
		Text:       textnorm.Clean(text),
		Confidence: meanWordConfidence(c),
	}, nil
}

// meanWordConfidence averages word-level confidences from Tesseract's
// bounding boxes, scaled from percent to [0,1].
func meanWordConfidence(c *gosseract.Client) float64 {
	boxes, err := c.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return 0
	}
	var sum float64
	for _, b := range boxes {
		sum += b.Confidence / 100.0
	}
	return sum / float64(len(boxes))
}
