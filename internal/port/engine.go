package port

import "context"

// Recognition is the raw output of one OCR engine invocation.
type Recognition struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// OCREngine abstracts a single OCR engine (transformer recognizer or
// general-purpose OCR). Implementations must not panic; engine-level
// failures are returned as errors and recovered by the orchestrator.
type OCREngine interface {
	Recognize(ctx context.Context, imageRef string) (*Recognition, error)
	Name() string
}
