package port

import "context"

// Classification is the document-type prediction for a scanned image.
type Classification struct {
	DocumentType string  `json:"document_type"`
	Confidence   float64 `json:"confidence"`
}

// DocumentClassifier abstracts the external document-type model.
// A missing image surfaces domain.ErrNotFound.
type DocumentClassifier interface {
	Classify(ctx context.Context, imageRef string) (*Classification, error)
}
