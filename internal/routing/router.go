// Package routing decides which OCR engine to invoke first for a document,
// based on the external document-type classification.
package routing

import (
	"context"
	"fmt"
	"log"

	"docusight/internal/domain"
	"docusight/internal/port"
)

// engineByDocumentType maps classifier labels to preferred engines. Invoices
// go to the transformer recognizer; everything else to general OCR.
var engineByDocumentType = map[string]domain.EngineKind{
	"invoice": domain.EngineTrOCR,
	"receipt": domain.EngineTesseract,
	"note":    domain.EngineTesseract,
	"letter":  domain.EngineTesseract,
	"form":    domain.EngineTesseract,
}

// Router chooses the primary OCR engine for each request.
type Router struct {
	classifier             port.DocumentClassifier
	lowConfidenceThreshold float64
}

// New creates a Router. Classifications scoring below lowConfidenceThreshold
// are overridden to the general engine regardless of document type.
func New(classifier port.DocumentClassifier, lowConfidenceThreshold float64) *Router {
	return &Router{
		classifier:             classifier,
		lowConfidenceThreshold: lowConfidenceThreshold,
	}
}

// Route classifies the referenced image and returns the engine decision.
// Route never fails: classifier errors are surfaced on the decision with the
// general engine defaulted, so processing can continue.
func (r *Router) Route(ctx context.Context, imageRef string) domain.RoutingDecision {
	cls, err := r.classifier.Classify(ctx, imageRef)
	if err != nil {
		log.Printf("routing.Router: classification failed for %s: %v", imageRef, err)
		return domain.RoutingDecision{
			Engine:       domain.EngineTesseract,
			DocumentType: "unknown",
			Reasoning:    "Classification failed; defaulting to general OCR",
			Error:        err.Error(),
		}
	}

	decision := domain.RoutingDecision{
		DocumentType:         cls.DocumentType,
		ClassifierConfidence: cls.Confidence,
	}

	if cls.Confidence < r.lowConfidenceThreshold {
		decision.Engine = domain.EngineTesseract
		decision.Reasoning = fmt.Sprintf(
			"Low confidence (%.2f) for type '%s'; falling back to general OCR",
			cls.Confidence, cls.DocumentType,
		)
		return decision
	}

	engine, ok := engineByDocumentType[cls.DocumentType]
	if !ok {
		engine = domain.EngineTesseract
	}
	decision.Engine = engine
	decision.Reasoning = fmt.Sprintf(
		"Classified as '%s' (confidence %.2f); routing to %s",
		cls.DocumentType, cls.Confidence, engine,
	)
	return decision
}
