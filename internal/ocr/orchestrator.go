// Package ocr coordinates the full recognition pipeline: routing, engine
// invocation with ensemble fallback, then normalization, extraction, and
// validation of the chosen text.
package ocr

import (
	"context"
	"fmt"
	"log"

	"docusight/internal/domain"
	"docusight/internal/extract"
	"docusight/internal/port"
	"docusight/internal/routing"
	"docusight/internal/textnorm"
	"docusight/internal/validator"
)

// DefaultConfidenceThreshold triggers the ensemble second opinion when the
// primary engine's confidence falls below it.
const DefaultConfidenceThreshold = 0.85

// Orchestrator runs one document through the whole pipeline. It performs at
// most two engine invocations per request: the primary, plus at most one of
// the ensemble secondary or the fallback engine.
type Orchestrator struct {
	router              *routing.Router
	engines             map[domain.EngineKind]port.OCREngine
	extractor           *extract.Extractor
	validator           *validator.FieldValidator
	confidenceThreshold float64
}

// NewOrchestrator assembles the pipeline. A non-positive threshold falls
// back to DefaultConfidenceThreshold.
func NewOrchestrator(
	router *routing.Router,
	engines map[domain.EngineKind]port.OCREngine,
	extractor *extract.Extractor,
	fieldValidator *validator.FieldValidator,
	confidenceThreshold float64,
) *Orchestrator {
	if confidenceThreshold <= 0 {
		confidenceThreshold = DefaultConfidenceThreshold
	}
	return &Orchestrator{
		router:              router,
		engines:             engines,
		extractor:           extractor,
		validator:           fieldValidator,
		confidenceThreshold: confidenceThreshold,
	}
}

// Process runs the referenced image through routing, recognition, and
// post-processing, and assembles the final result. It never fails: engine
// errors are recovered via fallback and reported on the result.
func (o *Orchestrator) Process(ctx context.Context, imageRef string) *domain.OrchestrationResult {
	decision := o.router.Route(ctx, imageRef)

	result := &domain.OrchestrationResult{
		RoutingInfo:        decision,
		ValidationStatus:   domain.ValidationStatusNone,
		ValidationErrors:   []string{},
		CorrectionsApplied: []domain.CorrectionRecord{},
		LineItems:          []domain.LineItem{},
		Metadata: domain.ResultMetadata{
			EngineUsed:           string(decision.Engine),
			ClassifierConfidence: decision.ClassifierConfidence,
			DocumentType:         decision.DocumentType,
		},
	}

	o.recognize(ctx, imageRef, decision.Engine, result)

	if result.Text != "" {
		o.postProcess(result)
	}
	return result
}

// recognize runs the primary engine, then either the ensemble second opinion
// (low confidence) or the fallback engine (primary failure).
func (o *Orchestrator) recognize(ctx context.Context, imageRef string, primary domain.EngineKind, result *domain.OrchestrationResult) {
	rec, err := o.engines[primary].Recognize(ctx, imageRef)
	if err != nil {
		log.Printf("ocr.Orchestrator: %s failed for %s: %v", primary, imageRef, err)
		result.Error = err.Error()
		o.fallback(ctx, imageRef, result)
		return
	}

	result.Text = rec.Text
	result.ConfidenceScore = rec.Confidence

	if rec.Confidence >= o.confidenceThreshold {
		return
	}

	// Ensemble second opinion: keep whichever result scores higher, with the
	// primary winning ties.
	result.EnsembleTriggered = true
	secondary := primary.Other()
	sec, secErr := o.engines[secondary].Recognize(ctx, imageRef)
	switch {
	case secErr != nil:
		log.Printf("ocr.Orchestrator: ensemble %s failed for %s: %v", secondary, imageRef, secErr)
		result.Metadata.EngineUsed = "ensemble_" + string(primary)
	case sec.Confidence > result.ConfidenceScore:
		result.Text = sec.Text
		result.ConfidenceScore = sec.Confidence
		result.Metadata.EngineUsed = "ensemble_" + string(secondary)
	default:
		result.Metadata.EngineUsed = "ensemble_" + string(primary)
	}
}

// fallback invokes the general engine as a last resort. Only reached when no
// usable text has been produced yet.
func (o *Orchestrator) fallback(ctx context.Context, imageRef string, result *domain.OrchestrationResult) {
	rec, err := o.engines[domain.EngineTesseract].Recognize(ctx, imageRef)
	if err != nil {
		log.Printf("ocr.Orchestrator: fallback %s failed for %s: %v", domain.EngineTesseract, imageRef, err)
		result.Error = fmt.Sprintf("%s; fallback: %v", result.Error, err)
		return
	}
	result.Text = rec.Text
	result.ConfidenceScore = rec.Confidence
	result.Metadata.EngineUsed = "fallback_" + string(domain.EngineTesseract)
}

// postProcess normalizes, extracts, and validates the chosen text.
func (o *Orchestrator) postProcess(result *domain.OrchestrationResult) {
	result.RawText = result.Text

	cleaned := textnorm.Clean(result.Text)
	fields := o.extractor.Extract(cleaned)
	verdict := o.validator.Validate(&fields)

	result.StructuredFields = &fields
	result.ValidationStatus = verdict.Status
	result.ValidationErrors = verdict.Errors
	result.CorrectionsApplied = append(result.CorrectionsApplied, verdict.Corrections...)
	result.ValidationReport = &verdict
	result.FinancialSummary = &domain.FinancialSummary{
		InvoiceID:     fields.InvoiceID,
		Date:          fields.InvoiceDate,
		Subtotal:      fields.Subtotal,
		TaxAmount:     fields.TaxAmount,
		TaxPercentage: fields.TaxPercentage,
		Discount:      fields.Discount,
		Total:         fields.Total,
	}
	// TODO: populate LineItems once row-level quantity/amount extraction lands.
}
