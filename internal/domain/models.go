package domain

// RoutingDecision records which OCR engine was chosen for a document and why.
// It is produced once per request and never mutated afterwards.
type RoutingDecision struct {
	Engine               EngineKind `json:"ocr_engine"`
	DocumentType         string     `json:"document_type"`
	ClassifierConfidence float64    `json:"confidence"`
	Reasoning            string     `json:"reasoning,omitempty"`
	Error                string     `json:"error,omitempty"`
}

// CorrectionRecord is an append-only log entry describing one heuristic
// correction applied during extraction or validation.
type CorrectionRecord struct {
	Field     string `json:"field,omitempty"`
	Original  string `json:"original"`
	Corrected string `json:"corrected"`
	Reason    string `json:"reason"`
}

// ExtractedFields holds the typed invoice fields pulled out of OCR text.
// Numeric fields are nil when the field could not be located or parsed;
// extraction never fails outright.
type ExtractedFields struct {
	InvoiceID      *string            `json:"invoice_id"`
	InvoiceDate    *string            `json:"invoice_date"`
	TaxPercentage  *float64           `json:"tax_percentage"`
	Subtotal       *float64           `json:"subtotal"`
	TaxAmount      *float64           `json:"tax_amount"`
	Discount       *float64           `json:"discount"`
	Total          *float64           `json:"total"`
	Corrections    []CorrectionRecord `json:"corrections"`
	NormalizedText string             `json:"normalized_text"`
}

// Verdict is the result of validating extracted fields.
type Verdict struct {
	Status      ValidationStatus   `json:"status"`
	Errors      []string           `json:"errors"`
	Corrections []CorrectionRecord `json:"corrections"`
}

// FinancialSummary is the flat projection of the extracted monetary fields
// returned to callers alongside the full extraction output.
type FinancialSummary struct {
	InvoiceID     *string  `json:"invoice_id"`
	Date          *string  `json:"date"`
	Subtotal      *float64 `json:"subtotal"`
	TaxAmount     *float64 `json:"tax_amount"`
	TaxPercentage *float64 `json:"tax_percentage"`
	Discount      *float64 `json:"discount"`
	Total         *float64 `json:"total"`
}

// LineItem is a single invoice line.
type LineItem struct {
	Description string   `json:"description"`
	Quantity    *float64 `json:"quantity"`
	Amount      *float64 `json:"amount"`
}

// ResultMetadata carries per-request diagnostics about engine selection.
type ResultMetadata struct {
	EngineUsed           string  `json:"engine_used"`
	ClassifierConfidence float64 `json:"classifier_confidence"`
	DocumentType         string  `json:"document_type"`
}

// OrchestrationResult is the externally visible aggregate for one processed
// document: routing, chosen text, extraction, and validation.
type OrchestrationResult struct {
	RoutingInfo        RoutingDecision    `json:"routing_info"`
	Text               string             `json:"text"`
	RawText            string             `json:"raw_text"`
	ConfidenceScore    float64            `json:"confidence_score"`
	EnsembleTriggered  bool               `json:"ensemble_triggered"`
	StructuredFields   *ExtractedFields   `json:"structured_fields"`
	ValidationStatus   ValidationStatus   `json:"validation_status"`
	ValidationErrors   []string           `json:"validation_errors"`
	CorrectionsApplied []CorrectionRecord `json:"corrections_applied"`
	Metadata           ResultMetadata     `json:"metadata"`
	FinancialSummary   *FinancialSummary  `json:"financial_summary,omitempty"`
	LineItems          []LineItem         `json:"line_items"`
	ValidationReport   *Verdict           `json:"validation_report,omitempty"`
	Error              string             `json:"error,omitempty"`
}
