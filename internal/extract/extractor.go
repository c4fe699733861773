// Package extract pulls structured invoice fields out of noisy OCR text
// using ordered pattern alternatives with OCR-specific heuristic corrections.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"docusight/internal/domain"
)

// Extractor applies the static field pattern tables to raw text.
// It is stateless and safe for concurrent use.
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

var nonAmountRe = regexp.MustCompile(`[^\d.,-]`)

// ParseAmount parses a monetary string into a float, handling both European
// ("1.234,56") and plain ("1234.56") separator conventions. Returns nil when
// the text does not parse; it never fails.
func ParseAmount(text string) *float64 {
	if text == "" {
		return nil
	}
	clean := nonAmountRe.ReplaceAllString(text, "")
	switch {
	case strings.Contains(clean, ",") && strings.Contains(clean, "."):
		// 1.234,56 format: dot is the thousands separator
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	case strings.Contains(clean, ","):
		// 1234,56 format
		clean = strings.ReplaceAll(clean, ",", ".")
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return nil
	}
	return &v
}

// extractFirst tries patterns in order and returns the first match. A pattern
// with a capture group yields the group, otherwise the whole match.
func extractFirst(patterns []*regexp.Regexp, text string) (string, bool) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if re.NumSubexp() > 0 {
			return m[1], true
		}
		return m[0], true
	}
	return "", false
}

// extractTotal is extractFirst with subtotal-tail rejection: a "Total:" match
// that directly follows a "Sub" label belongs to the subtotal, not the total.
func extractTotal(text string) (string, bool) {
	for _, re := range totalPatterns {
		for _, idx := range re.FindAllStringSubmatchIndex(text, -1) {
			if totalExcludedPrefix.MatchString(text[:idx[0]]) {
				continue
			}
			return text[idx[2]:idx[3]], true
		}
	}
	return "", false
}

// Extract locates and parses the semantic fields of an invoice-style
// document. It never fails: fields that cannot be located or parsed are nil,
// and heuristic corrections are logged in discovery order.
func (e *Extractor) Extract(text string) domain.ExtractedFields {
	fields := domain.ExtractedFields{
		Corrections:    []domain.CorrectionRecord{},
		NormalizedText: text,
	}

	// 1. Invoice ID, with the INVI -> INV/ OCR confusion repaired
	if rawID, ok := extractFirst(invoiceIDPatterns, text); ok {
		id := rawID
		if strings.Contains(rawID, "INVI") {
			id = strings.ReplaceAll(rawID, "INVI", "INV/")
			fields.Corrections = append(fields.Corrections, domain.CorrectionRecord{
				Original:  rawID,
				Corrected: id,
				Reason:    "Corrected INVI to INV/",
			})
		}
		fields.InvoiceID = &id
	}

	// 2. Date, returned verbatim in whichever format matched first
	if date, ok := extractFirst(datePatterns, text); ok {
		fields.InvoiceDate = &date
	}

	// 3. Tax percentage
	if raw, ok := extractFirst(taxPercentPatterns, text); ok {
		if pct, err := strconv.ParseFloat(raw, 64); err == nil {
			fields.TaxPercentage = &pct
		}
	}

	// 4. Monetary amounts
	if raw, ok := extractFirst(subtotalPatterns, text); ok {
		fields.Subtotal = ParseAmount(raw)
	}
	if raw, ok := extractTotal(text); ok {
		fields.Total = ParseAmount(raw)
	}
	if raw, ok := extractFirst(taxAmountPatterns, text); ok {
		fields.TaxAmount = ParseAmount(raw)
	}
	if raw, ok := extractFirst(discountPatterns, text); ok {
		fields.Discount = ParseAmount(raw)
	}

	// 5. Quantity case normalization ("X2" -> "x2"), left to right
	normalized := text
	for _, original := range quantityPattern.FindAllString(text, -1) {
		corrected := strings.ToLower(original)
		if original == corrected {
			continue
		}
		normalized = strings.ReplaceAll(normalized, original, corrected)
		fields.Corrections = append(fields.Corrections, domain.CorrectionRecord{
			Original:  original,
			Corrected: corrected,
			Reason:    "Normalized quantity case",
		})
	}
	fields.NormalizedText = normalized

	return fields
}
