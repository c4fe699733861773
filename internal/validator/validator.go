// Package validator cross-checks extracted invoice fields for arithmetic
// consistency and reconciles discrepancies where a related field explains
// them.
package validator

import (
	"fmt"
	"math"
	"strconv"

	"docusight/internal/domain"
)

// DefaultTolerance is the absolute tolerance for the accounting identity.
const DefaultTolerance = 0.05

// FieldValidator checks subtotal + tax + discount against the total.
// Discounts are expected to already carry their sign (typically negative),
// so the identity is purely additive.
type FieldValidator struct {
	tolerance float64
}

// New creates a FieldValidator with the given absolute tolerance.
// Non-positive values fall back to DefaultTolerance.
func New(tolerance float64) *FieldValidator {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &FieldValidator{tolerance: tolerance}
}

func (v *FieldValidator) approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= v.tolerance
}

func fmtOpt(f *float64) string {
	if f == nil {
		return "none"
	}
	return strconv.FormatFloat(*f, 'g', -1, 64)
}

// Validate checks the extracted fields and returns a verdict. When the
// accounting identity fails and the tax amount is missing but a tax
// percentage is present, the tax amount is inferred from the percentage;
// a successful inference mutates fields.TaxAmount and is logged as a
// correction instead of an error. Validate is total and never fails.
func (v *FieldValidator) Validate(fields *domain.ExtractedFields) domain.Verdict {
	verdict := domain.Verdict{
		Status:      domain.ValidationStatusValid,
		Errors:      []string{},
		Corrections: []domain.CorrectionRecord{},
	}

	subtotal := fields.Subtotal
	taxAmount := fields.TaxAmount
	total := fields.Total
	taxPercent := fields.TaxPercentage
	discount := 0.0
	if fields.Discount != nil {
		discount = *fields.Discount
	}

	// 1. Basic existence checks
	if total == nil {
		verdict.Errors = append(verdict.Errors, "Missing total amount")
	}
	if subtotal == nil {
		verdict.Errors = append(verdict.Errors, "Missing subtotal amount")
	}

	// 2. Accounting identity: subtotal + tax + discount == total
	if subtotal != nil && total != nil {
		tax := 0.0
		if taxAmount != nil {
			tax = *taxAmount
		}
		expected := *subtotal + tax + discount

		if !v.approxEqual(expected, *total) {
			reconciled := false
			if taxPercent != nil && taxAmount == nil {
				estimated := math.Round(*subtotal*(*taxPercent/100.0)*100) / 100
				if v.approxEqual(*subtotal+estimated+discount, *total) {
					verdict.Corrections = append(verdict.Corrections, domain.CorrectionRecord{
						Field:     "tax_amount",
						Original:  "none",
						Corrected: strconv.FormatFloat(estimated, 'g', -1, 64),
						Reason:    fmt.Sprintf("Inferred from tax_percent (%g%%)", *taxPercent),
					})
					fields.TaxAmount = &estimated
					reconciled = true
				}
			}
			if !reconciled {
				verdict.Errors = append(verdict.Errors, fmt.Sprintf(
					"Math inconsistency: subtotal(%s) + tax(%s) + discount(%g) != total(%s)",
					fmtOpt(subtotal), fmtOpt(taxAmount), discount, fmtOpt(total),
				))
			}
		}
	}

	// 3. Percentage bounds
	if taxPercent != nil && (*taxPercent < 0 || *taxPercent > 100) {
		verdict.Errors = append(verdict.Errors, fmt.Sprintf("Invalid tax percentage: %g", *taxPercent))
	}

	switch {
	case len(verdict.Errors) > 0:
		verdict.Status = domain.ValidationStatusInvalid
	case len(verdict.Corrections) > 0:
		verdict.Status = domain.ValidationStatusCorrected
	}
	return verdict
}
