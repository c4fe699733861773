package extract

import "regexp"

// Each field has an ordered list of alternatives; the first pattern that
// matches wins. When a pattern has a capture group the group is taken,
// otherwise the whole match.

// amountPattern supports negative amounts (discounts) and comma/dot decimals.
const amountPattern = `-?\d{1,3}(?:[.,]\d{3})*[.,]\d{2}`

// Invoice IDs, including the raw INV/ prefix form with common OCR confusions
// (INVI read for INV/).
var invoiceIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)invoice\s*id[:\s]*([A-Z0-9/-]+)`),
	regexp.MustCompile(`(?i)invoice\s*#[:\s]*([A-Z0-9/-]+)`),
	regexp.MustCompile(`(?i)inv[i/]?\d+-\d+`),
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{2}/\d{2}/\d{4})`),
	regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`),
	regexp.MustCompile(`(\d{2}-\d{2}-\d{4})`),
}

var taxPercentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)tax\s*\(([\d.]+)%\)`),
	regexp.MustCompile(`(?i)tax\s*([\d.]+)%`),
	// Catch missing %
	regexp.MustCompile(`(?i)tax\s*\(([\d.]+)\)`),
}

var subtotalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)sub\s*total[:\s]*(` + amountPattern + `)`),
	regexp.MustCompile(`(?i)subtotal[:\s]*(` + amountPattern + `)`),
}

var totalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)total\s*\(?[A-Z]{3}\)?[:\s]*(` + amountPattern + `)`),
	regexp.MustCompile(`(?i)total[:\s]*(` + amountPattern + `)`),
}

// totalExcludedPrefix rejects total matches that are really the tail of a
// subtotal label ("Sub Total: ...").
var totalExcludedPrefix = regexp.MustCompile(`(?i)sub[\s-]*$`)

var taxAmountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)tax\s*\([\d.]+%?\)[:\s]*(` + amountPattern + `)`),
	regexp.MustCompile(`(?i)tax[:\s]*(` + amountPattern + `)`),
}

var discountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)discount\s*\([\d.]+%?\)[:\s]*(` + amountPattern + `)`),
	regexp.MustCompile(`(?i)discount[:\s]*(` + amountPattern + `)`),
}

// quantityPattern finds quantity markers like "X2" or "x1.5" for case
// normalization.
var quantityPattern = regexp.MustCompile(`(?i)x\s*\d+(?:\.\d+)?`)
