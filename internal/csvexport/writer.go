// Package csvexport renders batches of processed documents as CSV for
// spreadsheet review.
package csvexport

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"docusight/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row (16 columns).
var columns = []string{
	"Image",
	"Engine Used",
	"Document Type",
	"Classifier Confidence",
	"Confidence Score",
	"Ensemble Triggered",
	"Validation Status",
	"Invoice ID",
	"Invoice Date",
	"Subtotal",
	"Tax Amount",
	"Tax Percentage",
	"Discount",
	"Total",
	"Validation Errors",
	"Corrections Applied",
}

// Writer wraps csv.Writer for exporting orchestration results as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteResult converts one processed document to a CSV row and writes it.
func (w *Writer) WriteResult(imageRef string, res *domain.OrchestrationResult) error {
	return w.csv.Write(resultToRow(imageRef, res))
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// resultToRow converts a single result to a row. Documents without extracted
// fields fill only the metadata columns.
func resultToRow(imageRef string, res *domain.OrchestrationResult) []string {
	row := make([]string, len(columns))

	row[0] = imageRef
	row[1] = res.Metadata.EngineUsed
	row[2] = res.Metadata.DocumentType
	row[3] = formatFloat(res.Metadata.ClassifierConfidence)
	row[4] = formatFloat(res.ConfidenceScore)
	row[5] = strconv.FormatBool(res.EnsembleTriggered)
	row[6] = string(res.ValidationStatus)
	row[14] = strings.Join(res.ValidationErrors, "; ")
	row[15] = strconv.Itoa(len(res.CorrectionsApplied))

	fs := res.FinancialSummary
	if fs == nil {
		return row
	}

	row[7] = derefString(fs.InvoiceID)
	row[8] = derefString(fs.Date)
	row[9] = formatOptFloat(fs.Subtotal)
	row[10] = formatOptFloat(fs.TaxAmount)
	row[11] = formatOptFloat(fs.TaxPercentage)
	row[12] = formatOptFloat(fs.Discount)
	row[13] = formatOptFloat(fs.Total)

	return row
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func formatOptFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return formatFloat(*f)
}
