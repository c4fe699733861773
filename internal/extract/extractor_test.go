package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docusight/internal/extract"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		nilOK bool
	}{
		{name: "european_thousands", input: "1.234,56", want: 1234.56},
		{name: "comma_decimal", input: "1234,56", want: 1234.56},
		{name: "dot_decimal", input: "1234.56", want: 1234.56},
		{name: "currency_prefix", input: "EUR 1.234,56", want: 1234.56},
		{name: "negative", input: "-50.00", want: -50},
		{name: "non_numeric", input: "abc", nilOK: true},
		{name: "empty", input: "", nilOK: true},
		{name: "separators_only", input: ",.", nilOK: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extract.ParseAmount(tt.input)
			if tt.nilOK {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, tt.want, *got, 1e-9)
		})
	}
}

func TestExtract_InvoiceIDCorrection(t *testing.T) {
	e := extract.NewExtractor()

	fields := e.Extract("Invoice ID: INVI2023-001\nTotal: 100.00")

	require.NotNil(t, fields.InvoiceID)
	assert.Equal(t, "INV/2023-001", *fields.InvoiceID)
	require.Len(t, fields.Corrections, 1)
	assert.Equal(t, "INVI2023-001", fields.Corrections[0].Original)
	assert.Equal(t, "INV/2023-001", fields.Corrections[0].Corrected)
	assert.Equal(t, "Corrected INVI to INV/", fields.Corrections[0].Reason)
}

func TestExtract_InvoiceIDClean(t *testing.T) {
	e := extract.NewExtractor()

	fields := e.Extract("Invoice ID: INV/2023-001")

	require.NotNil(t, fields.InvoiceID)
	assert.Equal(t, "INV/2023-001", *fields.InvoiceID)
	assert.Empty(t, fields.Corrections)
}

func TestExtract_DateFormats(t *testing.T) {
	e := extract.NewExtractor()

	t.Run("slash_format_wins", func(t *testing.T) {
		// DD/MM/YYYY is tried before ISO, so it wins even when both appear.
		fields := e.Extract("Issued 2023-10-01 paid 15/10/2023")
		require.NotNil(t, fields.InvoiceDate)
		assert.Equal(t, "15/10/2023", *fields.InvoiceDate)
	})

	t.Run("iso_format", func(t *testing.T) {
		fields := e.Extract("Date: 2023-10-01")
		require.NotNil(t, fields.InvoiceDate)
		assert.Equal(t, "2023-10-01", *fields.InvoiceDate)
	})

	t.Run("dash_format", func(t *testing.T) {
		fields := e.Extract("Date: 01-10-2023")
		require.NotNil(t, fields.InvoiceDate)
		assert.Equal(t, "01-10-2023", *fields.InvoiceDate)
	})

	t.Run("no_date", func(t *testing.T) {
		fields := e.Extract("no dates here")
		assert.Nil(t, fields.InvoiceDate)
	})
}

func TestExtract_TaxPercentage(t *testing.T) {
	e := extract.NewExtractor()

	t.Run("parenthesized", func(t *testing.T) {
		fields := e.Extract("Tax (10%): 10.00")
		require.NotNil(t, fields.TaxPercentage)
		assert.InDelta(t, 10.0, *fields.TaxPercentage, 1e-9)
	})

	t.Run("bare_percent", func(t *testing.T) {
		fields := e.Extract("tax 7.5% applied")
		require.NotNil(t, fields.TaxPercentage)
		assert.InDelta(t, 7.5, *fields.TaxPercentage, 1e-9)
	})

	t.Run("unparsable_is_nil", func(t *testing.T) {
		fields := e.Extract("Tax (1.2.3%): 10.00")
		assert.Nil(t, fields.TaxPercentage)
	})
}

func TestExtract_Amounts(t *testing.T) {
	e := extract.NewExtractor()

	fields := e.Extract("Sub Total: 100.00\nTax (10%): 10.00\nTotal: 110.00")

	require.NotNil(t, fields.Subtotal)
	assert.InDelta(t, 100.0, *fields.Subtotal, 1e-9)
	require.NotNil(t, fields.TaxAmount)
	assert.InDelta(t, 10.0, *fields.TaxAmount, 1e-9)
	require.NotNil(t, fields.TaxPercentage)
	assert.InDelta(t, 10.0, *fields.TaxPercentage, 1e-9)
	require.NotNil(t, fields.Total)
	assert.InDelta(t, 110.0, *fields.Total, 1e-9)
	assert.Nil(t, fields.Discount)
}

func TestExtract_TotalNotConfusedWithSubtotal(t *testing.T) {
	e := extract.NewExtractor()

	// The total label appears only inside "Sub Total"; no standalone total.
	fields := e.Extract("Sub Total: 100.00")

	require.NotNil(t, fields.Subtotal)
	assert.InDelta(t, 100.0, *fields.Subtotal, 1e-9)
	assert.Nil(t, fields.Total)
}

func TestExtract_TotalWithCurrencyCode(t *testing.T) {
	e := extract.NewExtractor()

	fields := e.Extract("Total (USD): 1.234,56")

	require.NotNil(t, fields.Total)
	assert.InDelta(t, 1234.56, *fields.Total, 1e-9)
}

func TestExtract_Discount(t *testing.T) {
	e := extract.NewExtractor()

	fields := e.Extract("Subtotal: 100.00\nDiscount (10%): -10.00\nTotal: 90.00")

	require.NotNil(t, fields.Discount)
	assert.InDelta(t, -10.0, *fields.Discount, 1e-9)
}

func TestExtract_QuantityNormalization(t *testing.T) {
	e := extract.NewExtractor()

	fields := e.Extract("Widget X2 and gadget X1.5")

	assert.Equal(t, "Widget x2 and gadget x1.5", fields.NormalizedText)
	require.Len(t, fields.Corrections, 2)
	assert.Equal(t, "X2", fields.Corrections[0].Original)
	assert.Equal(t, "x2", fields.Corrections[0].Corrected)
	assert.Equal(t, "Normalized quantity case", fields.Corrections[0].Reason)
	assert.Equal(t, "X1.5", fields.Corrections[1].Original)
}

func TestExtract_CorrectionOrder(t *testing.T) {
	e := extract.NewExtractor()

	// The invoice-ID correction is discovered before quantity corrections.
	fields := e.Extract("Invoice ID: INVI2023-001\nWidget X2")

	require.Len(t, fields.Corrections, 2)
	assert.Equal(t, "Corrected INVI to INV/", fields.Corrections[0].Reason)
	assert.Equal(t, "Normalized quantity case", fields.Corrections[1].Reason)
}

func TestExtract_LowercaseQuantityUntouched(t *testing.T) {
	e := extract.NewExtractor()

	fields := e.Extract("Widget x2")

	assert.Equal(t, "Widget x2", fields.NormalizedText)
	assert.Empty(t, fields.Corrections)
}

func TestExtract_NothingFound(t *testing.T) {
	e := extract.NewExtractor()

	fields := e.Extract("completely unrelated text")

	assert.Nil(t, fields.InvoiceID)
	assert.Nil(t, fields.InvoiceDate)
	assert.Nil(t, fields.TaxPercentage)
	assert.Nil(t, fields.Subtotal)
	assert.Nil(t, fields.TaxAmount)
	assert.Nil(t, fields.Discount)
	assert.Nil(t, fields.Total)
	assert.Empty(t, fields.Corrections)
	assert.Equal(t, "completely unrelated text", fields.NormalizedText)
}
