package export_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"payadvice/internal/domain"
	"payadvice/internal/export"
)

func sampleAdvice() *domain.PaymentAdvice {
	advice := domain.NewPaymentAdvice("HindustanZincParser", domain.ParserTypePDF, "Hindustan Zinc PDF")
	advice.CustomerName = "Hindustan Zinc India Ltd"
	advice.PaymentDocumentNo = "2070401637"
	advice.PaymentAmount = 900.0
	advice.InvoiceTable = []domain.InvoiceRow{
		{InvoiceNumber: "VRJ2526-0935", InvoiceDate: "2025-11-07", Amount: 450.0},
		{InvoiceNumber: "VRJ2526-0936", InvoiceDate: "2025-11-08", Amount: 450.0},
	}
	return advice
}

func TestWriteAdviceXLSX(t *testing.T) {
	data, err := export.WriteAdviceXLSX(sampleAdvice())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Payment Advice", "Invoices"}, f.GetSheetList())

	v, err := f.GetCellValue("Payment Advice", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Hindustan Zinc India Ltd", v)

	v, err = f.GetCellValue("Invoices", "A2")
	require.NoError(t, err)
	assert.Equal(t, "VRJ2526-0935", v)

	v, err = f.GetCellValue("Invoices", "A3")
	require.NoError(t, err)
	assert.Equal(t, "VRJ2526-0936", v)
}

func TestWriteAdviceXLSX_NoInvoices(t *testing.T) {
	advice := domain.NewPaymentAdvice("GenericParser", domain.ParserTypePDF, "Generic PDF")

	data, err := export.WriteAdviceXLSX(advice)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	// Header row only on the invoice sheet.
	rows, err := f.GetRows("Invoices")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestSuggestedFileName(t *testing.T) {
	advice := sampleAdvice()
	assert.Equal(t, "payment-advice-2070401637.xlsx", export.SuggestedFileName(advice))

	advice.PaymentDocumentNo = ""
	name := export.SuggestedFileName(advice)
	assert.Regexp(t, `^payment-advice-[0-9a-f-]{36}\.xlsx$`, name)
	assert.NotEqual(t, export.SuggestedFileName(advice), name)
}
