// Package export renders parsed payment advices as XLSX workbooks, the
// standalone equivalent of pushing rows into an accounting system.
package export

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"payadvice/internal/domain"
)

const (
	adviceSheet  = "Payment Advice"
	invoiceSheet = "Invoices"
)

// WriteAdviceXLSX returns an XLSX workbook with one sheet of advice header
// fields and one sheet of invoice rows.
func WriteAdviceXLSX(advice *domain.PaymentAdvice) ([]byte, error) {
	f := excelize.NewFile()

	idx, err := f.NewSheet(adviceSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)

	headerRows := [][]interface{}{
		{"Field", "Value"},
		{"Customer", advice.CustomerName},
		{"Payment Document No", advice.PaymentDocumentNo},
		{"Bank Reference No", advice.BankReferenceNo},
		{"UTR/RRN No", advice.UTRRRNNo},
		{"Payment Date", advice.PaymentDate},
		{"Payment Amount", advice.PaymentAmount},
		{"Gross Payment Amount", advice.GrossPaymentAmt},
		{"Adjustment Amount", advice.AdjustmentAmount},
		{"Beneficiary Name", advice.BeneficiaryName},
		{"Beneficiary Account No", advice.BeneficiaryAcctNo},
		{"Bank Name", advice.BankName},
		{"Payer Name", advice.PayerName},
		{"Payer City", advice.PayerCity},
		{"Payment Method", advice.PaymentMethod},
		{"Currency", advice.Currency},
		{"Remarks", advice.Remarks},
		{"Parser Used", advice.ParserUsed},
		{"Parse Version", advice.ParseVersion},
		{"Source Format", advice.SourceFormat},
	}
	for i, row := range headerRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(adviceSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write advice row %d: %w", i+1, err)
		}
	}

	if _, err := f.NewSheet(invoiceSheet); err != nil {
		return nil, err
	}
	invoiceHeader := []interface{}{
		"Invoice Number", "Invoice Date", "Gross Amount", "Net Amount",
		"TDS Amount", "Adjustment Amount", "Other Deductions / Security-Retention",
		"Amount", "Currency", "Fiscal Year", "Company Code",
	}
	if err := f.SetSheetRow(invoiceSheet, "A1", &invoiceHeader); err != nil {
		return nil, err
	}
	for i, row := range advice.InvoiceTable {
		cells := []interface{}{
			row.InvoiceNumber, row.InvoiceDate, row.GrossAmount, row.NetAmount,
			row.TDSAmount, row.AdjustmentAmount, row.OtherDeductions,
			row.Amount, row.Currency, row.FiscalYear, row.CompanyCode,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(invoiceSheet, cell, &cells); err != nil {
			return nil, fmt.Errorf("write invoice row %d: %w", i+1, err)
		}
	}

	// Drop excelize's default sheet so the workbook opens on advice data.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SuggestedFileName returns a unique workbook name for an advice, keyed on
// the payment document number when present.
func SuggestedFileName(advice *domain.PaymentAdvice) string {
	if advice.PaymentDocumentNo != "" {
		return fmt.Sprintf("payment-advice-%s.xlsx", advice.PaymentDocumentNo)
	}
	return fmt.Sprintf("payment-advice-%s.xlsx", uuid.New().String())
}
