package domain

// PaymentAdvice is the standardized output of every parser. All fields are
// always present in serialized form so downstream consumers can treat any
// parser's output uniformly; unknown values are zero values, never omitted.
type PaymentAdvice struct {
	CustomerName      string  `json:"customer_name"`
	PaymentDocumentNo string  `json:"payment_document_no"`
	BankReferenceNo   string  `json:"bank_reference_no"`
	UTRRRNNo          string  `json:"utr_rrn_no"`
	PaymentAmount     float64 `json:"payment_amount"`
	GrossPaymentAmt   float64 `json:"gross_payment_amount"`
	AdjustmentAmount  float64 `json:"adjustment_amount"`
	PaymentDate       string  `json:"payment_date"` // YYYY-MM-DD, empty when unknown
	BeneficiaryName   string  `json:"beneficiary_name"`
	BeneficiaryAcctNo string  `json:"beneficiary_account_no"`
	BankName          string  `json:"bank_name"`
	PayerName         string  `json:"payer_name"`
	PayerCity         string  `json:"payer_city"`
	PaymentMethod     string  `json:"payment_method"`
	Currency          string  `json:"currency"`
	Remarks           string  `json:"remarks"`

	ParserUsed   string     `json:"parser_used"`
	ParseVersion string     `json:"parse_version"`
	ParserType   ParserType `json:"parser_type"`
	SourceFormat string     `json:"source_format"`
	RawText      string     `json:"raw_text,omitempty"`
	RawXML       string     `json:"raw_xml,omitempty"`

	// cXML root metadata, empty for text-sourced advices.
	PayloadID     string `json:"payload_id,omitempty"`
	CXMLTimestamp string `json:"cxml_timestamp,omitempty"`
	AttachedPDF   string `json:"attached_pdf_reference,omitempty"`

	InvoiceTable []InvoiceRow `json:"invoice_table_data"`
}

// InvoiceRow is one settled invoice line within a payment advice.
// InvoiceNumber is the identifying key; rows without one are dropped
// before an advice is returned.
type InvoiceRow struct {
	InvoiceNumber string `json:"invoice_number"`
	InvoiceDate   string `json:"invoice_date"` // YYYY-MM-DD, empty when unknown

	GrossAmount      float64 `json:"invoice_gross_amount"`
	NetAmount        float64 `json:"invoice_net_amount"`
	TDSAmount        float64 `json:"invoice_tds_amount"`
	AdjustmentAmount float64 `json:"invoice_adjustment_amount"`
	OtherDeductions  float64 `json:"other_deductions_security_retention"`

	// Legacy aliases carried for consumers of the old field names.
	TDSWCT      float64 `json:"tds_wct"`
	LegacyGross float64 `json:"gross_amount"`
	LegacyTDS   float64 `json:"tds_amount"`

	// Amount is the per-invoice payable the collaborator persists. Parsers
	// may leave an intermediate value here; AssembleRows computes the
	// authoritative one.
	Amount float64 `json:"amount"`

	Currency    string `json:"currency,omitempty"`
	FiscalYear  string `json:"fiscal_year,omitempty"`
	CompanyCode string `json:"company_code,omitempty"`
}

// NewPaymentAdvice returns an advice with the invariant defaults applied:
// currency INR, a non-nil invoice table, and the given parser identity.
func NewPaymentAdvice(parserUsed string, parserType ParserType, sourceFormat string) *PaymentAdvice {
	return &PaymentAdvice{
		Currency:     DefaultCurrency,
		ParserUsed:   parserUsed,
		ParseVersion: ParseVersion,
		ParserType:   parserType,
		SourceFormat: sourceFormat,
		InvoiceTable: []InvoiceRow{},
	}
}

// DropEmptyRows removes invoice rows with no parsable invoice number. It
// also normalizes a nil table to an empty one so the field always
// serializes as an array.
func (a *PaymentAdvice) DropEmptyRows() {
	if a.InvoiceTable == nil {
		a.InvoiceTable = []InvoiceRow{}
		return
	}
	kept := a.InvoiceTable[:0]
	for _, row := range a.InvoiceTable {
		if row.InvoiceNumber != "" {
			kept = append(kept, row)
		}
	}
	a.InvoiceTable = kept
}
