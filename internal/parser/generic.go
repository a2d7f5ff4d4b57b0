package parser

import (
	"context"
	"regexp"

	"payadvice/internal/domain"
	"payadvice/internal/normalize"
	"payadvice/internal/port"
)

// GenericParser is the fallback extractor for payment advice layouts with no
// registered customer parser. It applies loose, customer-agnostic patterns
// and returns a best-effort advice; missing fields keep their defaults and
// never produce an error.
type GenericParser struct {
	customerName string
}

// NewGenericParser creates a GenericParser labelled with the given customer
// name ("Unknown" when empty).
func NewGenericParser(customerName string) *GenericParser {
	if customerName == "" {
		customerName = "Unknown"
	}
	return &GenericParser{customerName: customerName}
}

var (
	genericDocNoPatterns = []fieldPattern{
		{re: regexp.MustCompile(`(?i)(?:Document|Ref|Reference|Advice)\s+No[\.:]?\s*([A-Z0-9\-]+)`)},
		{re: regexp.MustCompile(`(?i)No[\.:]?\s*([A-Z0-9]{8,})`)},
	}
	genericDatePatterns = []fieldPattern{
		{re: regexp.MustCompile(`(?i)(?:Date|Payment\s+Date)[\.:]?\s*(\d{1,2}[\./\-]\d{1,2}[\./\-]\d{2,4})`)},
	}
	genericRefPatterns = []fieldPattern{
		{re: regexp.MustCompile(`(?i)(?:Ref|Reference)\s+No[\.:]?\s*([A-Z0-9\-]+)`)},
	}
	genericUTRPatterns = []fieldPattern{
		{re: regexp.MustCompile(`(?i)UTR[\.:]?\s*([A-Z0-9\-]+)`)},
		{re: regexp.MustCompile(`(?i)RRN[\.:]?\s*([A-Z0-9\-]+)`)},
	}
	genericInvoicePatterns = []fieldPattern{
		{re: regexp.MustCompile(`(?i)Invoice\s+No[\.:]?\s*([A-Z0-9\-/]+)`)},
	}
	genericAmountPatterns = []fieldPattern{
		{re: regexp.MustCompile(`[₹$€£]\s*([\d,]+\.?\d*)`)},
		{re: regexp.MustCompile(`(?i)Amount[\.:]?\s*[₹$€£]?\s*([\d,]+\.?\d*)`)},
	}
	genericBeneficiaryPatterns = []fieldPattern{
		{re: regexp.MustCompile(`(?i)Beneficiary[\.:]?\s*([^\n]+)`)},
		{re: regexp.MustCompile(`(?i)Payee[\.:]?\s*([^\n]+)`)},
	}
	genericAccountPatterns = []fieldPattern{
		{re: regexp.MustCompile(`(?i)Account\s+No[\.:]?\s*([A-Z0-9\-]+)`)},
		{re: regexp.MustCompile(`(?i)A/c\s+No[\.:]?\s*([A-Z0-9\-]+)`)},
	}
)

// Parse extracts whatever generic fields are present in the raw text. The
// payment amount is the maximum currency-prefixed number found, which in
// advice layouts is reliably the total rather than a line amount.
func (p *GenericParser) Parse(_ context.Context, input port.ParseInput) (*domain.PaymentAdvice, error) {
	text := input.RawPayload

	advice := domain.NewPaymentAdvice("GenericParser", domain.ParserTypePDF, "Generic PDF")
	advice.CustomerName = p.customerName
	advice.RawText = text
	advice.Currency = detectCurrency(text)

	advice.PaymentDocumentNo, _ = firstMatch(text, genericDocNoPatterns)
	advice.BankReferenceNo, _ = firstMatch(text, genericRefPatterns)
	advice.UTRRRNNo, _ = firstMatch(text, genericUTRPatterns)
	advice.BeneficiaryName, _ = firstMatch(text, genericBeneficiaryPatterns)
	advice.BeneficiaryAcctNo, _ = firstMatch(text, genericAccountPatterns)

	if raw, ok := firstMatch(text, genericDatePatterns); ok {
		advice.PaymentDate = normalize.DateString(raw)
	}

	advice.PaymentAmount = maxAmount(text, genericAmountPatterns)

	for _, inv := range allMatches(text, genericInvoicePatterns) {
		advice.InvoiceTable = append(advice.InvoiceTable, domain.InvoiceRow{InvoiceNumber: inv})
	}
	advice.DropEmptyRows()

	return advice, nil
}

// maxAmount normalizes every amount the patterns capture and returns the
// largest, or 0.0 when none parse.
func maxAmount(text string, patterns []fieldPattern) float64 {
	var best float64
	for _, p := range patterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			if v := normalize.Amount(m[1]); v > best {
				best = v
			}
		}
	}
	return best
}
