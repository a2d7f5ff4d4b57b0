package parser

import (
	"context"
	"log"
	"regexp"
	"strings"

	"payadvice/internal/domain"
	"payadvice/internal/normalize"
	"payadvice/internal/port"
)

// HindustanZincParser extracts payment advices in the Hindustan Zinc India
// Ltd layout. The layout uses both inline ("Label: value") and multiline
// ("Label :\n value") label conventions, and carries an 8-column invoice
// table where each invoice spans exactly two physical lines.
type HindustanZincParser struct {
	customerName string
}

// NewHindustanZincParser creates a parser labelled with the given customer.
func NewHindustanZincParser(customerName string) *HindustanZincParser {
	return &HindustanZincParser{customerName: customerName}
}

var (
	hzlDocNoPatterns = []fieldPattern{
		// multiline: "Payment Doc No : \n 2070401637"
		{re: regexp.MustCompile(`(?im)Payment\s+Doc\s+No[\.:]?\s*:?\s*\n\s*([A-Z0-9\-]+)`), validate: lengthBetween(6, 20)},
		{re: regexp.MustCompile(`(?i)Payment\s+Document\s+No[\.:]?\s*:?\s*([A-Z0-9\-]+)`), validate: lengthBetween(6, 20)},
		{re: regexp.MustCompile(`(?i)Payment\s+Advice\s+No[\.:]?\s*:?\s*([A-Z0-9\-]+)`), validate: lengthBetween(6, 20)},
		{re: regexp.MustCompile(`(?i)Advice\s+No[\.:]?\s*:?\s*([A-Z0-9\-]+)`), validate: lengthBetween(6, 20)},
		{re: regexp.MustCompile(`(?i)Document\s+No[\.:]?\s*:?\s*([A-Z0-9\-]+)`), validate: lengthBetween(6, 20)},
	}

	hzlPaymentDatePatterns = []fieldPattern{
		{re: regexp.MustCompile(`(?i)Payment\s+Date[\.:]?\s*(\d{1,2}[\./\-]\d{1,2}[\./\-]\d{2,4})`)},
		{re: regexp.MustCompile(`(?i)Date\s+of\s+Payment[\.:]?\s*(\d{1,2}[\./\-]\d{1,2}[\./\-]\d{2,4})`)},
		{re: regexp.MustCompile(`(?i)Date[\.:]?\s*(\d{1,2}[\./\-]\d{1,2}[\./\-]\d{2,4})`)},
	}

	hzlBankRefPatterns = []fieldPattern{
		{re: regexp.MustCompile(`(?i)Bank\s+Ref\s+No\s*[\.:]?\s*([A-Z0-9\-]+)`), validate: lengthBetween(6, 20)},
		{re: regexp.MustCompile(`(?i)Bank\s+Reference\s+No[\.:]?\s*([A-Z0-9\-]+)`), validate: lengthBetween(6, 20)},
		{re: regexp.MustCompile(`(?i)Reference\s+No[\.:]?\s*([A-Z0-9\-]+)`), validate: lengthBetween(6, 20)},
		{re: regexp.MustCompile(`(?i)Ref\s+No[\.:]?\s*([A-Z0-9\-]+)`), validate: lengthBetween(6, 20)},
	}

	hzlUTRPatterns = []fieldPattern{
		// "vide UTR/RRN no HDFCR52025120390803069" is the most specific form
		{re: regexp.MustCompile(`(?i)vide\s+UTR\s*/\s*RRN\s+no\s+([A-Z0-9]{10,30})`), validate: validUTR},
		{re: regexp.MustCompile(`(?i)UTR\s*/\s*RRN\s+no[\.:]?\s+([A-Z0-9]{10,30})`), validate: validUTR},
		{re: regexp.MustCompile(`(?i)UTR\s+No[\.:]?\s+([A-Z0-9]{10,30})`), validate: validUTR},
		{re: regexp.MustCompile(`(?i)RRN\s+No[\.:]?\s+([A-Z0-9]{10,30})`), validate: validUTR},
		{re: regexp.MustCompile(`(?i)UTR[/:]?\s+([A-Z0-9]{10,30})`), validate: validUTR},
		{re: regexp.MustCompile(`(?i)RRN[/:]?\s+([A-Z0-9]{10,30})`), validate: validUTR},
		{re: regexp.MustCompile(`(?im)UTR[/:]?\s*\n\s*([A-Z0-9]{10,30})`), validate: validUTR},
		{re: regexp.MustCompile(`(?im)RRN[/:]?\s*\n\s*([A-Z0-9]{10,30})`), validate: validUTR},
	}

	hzlBeneficiaryPatterns = []fieldPattern{
		{re: regexp.MustCompile(`(?im)Beneficiary\s+Name[\.:]?\s*:?\s*\n\s*([^\n]+)`), validate: lengthBetween(3, 200)},
		{re: regexp.MustCompile(`(?i)Beneficiary\s+Name[\.:]?\s*:?\s*([^\n]+)`), validate: lengthBetween(3, 200)},
		{re: regexp.MustCompile(`(?i)Beneficiary[\.:]?\s*:?\s*([^\n]+)`), validate: lengthBetween(3, 200)},
		{re: regexp.MustCompile(`(?i)Payee\s+Name[\.:]?\s*:?\s*([^\n]+)`), validate: lengthBetween(3, 200)},
	}

	hzlAccountPatterns = []fieldPattern{
		{re: regexp.MustCompile(`(?im)Beneficiary\s+Account\s+No[\.:]?\s*:?\s*\n\s*([A-Z0-9\-]+)`), validate: lengthBetween(9, 20)},
		{re: regexp.MustCompile(`(?i)Beneficiary\s+Account\s+No[\.:]?\s*:?\s*([A-Z0-9\-]+)`), validate: lengthBetween(9, 20)},
		{re: regexp.MustCompile(`(?i)Account\s+No[\.:]?\s*:?\s*([A-Z0-9\-]+)`), validate: lengthBetween(9, 20)},
		{re: regexp.MustCompile(`(?i)Beneficiary\s+A/c\s+No[\.:]?\s*:?\s*([A-Z0-9\-]+)`), validate: lengthBetween(9, 20)},
		{re: regexp.MustCompile(`(?i)A/c\s+No[\.:]?\s*:?\s*([A-Z0-9\-]+)`), validate: lengthBetween(9, 20)},
	}

	hzlBankNamePatterns = []fieldPattern{
		{re: regexp.MustCompile(`(?i)Bank\s+Name[\.:]?\s*([^\n]+)`)},
		{re: regexp.MustCompile(`(?i)Beneficiary\s+Bank[\.:]?\s*([^\n]+)`)},
	}

	hzlAmountPatterns = []fieldPattern{
		{re: regexp.MustCompile(`(?i)Payment\s+Amount[\.:]?\s*[₹]?\s*([\d,]+\.?\d*)`)},
		{re: regexp.MustCompile(`(?i)Amount[\.:]?\s*[₹]?\s*([\d,]+\.?\d*)`)},
		{re: regexp.MustCompile(`(?i)Total\s+Amount[\.:]?\s*[₹]?\s*([\d,]+\.?\d*)`)},
		{re: regexp.MustCompile(`[₹]\s*([\d,]+\.?\d*)`)},
	}

	hzlRemarksPatterns = []fieldPattern{
		{re: regexp.MustCompile(`(?i)Remarks[\.:]?\s*([^\n]+)`)},
		{re: regexp.MustCompile(`(?i)Notes[\.:]?\s*([^\n]+)`)},
		{re: regexp.MustCompile(`(?i)Description[\.:]?\s*([^\n]+)`)},
	}

	hzlPaymentAdviceHeader = regexp.MustCompile(`(?i)PAYMENT\s+ADVICE`)
	hzlAnyDate             = regexp.MustCompile(`\d{1,2}[\./\-]\d{1,2}[\./\-]\d{2,4}`)

	// Bank-code UTR shape: 3+ uppercase letters then 10+ digits.
	hzlBankUTRToken = regexp.MustCompile(`\b([A-Z]{3,}[0-9]{10,})\b`)
	hzlUTRKeyword   = regexp.MustCompile(`(?i)UTR|RRN`)

	// The invoice table header names all eight columns in order, followed by
	// an underscore rule; rows run until the next rule or a blank line.
	hzlTableHeader = regexp.MustCompile(`(?is)Invoice\s+Number.*?Invoice\s+date.*?TDS.*?Other\s+Deductions.*?PF.*?Advanced\s+Adjusted.*?WCT.*?Security/Retention.*?_{10,}.*?\n(.*?)(?:\n_{10,}|\n\n|$)`)

	// Row line 1: invoice number, date, TDS, other deductions.
	hzlRowLine1 = regexp.MustCompile(`^([A-Z0-9\-]+)\s+(\d{1,2}[\./\-]\d{1,2}[\./\-]\d{2,4})\s+([\d,]+\.?\d*)\s+([\d,]+\.?\d*)`)
	// Row line 2: PF, advanced adjusted, WCT, security/retention.
	hzlRowLine2 = regexp.MustCompile(`^([\d,]+\.?\d*)\s+([\d,]+\.?\d*)\s+([\d,]+\.?\d*)\s+([\d,]+\.?\d*)`)

	hzlFlatInvoicePatterns = []fieldPattern{
		{re: regexp.MustCompile(`(?i)Invoice\s+Number[\.:]?\s*([A-Z0-9\-/]+)`)},
		{re: regexp.MustCompile(`(?i)Invoice\s+No[\.:]?\s*([A-Z0-9\-/]+)`)},
		{re: regexp.MustCompile(`(?i)Inv\s+No[\.:]?\s*([A-Z0-9\-/]+)`)},
	}
)

// Parse extracts all standard fields from a Hindustan Zinc payment advice.
// A missing identifying field is logged, never fatal: the caller decides
// whether a thin advice is acceptable.
func (p *HindustanZincParser) Parse(_ context.Context, input port.ParseInput) (*domain.PaymentAdvice, error) {
	text := input.RawPayload

	advice := domain.NewPaymentAdvice("HindustanZincParser", domain.ParserTypePDF, "Hindustan Zinc PDF")
	advice.CustomerName = p.customerName
	advice.RawText = text
	advice.Currency = detectCurrency(text)

	advice.PaymentDocumentNo, _ = firstMatch(text, hzlDocNoPatterns)
	advice.BankReferenceNo, _ = firstMatch(text, hzlBankRefPatterns)
	advice.UTRRRNNo = p.extractUTR(text)
	advice.PaymentDate = p.extractPaymentDate(text)
	advice.PaymentAmount = maxAmountByPriority(text, hzlAmountPatterns)
	advice.BankName = cleanLabelValue(first(text, hzlBankNamePatterns))
	advice.Remarks = first(text, hzlRemarksPatterns)

	if name, ok := firstMatch(text, hzlBeneficiaryPatterns); ok {
		advice.BeneficiaryName = cleanLabelValue(name)
	}
	advice.BeneficiaryAcctNo, _ = firstMatch(text, hzlAccountPatterns)

	advice.InvoiceTable = p.extractInvoiceTable(text)
	advice.DropEmptyRows()

	if advice.PaymentDocumentNo == "" && advice.BankReferenceNo == "" {
		log.Printf("parser.HindustanZincParser: neither payment document number nor bank reference extracted")
	}

	return advice, nil
}

func first(text string, patterns []fieldPattern) string {
	v, _ := firstMatch(text, patterns)
	return v
}

// cleanLabelValue strips trailing punctuation and collapses runs of
// whitespace in captured label values.
func cleanLabelValue(s string) string {
	s = strings.TrimRight(s, ".: \t")
	return strings.Join(strings.Fields(s), " ")
}

func (p *HindustanZincParser) extractPaymentDate(text string) string {
	if raw, ok := firstMatch(text, hzlPaymentDatePatterns); ok {
		if d := normalize.DateString(raw); d != "" {
			return d
		}
	}

	// No labelled date: look for one shortly after the PAYMENT ADVICE header.
	if loc := hzlPaymentAdviceHeader.FindStringIndex(text); loc != nil {
		window := text[loc[1]:]
		if len(window) > 500 {
			window = window[:500]
		}
		if m := hzlAnyDate.FindString(window); m != "" {
			return normalize.DateString(m)
		}
	}
	return ""
}

// extractUTR tries the labelled UTR/RRN patterns first, then falls back to
// scanning for bank-code-prefixed tokens. A token from the structural scan
// is only accepted when a UTR/RRN keyword appears within 100 characters of
// it, which filters out unrelated account and cheque numbers.
func (p *HindustanZincParser) extractUTR(text string) string {
	if utr, ok := firstMatch(text, hzlUTRPatterns); ok {
		return utr
	}

	for _, m := range hzlBankUTRToken.FindAllStringIndex(text, -1) {
		token := text[m[0]:m[1]]
		if len(token) < 10 || len(token) > 30 {
			continue
		}
		start := m[0] - 100
		if start < 0 {
			start = 0
		}
		end := m[1] + 100
		if end > len(text) {
			end = len(text)
		}
		if hzlUTRKeyword.MatchString(text[start:end]) {
			return token
		}
	}
	return ""
}

// extractInvoiceTable parses the 8-column invoice table. Each invoice spans
// two physical lines; on a full match the cursor advances two lines, on a
// partial match one line, so a malformed row degrades to a skip instead of
// aborting the table. When the table yields nothing, a flat invoice-number
// scan produces rows with zeroed deduction columns.
func (p *HindustanZincParser) extractInvoiceTable(text string) []domain.InvoiceRow {
	var rows []domain.InvoiceRow

	if m := hzlTableHeader.FindStringSubmatch(text); m != nil {
		var lines []string
		for _, l := range strings.Split(m[1], "\n") {
			if l = strings.TrimSpace(l); l != "" {
				lines = append(lines, l)
			}
		}

		for i := 0; i < len(lines); {
			l1 := hzlRowLine1.FindStringSubmatch(lines[i])
			if l1 == nil {
				i++
				continue
			}
			var l2 []string
			if i+1 < len(lines) {
				l2 = hzlRowLine2.FindStringSubmatch(lines[i+1])
			}
			if l2 == nil {
				i++
				continue
			}

			invoiceNo := strings.TrimSpace(l1[1])
			if len(invoiceNo) < 3 {
				i += 2
				continue
			}

			tds := normalize.Amount(l1[3])
			otherDed := normalize.Amount(l1[4])
			pf := normalize.Amount(l2[1])
			advanced := normalize.Amount(l2[2])
			wct := normalize.Amount(l2[3])
			security := normalize.Amount(l2[4])

			rows = append(rows, domain.InvoiceRow{
				InvoiceNumber:    invoiceNo,
				InvoiceDate:      normalize.DateString(l1[2]),
				TDSAmount:        tds,
				AdjustmentAmount: advanced,
				OtherDeductions:  otherDed + security,
				TDSWCT:           tds + wct,
				LegacyTDS:        tds,
				// Deduction sum is an intermediate placeholder only; the
				// payable amount is assigned at assembly time.
				Amount: tds + otherDed + pf + advanced + wct + security,
			})
			i += 2
		}
	}

	if len(rows) == 0 {
		for _, inv := range allMatches(text, hzlFlatInvoicePatterns) {
			rows = append(rows, domain.InvoiceRow{InvoiceNumber: inv})
		}
	}

	return rows
}
