package cxml

import (
	"context"
	"encoding/xml"
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"

	"payadvice/internal/domain"
	"payadvice/internal/port"
)

// RemittanceParser parses Ariba-style cXML PaymentRemittanceRequest
// documents. Unlike the text parsers it can fail: without the remittance
// root there is no meaningful partial record, so a missing root or a
// malformed payload is a structural error.
type RemittanceParser struct {
	customerName string
}

// NewRemittanceParser creates a parser labelled with the given customer.
// An empty customer is allowed; payer/payee identities from the document
// fill in.
func NewRemittanceParser(customerName string) *RemittanceParser {
	return &RemittanceParser{customerName: customerName}
}

// Parse extracts header, summary and line-item data from the payload.
func (p *RemittanceParser) Parse(_ context.Context, input port.ParseInput) (*domain.PaymentAdvice, error) {
	raw := input.RawPayload
	if strings.TrimSpace(raw) == "" {
		return nil, domain.ErrEmptyPayload
	}

	var root node
	if err := xml.Unmarshal([]byte(raw), &root); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedXML, err)
	}

	remReq := root.findFirst("PaymentRemittanceRequest")
	if remReq == nil {
		return nil, domain.ErrRemittanceRootMissing
	}

	advice := domain.NewPaymentAdvice("CXMLPaymentRemittanceParser", domain.ParserTypeCXML, "Ariba cXML Payment Remittance")
	advice.RawXML = raw
	advice.PayloadID = root.attr("payloadID")
	advice.CXMLTimestamp = root.attr("timestamp")

	p.parseHeader(remReq, advice)
	p.parseSummary(remReq, advice)
	advice.InvoiceTable = p.parseRows(remReq)
	advice.DropEmptyRows()

	return advice, nil
}

func (p *RemittanceParser) parseHeader(remReq *node, advice *domain.PaymentAdvice) {
	hdr := remReq.findFirst("PaymentRemittanceRequestHeader")
	if hdr == nil {
		log.Printf("cxml.RemittanceParser: remittance header missing, advice will carry summary data only")
		return
	}

	advice.PaymentDocumentNo = hdr.attr("paymentRemittanceID")
	advice.BankReferenceNo = hdr.attr("paymentReferenceNumber")
	// paymentDate may carry a timestamp; only the date portion is kept.
	advice.PaymentDate, _, _ = strings.Cut(hdr.attr("paymentDate"), "T")

	if pm := hdr.findFirst("PaymentMethod"); pm != nil {
		advice.PaymentMethod = strings.ToUpper(pm.attr("type"))
	}

	// UTR arrives through the generic Extrinsic annotation mechanism,
	// identified by a substring match on the annotation name.
	for _, extr := range hdr.findAll("Extrinsic") {
		name := strings.ToUpper(extr.attr("name"))
		if strings.Contains(name, "UTR") && extr.text() != "" {
			advice.UTRRRNNo = extr.text()
		}
	}

	var payerName, payerCity, payeeName string
	for _, contact := range hdr.findAll("Contact") {
		role := strings.ToLower(contact.attr("role"))
		var name string
		if nameEl := contact.findFirst("Name"); nameEl != nil {
			name = nameEl.text()
		}
		switch {
		case role == "payer" && name != "":
			payerName = name
			if addr := contact.findFirst("PostalAddress"); addr != nil {
				if city := addr.findFirst("City"); city != nil {
					payerCity = city.text()
				}
			}
		case role == "payee" && name != "":
			payeeName = name
		}
	}

	advice.CustomerName = p.customerName
	if advice.CustomerName == "" {
		advice.CustomerName = payerName
	}
	if advice.CustomerName == "" {
		advice.CustomerName = payeeName
	}
	advice.PayerName = payerName
	advice.PayerCity = payerCity
	advice.BeneficiaryName = payeeName

	if comments := hdr.findFirst("Comments"); comments != nil {
		if attachment := comments.findFirst("Attachment"); attachment != nil {
			if url := attachment.findFirst("URL"); url != nil {
				advice.AttachedPDF = url.text()
			}
		}
	}
}

func (p *RemittanceParser) parseSummary(remReq *node, advice *domain.PaymentAdvice) {
	summary := remReq.findFirst("PaymentRemittanceSummary")
	if summary == nil {
		return
	}

	if money := moneyUnder(summary, "NetAmount"); money != nil {
		if c := money.attr("currency"); c != "" {
			advice.Currency = c
		}
		advice.PaymentAmount = moneyValue(money)
	}
	if money := moneyUnder(summary, "GrossAmount"); money != nil {
		advice.GrossPaymentAmt = moneyValue(money)
	}
	if money := moneyUnder(summary, "AdjustmentAmount"); money != nil {
		advice.AdjustmentAmount = moneyValue(money)
	}

	if advice.PaymentAmount < 0 {
		log.Printf("cxml.RemittanceParser: negative net total %v clamped to 0", advice.PaymentAmount)
		advice.PaymentAmount = 0
	}
}

func (p *RemittanceParser) parseRows(remReq *node) []domain.InvoiceRow {
	var rows []domain.InvoiceRow

	for _, rd := range remReq.findAll("RemittanceDetail") {
		var row domain.InvoiceRow

		if inv := rd.findFirst("InvoiceIDInfo"); inv != nil {
			row.InvoiceNumber = inv.attr("invoiceID")
			if row.InvoiceNumber == "" {
				row.InvoiceNumber = inv.text()
			}
		}

		grossMoney := moneyUnder(rd, "GrossAmount")
		netMoney := moneyUnder(rd, "NetAmount")
		gross, hasGross := optMoneyValue(grossMoney)
		net, hasNet := optMoneyValue(netMoney)

		// All AdditionalDeduction amounts sum into the TDS/WCT total.
		// Decimal arithmetic avoids drift across many small deductions.
		tds := decimal.Zero
		for _, add := range rd.findAll("AdditionalDeduction") {
			if money := add.findFirst("Money"); money != nil && money.text() != "" {
				if d, err := decimal.NewFromString(money.text()); err == nil {
					tds = tds.Add(d)
				}
			}
		}
		tdsF, _ := tds.Float64()

		var adjustment float64
		if money := moneyUnder(rd, "AdjustmentAmount"); money != nil {
			adjustment = moneyValue(money)
		}

		// Residual deductions (security/retention) only exist when both
		// gross and net are known, and are never negative.
		var otherDed float64
		if hasGross && hasNet {
			otherDed = gross - net - tdsF - adjustment
			if otherDed < 0 {
				otherDed = 0
			}
		}

		for _, extr := range rd.findAll("Extrinsic") {
			name := strings.ToLower(extr.attr("name"))
			switch {
			case strings.Contains(name, "fiscal"):
				row.FiscalYear = extr.text()
			case strings.Contains(strings.ReplaceAll(name, " ", ""), "companycode"):
				row.CompanyCode = extr.text()
			}
		}

		row.GrossAmount = gross
		row.NetAmount = net
		row.TDSAmount = tdsF
		row.AdjustmentAmount = adjustment
		row.OtherDeductions = otherDed
		row.TDSWCT = tdsF
		row.LegacyGross = gross
		row.LegacyTDS = tdsF
		row.Amount = net
		if grossMoney != nil {
			row.Currency = grossMoney.attr("currency")
		}

		rows = append(rows, row)
	}

	return rows
}

// moneyUnder finds the Money element nested under the named child of parent.
func moneyUnder(parent *node, tag string) *node {
	el := parent.findFirst(tag)
	if el == nil {
		return nil
	}
	return el.findFirst("Money")
}

// moneyValue parses a Money element's text with decimal precision, 0 when
// absent or malformed.
func moneyValue(money *node) float64 {
	v, _ := optMoneyValue(money)
	return v
}

func optMoneyValue(money *node) (float64, bool) {
	if money == nil || money.text() == "" {
		return 0, false
	}
	d, err := decimal.NewFromString(money.text())
	if err != nil {
		log.Printf("cxml.RemittanceParser: unparsable money value %q", money.text())
		return 0, false
	}
	f, _ := d.Float64()
	return f, true
}
