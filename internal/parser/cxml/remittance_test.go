package cxml_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payadvice/internal/domain"
	"payadvice/internal/parser/cxml"
	"payadvice/internal/port"
)

const remittanceDoc = `<?xml version="1.0" encoding="UTF-8"?>
<cXML payloadID="pay-001@ariba.example.com" timestamp="2025-12-03T10:15:30+05:30">
  <Request>
    <PaymentRemittanceRequest>
      <PaymentRemittanceRequestHeader paymentRemittanceID="2070401637"
          paymentReferenceNumber="1352908332"
          paymentDate="2025-12-03T00:00:00+05:30">
        <PaymentMethod type="wire"/>
        <Contact role="payer">
          <Name xml:lang="en">Hindustan Zinc India Ltd</Name>
          <PostalAddress>
            <City>Udaipur</City>
          </PostalAddress>
        </Contact>
        <Contact role="payee">
          <Name xml:lang="en">Vaaman Engineers India Limited</Name>
        </Contact>
        <Comments>
          <Attachment>
            <URL>cid:advice-2070401637.pdf</URL>
          </Attachment>
        </Comments>
        <Extrinsic name="UTR Number">HDFCR52025120390803069</Extrinsic>
      </PaymentRemittanceRequestHeader>
      <RemittanceDetail>
        <InvoiceIDInfo invoiceID="VRJ2526-0935"/>
        <GrossAmount><Money currency="INR">1000.00</Money></GrossAmount>
        <NetAmount><Money currency="INR">900.00</Money></NetAmount>
        <AdditionalDeduction><Money currency="INR">50.00</Money></AdditionalDeduction>
        <Extrinsic name="Fiscal Year">2025</Extrinsic>
        <Extrinsic name="Company Code">HZ01</Extrinsic>
      </RemittanceDetail>
      <PaymentRemittanceSummary>
        <GrossAmount><Money currency="INR">1000.00</Money></GrossAmount>
        <AdjustmentAmount><Money currency="INR">0.00</Money></AdjustmentAmount>
        <NetAmount><Money currency="INR">900.00</Money></NetAmount>
      </PaymentRemittanceSummary>
    </PaymentRemittanceRequest>
  </Request>
</cXML>`

func parseRemittance(t *testing.T, customer, raw string) *domain.PaymentAdvice {
	t.Helper()
	p := cxml.NewRemittanceParser(customer)
	advice, err := p.Parse(context.Background(), port.ParseInput{
		FileKind:   domain.FileKindXML,
		RawPayload: raw,
	})
	require.NoError(t, err)
	require.NotNil(t, advice)
	return advice
}

func TestRemittance_HeaderAndRootMetadata(t *testing.T) {
	advice := parseRemittance(t, "", remittanceDoc)

	assert.Equal(t, "pay-001@ariba.example.com", advice.PayloadID)
	assert.Equal(t, "2025-12-03T10:15:30+05:30", advice.CXMLTimestamp)
	assert.Equal(t, "2070401637", advice.PaymentDocumentNo)
	assert.Equal(t, "1352908332", advice.BankReferenceNo)
	// Timestamp portion of paymentDate is discarded.
	assert.Equal(t, "2025-12-03", advice.PaymentDate)
	assert.Equal(t, "WIRE", advice.PaymentMethod)
	assert.Equal(t, "HDFCR52025120390803069", advice.UTRRRNNo)
	assert.Equal(t, "cid:advice-2070401637.pdf", advice.AttachedPDF)
	assert.Equal(t, "CXMLPaymentRemittanceParser", advice.ParserUsed)
	assert.Equal(t, domain.ParserTypeCXML, advice.ParserType)
}

func TestRemittance_Contacts(t *testing.T) {
	advice := parseRemittance(t, "", remittanceDoc)

	assert.Equal(t, "Hindustan Zinc India Ltd", advice.PayerName)
	assert.Equal(t, "Udaipur", advice.PayerCity)
	assert.Equal(t, "Vaaman Engineers India Limited", advice.BeneficiaryName)
	// No explicit customer: the payer identity fills in.
	assert.Equal(t, "Hindustan Zinc India Ltd", advice.CustomerName)
}

func TestRemittance_ExplicitCustomerWins(t *testing.T) {
	advice := parseRemittance(t, "Selected Customer Ltd", remittanceDoc)
	assert.Equal(t, "Selected Customer Ltd", advice.CustomerName)
}

func TestRemittance_SummaryAmounts(t *testing.T) {
	advice := parseRemittance(t, "", remittanceDoc)

	assert.Equal(t, 900.0, advice.PaymentAmount)
	assert.Equal(t, 1000.0, advice.GrossPaymentAmt)
	assert.Equal(t, 0.0, advice.AdjustmentAmount)
	assert.Equal(t, "INR", advice.Currency)
}

func TestRemittance_RowDeductions(t *testing.T) {
	advice := parseRemittance(t, "", remittanceDoc)

	require.Len(t, advice.InvoiceTable, 1)
	row := advice.InvoiceTable[0]
	assert.Equal(t, "VRJ2526-0935", row.InvoiceNumber)
	assert.Equal(t, 1000.0, row.GrossAmount)
	assert.Equal(t, 900.0, row.NetAmount)
	assert.Equal(t, 50.0, row.TDSAmount)
	assert.Equal(t, 0.0, row.AdjustmentAmount)
	// gross - net - deductions - adjustment = 1000 - 900 - 50 - 0
	assert.Equal(t, 50.0, row.OtherDeductions)
	assert.Equal(t, 900.0, row.Amount)
	assert.Equal(t, "INR", row.Currency)
	assert.Equal(t, "2025", row.FiscalYear)
	assert.Equal(t, "HZ01", row.CompanyCode)
}

func TestRemittance_NamespacedDocumentParsesIdentically(t *testing.T) {
	namespaced := `<?xml version="1.0"?>
<x:cXML xmlns:x="http://xml.cxml.org/schemas/cXML/1.2.014/cXML.dtd" payloadID="p1" timestamp="t1">
  <x:Request>
    <x:PaymentRemittanceRequest>
      <x:PaymentRemittanceRequestHeader paymentRemittanceID="DOC-42" paymentDate="2025-01-15">
        <x:PaymentMethod type="ach"/>
      </x:PaymentRemittanceRequestHeader>
      <x:PaymentRemittanceSummary>
        <x:NetAmount><x:Money currency="USD">250.00</x:Money></x:NetAmount>
      </x:PaymentRemittanceSummary>
    </x:PaymentRemittanceRequest>
  </x:Request>
</x:cXML>`

	advice := parseRemittance(t, "", namespaced)
	assert.Equal(t, "p1", advice.PayloadID)
	assert.Equal(t, "DOC-42", advice.PaymentDocumentNo)
	assert.Equal(t, "2025-01-15", advice.PaymentDate)
	assert.Equal(t, "ACH", advice.PaymentMethod)
	assert.Equal(t, 250.0, advice.PaymentAmount)
	assert.Equal(t, "USD", advice.Currency)
}

func TestRemittance_InvoiceIDFromElementText(t *testing.T) {
	doc := `<cXML><Request><PaymentRemittanceRequest>
      <RemittanceDetail>
        <InvoiceIDInfo>INV-77</InvoiceIDInfo>
        <NetAmount><Money currency="INR">10.00</Money></NetAmount>
      </RemittanceDetail>
    </PaymentRemittanceRequest></Request></cXML>`

	advice := parseRemittance(t, "", doc)
	require.Len(t, advice.InvoiceTable, 1)
	assert.Equal(t, "INV-77", advice.InvoiceTable[0].InvoiceNumber)
	// Without a gross amount there is no residual deduction to compute.
	assert.Equal(t, 0.0, advice.InvoiceTable[0].OtherDeductions)
}

func TestRemittance_RowWithoutInvoiceNumberDropped(t *testing.T) {
	doc := `<cXML><Request><PaymentRemittanceRequest>
      <RemittanceDetail>
        <NetAmount><Money currency="INR">10.00</Money></NetAmount>
      </RemittanceDetail>
    </PaymentRemittanceRequest></Request></cXML>`

	advice := parseRemittance(t, "", doc)
	assert.Empty(t, advice.InvoiceTable)
	assert.NotNil(t, advice.InvoiceTable)
}

func TestRemittance_NegativeNetClampedToZero(t *testing.T) {
	doc := `<cXML><Request><PaymentRemittanceRequest>
      <PaymentRemittanceSummary>
        <NetAmount><Money currency="INR">-10.00</Money></NetAmount>
      </PaymentRemittanceSummary>
    </PaymentRemittanceRequest></Request></cXML>`

	advice := parseRemittance(t, "", doc)
	assert.Equal(t, 0.0, advice.PaymentAmount)
}

func TestRemittance_EmptyPayload(t *testing.T) {
	p := cxml.NewRemittanceParser("")

	_, err := p.Parse(context.Background(), port.ParseInput{RawPayload: ""})
	assert.ErrorIs(t, err, domain.ErrEmptyPayload)

	_, err = p.Parse(context.Background(), port.ParseInput{RawPayload: "  \n\t "})
	assert.ErrorIs(t, err, domain.ErrEmptyPayload)
}

func TestRemittance_MalformedXML(t *testing.T) {
	p := cxml.NewRemittanceParser("")
	_, err := p.Parse(context.Background(), port.ParseInput{RawPayload: "<cXML><unclosed>"})
	assert.ErrorIs(t, err, domain.ErrMalformedXML)
}

func TestRemittance_MissingRemittanceRoot(t *testing.T) {
	p := cxml.NewRemittanceParser("")
	_, err := p.Parse(context.Background(), port.ParseInput{
		RawPayload: `<cXML payloadID="p2"><Request><OrderRequest/></Request></cXML>`,
	})
	assert.ErrorIs(t, err, domain.ErrRemittanceRootMissing)
}
