package parser_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payadvice/internal/domain"
	"payadvice/internal/parser"
	"payadvice/internal/port"
)

func TestRegistry_HintSelectsRegisteredParser(t *testing.T) {
	r := parser.NewRegistry()

	// The text carries no customer marker; the hint alone must decide.
	p := r.ForText("HZL", "Payment Doc No: 2070401637")
	advice, err := p.Parse(context.Background(), port.ParseInput{
		FileKind:   domain.FileKindPDF,
		RawPayload: "Payment Doc No: 2070401637",
	})
	require.NoError(t, err)
	assert.Equal(t, "HindustanZincParser", advice.ParserUsed)
	assert.Equal(t, "Hindustan Zinc India Ltd", advice.CustomerName)
}

func TestRegistry_HintBeatsDetection(t *testing.T) {
	r := parser.NewRegistry()

	// Even with a different registered customer visible in the text, an
	// explicit registered hint wins.
	text := "Remittance issued by HINDUSTAN ZINC INDIA LTD"
	p := r.ForText("Hindustan Zinc", text)
	advice, err := p.Parse(context.Background(), port.ParseInput{RawPayload: text})
	require.NoError(t, err)
	assert.Equal(t, "Hindustan Zinc India Ltd", advice.CustomerName)
}

func TestRegistry_DetectionFromText(t *testing.T) {
	r := parser.NewRegistry()

	name, ok := r.DetectCustomer("advice issued by hindustan zinc india ltd, Udaipur")
	require.True(t, ok)
	assert.Equal(t, "Hindustan Zinc India Ltd", name)

	name, ok = r.DetectCustomer("payment from HZL treasury")
	require.True(t, ok)
	assert.Equal(t, "Hindustan Zinc India Ltd", name)

	_, ok = r.DetectCustomer("payment from Acme Corp")
	assert.False(t, ok)

	_, ok = r.DetectCustomer("")
	assert.False(t, ok)
}

func TestRegistry_UnknownHintFallsBackToGeneric(t *testing.T) {
	r := parser.NewRegistry()

	p := r.ForText("Acme Corp", "Amount: ₹500.00")
	advice, err := p.Parse(context.Background(), port.ParseInput{RawPayload: "Amount: ₹500.00"})
	require.NoError(t, err)
	assert.Equal(t, "GenericParser", advice.ParserUsed)
	// An unregistered hint is still the best customer label available.
	assert.Equal(t, "Acme Corp", advice.CustomerName)
}

func TestRegistry_NoHintNoDetectionIsGenericUnknown(t *testing.T) {
	r := parser.NewRegistry()

	p := r.ForText("", "nothing identifying here")
	advice, err := p.Parse(context.Background(), port.ParseInput{RawPayload: "nothing identifying here"})
	require.NoError(t, err)
	assert.Equal(t, "GenericParser", advice.ParserUsed)
	assert.Equal(t, "Unknown", advice.CustomerName)
}

func TestRegistry_XMLAlwaysRoutesToRemittanceParser(t *testing.T) {
	r := parser.NewRegistry()

	p, err := r.ForInput(port.ParseInput{FileKind: domain.FileKindXML, RawPayload: "<cXML/>"})
	require.NoError(t, err)
	require.NotNil(t, p)

	// Structured input never reaches the text parsers, even with a hint
	// that names a registered text customer.
	p, err = r.ForInput(port.ParseInput{FileKind: domain.FileKindXML, CustomerHint: "HZL"})
	require.NoError(t, err)
	require.NotNil(t, p)
}

func TestRegistry_UnsupportedKind(t *testing.T) {
	r := parser.NewRegistry()

	_, err := r.ForInput(port.ParseInput{FileKind: "csv"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileKind)
}

func TestRegistry_RegisterNewCustomer(t *testing.T) {
	r := parser.NewRegistry()
	r.Register("Acme Corp", []string{"ACME"}, func(customer string) port.AdviceParser {
		return parser.NewGenericParser(customer)
	})

	assert.Equal(t, []string{"Acme Corp", "Hindustan Zinc India Ltd"}, r.Customers())

	name, ok := r.DetectCustomer("invoice from ACME payable")
	require.True(t, ok)
	assert.Equal(t, "Acme Corp", name)
}
