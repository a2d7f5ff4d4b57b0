package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"payadvice/internal/domain"
	"payadvice/internal/parser"
	"payadvice/internal/port"
)

// AdviceService is the boundary between document acquisition and the parsing
// core: it selects a parser through the registry, runs it, and assembles the
// per-row payable amounts the collaborator persists.
type AdviceService struct {
	registry  *parser.Registry
	extractor port.TextExtractor
}

// NewAdviceService creates an AdviceService. The extractor may be nil when
// only in-memory payloads are parsed (the HTTP path).
func NewAdviceService(registry *parser.Registry, extractor port.TextExtractor) *AdviceService {
	return &AdviceService{registry: registry, extractor: extractor}
}

// Parse dispatches the input to the right parser and returns the assembled
// advice. Field-level extraction misses surface as defaults on the advice;
// only structural failures and unsupported kinds return errors.
func (s *AdviceService) Parse(ctx context.Context, input port.ParseInput) (*domain.PaymentAdvice, error) {
	p, err := s.registry.ForInput(input)
	if err != nil {
		return nil, err
	}

	advice, err := p.Parse(ctx, input)
	if err != nil {
		return nil, err
	}

	AssembleRows(advice)
	return advice, nil
}

// ParseFile reads the document at path and parses it: PDFs go through the
// text extractor (with OCR fallback), XML files are read verbatim.
func (s *AdviceService) ParseFile(ctx context.Context, path string, kind domain.FileKind, customerHint string) (*domain.PaymentAdvice, error) {
	var payload string

	switch kind {
	case domain.FileKindPDF:
		if s.extractor == nil {
			return nil, fmt.Errorf("no text extractor configured for PDF input")
		}
		text, err := s.extractor.ExtractText(ctx, path)
		if err != nil {
			return nil, err
		}
		payload = text
	case domain.FileKindXML:
		raw, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", domain.ErrFileNotFound, path)
			}
			return nil, err
		}
		payload = string(raw)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFileKind, kind)
	}

	return s.Parse(ctx, port.ParseInput{
		FileKind:     kind,
		RawPayload:   payload,
		CustomerHint: customerHint,
	})
}

// Customers lists the registered customer names.
func (s *AdviceService) Customers() []string {
	return s.registry.Customers()
}

// AssembleRows computes the authoritative per-invoice payable amount.
// Rows that carry a real net amount (XML-sourced) keep it; everything else
// gets an equal share of the total payment amount. Whatever intermediate
// value a text parser left in Amount is overwritten here.
func AssembleRows(advice *domain.PaymentAdvice) {
	n := len(advice.InvoiceTable)
	if n == 0 {
		return
	}

	share := advice.PaymentAmount / float64(n)
	for i := range advice.InvoiceTable {
		row := &advice.InvoiceTable[i]
		if row.NetAmount > 0 {
			row.Amount = row.NetAmount
		} else {
			row.Amount = share
		}
	}

	if advice.PaymentAmount == 0 && n > 0 {
		log.Printf("service.AdviceService: %d invoice rows with zero payment amount (%s)",
			n, strings.TrimSpace(advice.ParserUsed))
	}
}
