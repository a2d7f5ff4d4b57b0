package port

import (
	"context"

	"payadvice/internal/domain"
)

// ParseInput carries one document's payload into the dispatch layer.
type ParseInput struct {
	FileKind     domain.FileKind
	RawPayload   string
	CustomerHint string
}

// AdviceParser abstracts a payment-advice extractor. Implementations are
// pure functions of the input: deterministic, no shared state, no I/O.
type AdviceParser interface {
	Parse(ctx context.Context, input ParseInput) (*domain.PaymentAdvice, error)
}
