package domain

import "errors"

var (
	ErrUnsupportedFileKind   = errors.New("unsupported file kind")
	ErrEmptyPayload          = errors.New("payload is empty")
	ErrMalformedXML          = errors.New("payload is not well-formed XML")
	ErrRemittanceRootMissing = errors.New("PaymentRemittanceRequest element not found")
	ErrFileNotFound          = errors.New("source file not found")
	ErrTextExtractionFailed  = errors.New("text extraction failed")
)
