package port

import "context"

// TextExtractor obtains plain text from a PDF on disk, optionally via OCR
// when direct extraction yields nothing. It is the only I/O boundary the
// parsing core depends on.
type TextExtractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}
