// Package ocr acquires plain text from PDF files for the parsing core.
// Direct extraction with pdftotext comes first; scanned documents fall back
// to rendering pages and running tesseract when OCR is enabled.
package ocr

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"payadvice/internal/config"
	"payadvice/internal/domain"
)

// Extractor implements port.TextExtractor over external poppler/tesseract
// binaries.
type Extractor struct {
	cfg    config.OCRConfig
	runner Runner
}

// NewExtractor creates an Extractor with the default exec runner.
func NewExtractor(cfg config.OCRConfig) *Extractor {
	return &Extractor{cfg: cfg, runner: execRunner{}}
}

// NewExtractorWithRunner is the test seam for stubbing external commands.
func NewExtractorWithRunner(cfg config.OCRConfig, r Runner) *Extractor {
	return &Extractor{cfg: cfg, runner: r}
}

// ExtractText returns the text content of the PDF at path. A missing file is
// domain.ErrFileNotFound; a failed extraction (both direct and OCR) is
// domain.ErrTextExtractionFailed.
func (e *Extractor) ExtractText(ctx context.Context, path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrFileNotFound, path)
	}

	text, directErr := e.pdfToText(ctx, path)
	if directErr == nil && strings.TrimSpace(text) != "" {
		return text, nil
	}

	if !e.cfg.Enabled {
		if directErr != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrTextExtractionFailed, directErr)
		}
		// Empty text with OCR disabled is still the caller's problem to flag.
		return text, nil
	}

	ocrText, ocrErr := e.pdfToOCR(ctx, path)
	if ocrErr != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTextExtractionFailed, ocrErr)
	}
	return ocrText, nil
}

func (e *Extractor) pdfToText(ctx context.Context, path string) (string, error) {
	out, _, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (e *Extractor) pdfToOCR(ctx context.Context, path string) (string, error) {
	tmpDir, err := os.MkdirTemp("", "padv-ocr-*")
	if err != nil {
		return "", err
	}
	defer func() {
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			log.Printf("ocr: failed to remove temp dir %q: %v", tmpDir, rmErr)
		}
	}()

	prefix := filepath.Join(tmpDir, "page")
	if _, _, err := e.runner.Run(ctx, e.cfg.Pdftoppm, "-r", fmt.Sprintf("%d", e.cfg.DPI), "-png", path, prefix); err != nil {
		return "", err
	}

	pages, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(pages)
	if e.cfg.MaxPages > 0 && len(pages) > e.cfg.MaxPages {
		pages = pages[:e.cfg.MaxPages]
	}
	if len(pages) == 0 {
		return "", fmt.Errorf("pdftoppm produced no images")
	}

	var b strings.Builder
	for _, img := range pages {
		out, _, err := e.runner.Run(ctx, e.cfg.Tesseract, img, "stdout")
		if err != nil {
			continue
		}
		b.Write(out)
		b.WriteString("\n")
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("ocr produced no text")
	}
	return text, nil
}
