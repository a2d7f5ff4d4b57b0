// Command parsefile parses a single payment advice document from disk and
// prints the result as JSON, or writes it to an XLSX workbook.
// Usage: go run ./cmd/parsefile -file advice.pdf [-kind pdf|xml] [-customer "Hindustan Zinc"] [-xlsx out.xlsx]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"payadvice/internal/config"
	"payadvice/internal/domain"
	"payadvice/internal/export"
	"payadvice/internal/ocr"
	"payadvice/internal/parser"
	"payadvice/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		file     = flag.String("file", "", "path to the PDF or XML document (required)")
		kind     = flag.String("kind", "", "file kind: pdf or xml (default: by extension)")
		customer = flag.String("customer", "", "customer hint for parser selection")
		xlsxOut  = flag.String("xlsx", "", "write an XLSX workbook to this path instead of printing JSON")
	)
	flag.Parse()

	if *file == "" {
		flag.Usage()
		return fmt.Errorf("-file is required")
	}

	fileKind, err := resolveKind(*file, *kind)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	registry := parser.NewRegistry()
	extractor := ocr.NewExtractor(cfg.OCR)
	adviceSvc := service.NewAdviceService(registry, extractor)

	advice, err := adviceSvc.ParseFile(context.Background(), *file, fileKind, *customer)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", *file, err)
	}

	if *xlsxOut != "" {
		data, err := export.WriteAdviceXLSX(advice)
		if err != nil {
			return fmt.Errorf("building workbook: %w", err)
		}
		if err := os.WriteFile(*xlsxOut, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", *xlsxOut, err)
		}
		log.Printf("wrote %s (%d invoice rows)", *xlsxOut, len(advice.InvoiceTable))
		return nil
	}

	// Raw payloads make the JSON unreadable on a terminal.
	advice.RawText = ""
	advice.RawXML = ""

	out, err := json.MarshalIndent(advice, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func resolveKind(path, explicit string) (domain.FileKind, error) {
	if explicit != "" {
		kind, ok := domain.KnownFileKinds[strings.ToLower(explicit)]
		if !ok {
			return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFileKind, explicit)
		}
		return kind, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return domain.FileKindPDF, nil
	case ".xml", ".cxml":
		return domain.FileKindXML, nil
	default:
		return "", fmt.Errorf("%w: cannot infer kind from %q, pass -kind", domain.ErrUnsupportedFileKind, path)
	}
}
