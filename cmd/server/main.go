package main

import (
	"fmt"
	"log"

	"payadvice/internal/config"
	"payadvice/internal/handler"
	"payadvice/internal/ocr"
	"payadvice/internal/parser"
	"payadvice/internal/router"
	"payadvice/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	registry := parser.NewRegistry()
	extractor := ocr.NewExtractor(cfg.OCR)
	adviceSvc := service.NewAdviceService(registry, extractor)

	parseH := handler.NewParseHandler(adviceSvc)
	healthH := handler.NewHealthHandler()

	r := router.Setup(cfg, parseH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
