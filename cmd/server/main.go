package main

import (
	"fmt"
	"log"

	"docusight/internal/classify"
	"docusight/internal/config"
	"docusight/internal/engine"
	"docusight/internal/extract"
	"docusight/internal/handler"
	"docusight/internal/ocr"
	"docusight/internal/router"
	"docusight/internal/routing"
	"docusight/internal/validator"
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

	// Assemble the pipeline
	classifier := classify.New(&cfg.Classifier)
	engines := engine.NewSet(cfg)
	engineRouter := routing.New(classifier, cfg.OCR.LowConfidenceThreshold)
	extractor := extract.NewExtractor()
	fieldValidator := validator.New(cfg.OCR.ValidationTolerance)
	orchestrator := ocr.NewOrchestrator(engineRouter, engines, extractor, fieldValidator, cfg.OCR.ConfidenceThreshold)

	// Initialize handlers
	ocrH := handler.NewOCRHandler(orchestrator, &cfg.Upload)
	textH := handler.NewTextHandler()
	healthH := handler.NewHealthHandler()

	// Setup router
	r := router.Setup(ocrH, textH, healthH, cfg.CORS.AllowedOrigins)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
