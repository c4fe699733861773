// Command batch processes a directory of scanned images through the OCR
// pipeline and writes a per-document CSV summary.
// Usage: go run ./cmd/batch -dir ./scans -out results.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"docusight/internal/classify"
	"docusight/internal/config"
	"docusight/internal/csvexport"
	"docusight/internal/domain"
	"docusight/internal/engine"
	"docusight/internal/extract"
	"docusight/internal/ocr"
	"docusight/internal/routing"
	"docusight/internal/validator"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	dir := flag.String("dir", "", "directory of scanned images to process")
	out := flag.String("out", "results.csv", "output CSV path")
	flag.Parse()

	if *dir == "" {
		return fmt.Errorf("-dir is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	classifier := classify.New(&cfg.Classifier)
	engines := engine.NewSet(cfg)
	engineRouter := routing.New(classifier, cfg.OCR.LowConfidenceThreshold)
	orchestrator := ocr.NewOrchestrator(
		engineRouter, engines,
		extract.NewExtractor(),
		validator.New(cfg.OCR.ValidationTolerance),
		cfg.OCR.ConfidenceThreshold,
	)

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", *out, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(csvexport.BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}
	w := csvexport.NewWriter(f)
	if err := w.WriteHeader(); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	ctx := context.Background()
	total := 0
	invalid := 0

	err = filepath.WalkDir(*dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
		if _, ok := domain.AllowedExtensions[ext]; !ok {
			return nil
		}

		result := orchestrator.Process(ctx, path)
		if err := w.WriteResult(path, result); err != nil {
			return fmt.Errorf("writing row for %s: %w", path, err)
		}
		total++
		if result.ValidationStatus == domain.ValidationStatusInvalid {
			invalid++
		}
		log.Printf("processed %s: engine=%s confidence=%.2f validation=%s",
			path, result.Metadata.EngineUsed, result.ConfidenceScore, result.ValidationStatus)
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking %s: %w", *dir, err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}

	log.Printf("done: %d documents processed, %d invalid, results in %s", total, invalid, *out)
	return nil
}
