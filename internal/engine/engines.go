// Package engine wires the concrete OCR engine adapters into the set the
// orchestrator selects from.
package engine

import (
	"fmt"

	"docusight/internal/config"
	"docusight/internal/domain"
	"docusight/internal/engine/tesseract"
	"docusight/internal/engine/trocr"
	"docusight/internal/port"
)

// Factory constructs one engine adapter from configuration.
type Factory func(cfg *config.Config) port.OCREngine

var factories = map[domain.EngineKind]Factory{
	domain.EngineTrOCR: func(cfg *config.Config) port.OCREngine {
		return trocr.NewEngine(&cfg.TrOCR)
	},
	domain.EngineTesseract: func(cfg *config.Config) port.OCREngine {
		return tesseract.NewEngine(&cfg.Tesseract)
	},
}

// New builds a single engine by kind.
func New(kind domain.EngineKind, cfg *config.Config) (port.OCREngine, error) {
	factory, ok := factories[kind]
	if !ok {
		return nil, fmt.Errorf("unknown engine kind %q", kind)
	}
	return factory(cfg), nil
}

// NewSet builds the full engine set from configuration.
func NewSet(cfg *config.Config) map[domain.EngineKind]port.OCREngine {
	set := make(map[domain.EngineKind]port.OCREngine, len(factories))
	for kind, factory := range factories {
		set[kind] = factory(cfg)
	}
	return set
}
