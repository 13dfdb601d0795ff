// Package detector handles quirk preset detection.
package detector

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Detector selects the quirks a ROM should run with.
type Detector struct {
	logger *log.Logger
}

// New creates a new quirk preset detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the quirk preset from the options or the ROM file
// extension. An explicitly specified preset always wins.
func (d *Detector) Detect(opts options.Program) (string, options.Quirks, error) {
	preset := opts.Preset
	if preset == "" {
		preset = d.detectFromFile(opts.Input)
		d.logger.Debug("Auto-detected quirks preset",
			log.String("preset", preset),
			log.String("file", opts.Input))
	}

	quirks, err := options.QuirksForPreset(preset)
	if err != nil {
		return "", options.Quirks{}, fmt.Errorf("selecting quirks: %w", err)
	}
	return strings.ToLower(preset), quirks, nil
}

// detectFromFile determines the preset based on the file extension.
func (d *Detector) detectFromFile(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".sc8":
		return options.PresetSChip
	case ".xo8":
		// XO-CHIP ROMs assume the behavior of recent interpreters
		return options.PresetModern
	default:
		return options.PresetChip8
	}
}
