// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/cpu"
)

var (
	// ErrROMEmpty is returned for a ROM without any content.
	ErrROMEmpty = errors.New("ROM is empty")
	// ErrROMTooLarge is returned for a ROM that does not fit into memory
	// behind the program start address.
	ErrROMTooLarge = errors.New("ROM too large")
)

// Loader handles loading ROM files from disk.
type Loader struct{}

// New creates a new ROM loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the ROM at the given path and validates that it fits into the
// CHIP-8 program memory.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	return l.LoadFromReader(file)
}

// LoadFromReader reads and validates a ROM from the given reader.
func (l *Loader) LoadFromReader(reader io.Reader) ([]byte, error) {
	// read one byte more than allowed to detect oversized ROMs
	data, err := io.ReadAll(io.LimitReader(reader, cpu.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading ROM: %w", err)
	}
	return l.LoadFromBytes(data)
}

// LoadFromBytes validates ROM data that is already in memory.
func (l *Loader) LoadFromBytes(data []byte) ([]byte, error) {
	switch {
	case len(data) == 0:
		return nil, ErrROMEmpty
	case len(data) > cpu.MaxProgramSize:
		return nil, fmt.Errorf("%w: more than %d bytes", ErrROMTooLarge, cpu.MaxProgramSize)
	}
	return data, nil
}
