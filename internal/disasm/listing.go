package disasm

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrochip8/internal/opcode"
)

// WriteListing writes an assembly listing of a ROM loaded at the program
// start address. Trailing zero bytes are omitted.
func WriteListing(w io.Writer, rom []byte) error {
	if _, err := fmt.Fprintf(w, "; CHIP-8 ROM Disassembly\n"); err != nil {
		return fmt.Errorf("writing header comment: %w", err)
	}
	if _, err := fmt.Fprintf(w, ".org $%03X\n\n", cpu.ProgramStart); err != nil {
		return fmt.Errorf("writing org directive: %w", err)
	}

	end := endIndex(rom)
	for i := 0; i < end; i += opcode.Size {
		address := cpu.ProgramStart + i

		if i+1 >= end {
			if err := writeLine(w, fmt.Sprintf(".byte $%02X", rom[i]), address, rom[i:i+1]); err != nil {
				return err
			}
			break
		}

		data := rom[i : i+opcode.Size]
		code, _ := Instruction(opcode.New(data[0], data[1]))
		if err := writeLine(w, code, address, data); err != nil {
			return err
		}
	}
	return nil
}

func writeLine(w io.Writer, code string, address int, data []byte) error {
	var hex strings.Builder
	for i, b := range data {
		if i > 0 {
			hex.WriteByte(' ')
		}
		fmt.Fprintf(&hex, "%02X", b)
	}

	line := "    " + code
	if _, err := fmt.Fprintf(w, "%-32s ; $%03X: %s\n", line, address, hex.String()); err != nil {
		return fmt.Errorf("writing code at $%03X: %w", address, err)
	}
	return nil
}

// endIndex finds the end of the last non zero byte in the ROM.
func endIndex(rom []byte) int {
	for i := len(rom) - 1; i >= 0; i-- {
		if rom[i] != 0 {
			return i + 1
		}
	}
	return 0
}
