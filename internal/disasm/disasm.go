// Package disasm renders CHIP-8 opcodes as assembly mnemonics.
package disasm

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/opcode"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Instruction returns the assembly text of an opcode and whether the opcode
// is a known instruction.
func Instruction(op opcode.Opcode) (string, bool) {
	name := instructionName(op)
	if name == "" {
		return fmt.Sprintf(".word $%04X", uint16(op)), false
	}
	if params := formatParams(name, op); params != "" {
		return fmt.Sprintf("%s %s", name, params), true
	}
	return name, true
}

// instructionName looks up the mnemonic of the opcode in the instruction
// table of the class its high nibble selects.
func instructionName(op opcode.Opcode) string {
	w := uint16(op)
	for _, candidate := range chip8.Opcodes[int(op.Class())] {
		if candidate.Info.Mask&w == candidate.Info.Value && candidate.Instruction != nil {
			return candidate.Instruction.Name
		}
	}
	return ""
}

// formatParams formats the operands of an instruction.
func formatParams(name string, op opcode.Opcode) string {
	switch name {
	case chip8.Cls.Name, chip8.Ret.Name:
		return "" // No parameters
	case chip8.Jp.Name:
		return formatJump(op)
	case chip8.Call.Name:
		return fmt.Sprintf("$%03X", op.NNN())
	case chip8.Se.Name, chip8.Sne.Name:
		return formatCompare(op)
	case chip8.Ld.Name:
		return formatLoad(op)
	case chip8.Add.Name:
		return formatAdd(op)
	case chip8.Or.Name, chip8.And.Name, chip8.Xor.Name, chip8.Sub.Name, chip8.Subn.Name:
		return fmt.Sprintf("V%X, V%X", op.X(), op.Y())
	case chip8.Shr.Name, chip8.Shl.Name:
		return fmt.Sprintf("V%X", op.X())
	case chip8.Rnd.Name:
		return fmt.Sprintf("V%X, $%02X", op.X(), op.NN())
	case chip8.Drw.Name:
		return fmt.Sprintf("V%X, V%X, $%X", op.X(), op.Y(), op.N())
	case chip8.Skp.Name, chip8.Sknp.Name:
		return fmt.Sprintf("V%X", op.X())
	}
	return ""
}

// formatJump formats jump instructions (JP addr, JP V0+addr).
func formatJump(op opcode.Opcode) string {
	switch op.Class() {
	case 0x1:
		return fmt.Sprintf("$%03X", op.NNN())
	case 0xB:
		return fmt.Sprintf("V0, $%03X", op.NNN())
	}
	return ""
}

// formatCompare formats comparison instructions (SE, SNE).
func formatCompare(op opcode.Opcode) string {
	switch op.Class() {
	case 0x3, 0x4:
		return fmt.Sprintf("V%X, $%02X", op.X(), op.NN())
	case 0x5, 0x9:
		return fmt.Sprintf("V%X, V%X", op.X(), op.Y())
	}
	return ""
}

// formatLoad formats the load instruction variants.
func formatLoad(op opcode.Opcode) string {
	x := op.X()
	switch op.Class() {
	case 0x6:
		return fmt.Sprintf("V%X, $%02X", x, op.NN())
	case 0x8:
		return fmt.Sprintf("V%X, V%X", x, op.Y())
	case 0xA:
		return fmt.Sprintf("I, $%03X", op.NNN())
	case 0xF:
		return formatLoadMisc(op)
	}
	return ""
}

var loadMiscFormats = map[byte]string{
	0x07: "V%X, DT",
	0x0A: "V%X, K",
	0x15: "DT, V%X",
	0x18: "ST, V%X",
	0x29: "F, V%X",
	0x33: "B, V%X",
	0x55: "[I], V%X",
	0x65: "V%X, [I]",
}

func formatLoadMisc(op opcode.Opcode) string {
	format, ok := loadMiscFormats[op.NN()]
	if !ok {
		return ""
	}
	return fmt.Sprintf(format, op.X())
}

// formatAdd formats add instructions (ADD Vx, byte/Vy, ADD I, Vx).
func formatAdd(op opcode.Opcode) string {
	x := op.X()
	switch op.Class() {
	case 0x7:
		return fmt.Sprintf("V%X, $%02X", x, op.NN())
	case 0x8:
		return fmt.Sprintf("V%X, V%X", x, op.Y())
	case 0xF:
		return fmt.Sprintf("I, V%X", x)
	}
	return ""
}
