// Package opcode decodes raw CHIP-8 instruction words into their fields.
package opcode

import "fmt"

// Size is the size of a CHIP-8 instruction in bytes.
const Size = 2

// Opcode is a raw 16-bit CHIP-8 instruction word.
type Opcode uint16

// New assembles an opcode from two consecutive memory bytes in big-endian order.
func New(hi, lo byte) Opcode {
	return Opcode(uint16(hi)<<8 | uint16(lo))
}

// Class returns the instruction class, bits 15-12.
func (o Opcode) Class() byte {
	return byte(o >> 12)
}

// X returns the first register selector, bits 11-8.
func (o Opcode) X() byte {
	return byte(o>>8) & 0x0F
}

// Y returns the second register selector, bits 7-4.
func (o Opcode) Y() byte {
	return byte(o>>4) & 0x0F
}

// N returns the 4-bit immediate, bits 3-0.
func (o Opcode) N() byte {
	return byte(o) & 0x0F
}

// NN returns the 8-bit immediate, bits 7-0.
func (o Opcode) NN() byte {
	return byte(o)
}

// NNN returns the 12-bit address or immediate, bits 11-0.
func (o Opcode) NNN() uint16 {
	return uint16(o) & 0x0FFF
}

// String returns the opcode as 4 hex digits.
func (o Opcode) String() string {
	return fmt.Sprintf("%04X", uint16(o))
}
