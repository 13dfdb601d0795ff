// Package cpu implements the CHIP-8 instruction execution engine.
package cpu

import (
	"errors"
	"math/rand/v2"

	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/font"
	"github.com/retroenv/retrochip8/internal/opcode"
	"github.com/retroenv/retrochip8/internal/options"
)

// CHIP-8 machine layout constants.
const (
	MemorySize     = 0x1000
	ProgramStart   = 0x200
	MaxProgramSize = MemorySize - ProgramStart
	RegisterCount  = 16
	StackDepth     = 16
	FlagRegister   = 0xF
	KeyCount       = 16

	addressMask = MemorySize - 1
	maxSprite   = 15
)

var (
	// ErrStackOverflow is returned when a call exceeds the stack depth.
	ErrStackOverflow = errors.New("call stack overflow")
	// ErrStackUnderflow is returned when returning with an empty stack.
	ErrStackUnderflow = errors.New("call stack underflow")
	// ErrProgramTooLarge is returned when a program does not fit into memory.
	ErrProgramTooLarge = errors.New("program too large to fit into memory")
)

// RandSource provides the random numbers used by Cxnn.
type RandSource interface {
	Uint32() uint32
}

// CPU holds the memory, register file, index register, program counter and
// call stack of the virtual machine. Every instruction method assumes the
// program counter already points past the instruction being executed.
type CPU struct {
	Memory [MemorySize]byte
	V      [RegisterCount]byte
	I      uint16
	PC     uint16

	// SP indexes the top of Stack. It is pre-incremented on call, so slot 0
	// is never written and the first return address lives in slot 1.
	SP    uint8
	Stack [StackDepth + 1]uint16

	quirks options.Quirks
	rnd    RandSource
}

// Timers holds the delay and sound timers.
type Timers struct {
	Delay byte
	Sound byte
}

// Tick decrements both timers toward zero.
func (t *Timers) Tick() {
	if t.Delay > 0 {
		t.Delay--
	}
	if t.Sound > 0 {
		t.Sound--
	}
}

// New returns a new CPU using the given quirks. A nil rnd uses the
// process wide random generator.
func New(quirks options.Quirks, rnd RandSource) *CPU {
	if rnd == nil {
		rnd = globalRand{}
	}
	return &CPU{
		PC:     ProgramStart,
		quirks: quirks,
		rnd:    rnd,
	}
}

// Quirks returns the quirks the CPU executes with.
func (c *CPU) Quirks() options.Quirks {
	return c.quirks
}

// Reset zeroes all state, copies the font to address 0 and points the
// program counter at the program start.
func (c *CPU) Reset(glyphs []byte) {
	c.Memory = [MemorySize]byte{}
	c.V = [RegisterCount]byte{}
	c.Stack = [StackDepth + 1]uint16{}
	c.I = 0
	c.SP = 0
	c.PC = ProgramStart
	copy(c.Memory[:ProgramStart], glyphs)
}

// LoadProgram copies the program bytes into memory at the program start.
func (c *CPU) LoadProgram(data []byte) error {
	if len(data) > MaxProgramSize {
		return ErrProgramTooLarge
	}
	copy(c.Memory[ProgramStart:], data)
	return nil
}

// Fetch reads the opcode at the program counter and advances it.
func (c *CPU) Fetch() opcode.Opcode {
	op := opcode.New(c.read(c.PC), c.read(c.PC+1))
	c.PC += opcode.Size
	return op
}

func (c *CPU) read(address uint16) byte {
	return c.Memory[address&addressMask]
}

func (c *CPU) write(address uint16, value byte) {
	c.Memory[address&addressMask] = value
}

func (c *CPU) skip() {
	c.PC += opcode.Size
}

// setFlag writes VF. It has to run after the result register got written so
// that the flag wins when the result register is VF itself.
func (c *CPU) setFlag(set bool) {
	if set {
		c.V[FlagRegister] = 1
	} else {
		c.V[FlagRegister] = 0
	}
}

// ClearScreen implements 00E0.
func (c *CPU) ClearScreen(d *display.Display) {
	d.Reset()
}

// Return implements 00EE.
func (c *CPU) Return() error {
	if c.SP == 0 {
		return ErrStackUnderflow
	}
	c.PC = c.Stack[c.SP]
	c.SP--
	return nil
}

// Jump implements 1nnn.
func (c *CPU) Jump(op opcode.Opcode) {
	c.PC = op.NNN()
}

// Call implements 2nnn. The return address is the already advanced program
// counter.
func (c *CPU) Call(op opcode.Opcode) error {
	if c.SP >= StackDepth {
		return ErrStackOverflow
	}
	c.SP++
	c.Stack[c.SP] = c.PC
	c.PC = op.NNN()
	return nil
}

// SkipEqualImmediate implements 3xnn.
func (c *CPU) SkipEqualImmediate(op opcode.Opcode) {
	if c.V[op.X()] == op.NN() {
		c.skip()
	}
}

// SkipNotEqualImmediate implements 4xnn.
func (c *CPU) SkipNotEqualImmediate(op opcode.Opcode) {
	if c.V[op.X()] != op.NN() {
		c.skip()
	}
}

// SkipEqualRegister implements 5xy0.
func (c *CPU) SkipEqualRegister(op opcode.Opcode) {
	if c.V[op.X()] == c.V[op.Y()] {
		c.skip()
	}
}

// LoadImmediate implements 6xnn.
func (c *CPU) LoadImmediate(op opcode.Opcode) {
	c.V[op.X()] = op.NN()
}

// AddImmediate implements 7xnn, VF is not affected.
func (c *CPU) AddImmediate(op opcode.Opcode) {
	c.V[op.X()] += op.NN()
}

// LoadRegister implements 8xy0.
func (c *CPU) LoadRegister(op opcode.Opcode) {
	c.V[op.X()] = c.V[op.Y()]
}

// Or implements 8xy1.
func (c *CPU) Or(op opcode.Opcode) {
	c.V[op.X()] |= c.V[op.Y()]
	c.logicFlag()
}

// And implements 8xy2.
func (c *CPU) And(op opcode.Opcode) {
	c.V[op.X()] &= c.V[op.Y()]
	c.logicFlag()
}

// Xor implements 8xy3.
func (c *CPU) Xor(op opcode.Opcode) {
	c.V[op.X()] ^= c.V[op.Y()]
	c.logicFlag()
}

func (c *CPU) logicFlag() {
	if c.quirks.LogicResetsVF {
		c.V[FlagRegister] = 0
	}
}

// Add implements 8xy4, VF is set on 8-bit overflow.
func (c *CPU) Add(op opcode.Opcode) {
	sum := uint16(c.V[op.X()]) + uint16(c.V[op.Y()])
	c.V[op.X()] = byte(sum)
	c.setFlag(sum > 0xFF)
}

// Sub implements 8xy5, Vx = Vx - Vy. VF is set when no borrow occurred.
func (c *CPU) Sub(op opcode.Opcode) {
	vx, vy := c.V[op.X()], c.V[op.Y()]
	c.V[op.X()] = vx - vy
	c.setFlag(vx >= vy)
}

// SubReverse implements 8xy7, Vx = Vy - Vx. VF is set when no borrow
// occurred.
func (c *CPU) SubReverse(op opcode.Opcode) {
	vx, vy := c.V[op.X()], c.V[op.Y()]
	c.V[op.X()] = vy - vx
	c.setFlag(vy >= vx)
}

// ShiftRight implements 8xy6, VF receives the bit shifted out.
func (c *CPU) ShiftRight(op opcode.Opcode) {
	value := c.shiftOperand(op)
	c.V[op.X()] = value >> 1
	c.setFlag(value&0x01 != 0)
}

// ShiftLeft implements 8xyE, VF receives the bit shifted out.
func (c *CPU) ShiftLeft(op opcode.Opcode) {
	value := c.shiftOperand(op)
	c.V[op.X()] = value << 1
	c.setFlag(value&0x80 != 0)
}

func (c *CPU) shiftOperand(op opcode.Opcode) byte {
	if c.quirks.ShiftCopiesVy {
		return c.V[op.Y()]
	}
	return c.V[op.X()]
}

// SkipNotEqualRegister implements 9xy0.
func (c *CPU) SkipNotEqualRegister(op opcode.Opcode) {
	if c.V[op.X()] != c.V[op.Y()] {
		c.skip()
	}
}

// LoadIndex implements Annn.
func (c *CPU) LoadIndex(op opcode.Opcode) {
	c.I = op.NNN()
}

// JumpOffset implements Bnnn.
func (c *CPU) JumpOffset(op opcode.Opcode) {
	offset := c.V[0]
	if c.quirks.JumpUsesVx {
		offset = c.V[op.X()]
	}
	c.PC = (op.NNN() + uint16(offset)) & addressMask
}

// Random implements Cxnn.
func (c *CPU) Random(op opcode.Opcode) {
	c.V[op.X()] = byte(c.rnd.Uint32()) & op.NN()
}

// Draw implements Dxyn. It XORs n sprite rows read from I onto the display
// at Vx, Vy and sets VF on collision.
func (c *CPU) Draw(op opcode.Opcode, d *display.Display) {
	n := uint16(op.N())
	start := c.I & addressMask

	var rows []byte
	if start+n <= MemorySize {
		rows = c.Memory[start : start+n]
	} else {
		var buf [maxSprite]byte
		for i := range n {
			buf[i] = c.read(start + i)
		}
		rows = buf[:n]
	}

	collision := d.Blit(int(c.V[op.X()]), int(c.V[op.Y()]), rows, c.quirks.WrapSprites)
	c.setFlag(collision)
}

// SkipKeyPressed implements Ex9E.
func (c *CPU) SkipKeyPressed(op opcode.Opcode, keys *[KeyCount]bool) {
	if keys[c.V[op.X()]&0x0F] {
		c.skip()
	}
}

// SkipKeyNotPressed implements ExA1.
func (c *CPU) SkipKeyNotPressed(op opcode.Opcode, keys *[KeyCount]bool) {
	if !keys[c.V[op.X()]&0x0F] {
		c.skip()
	}
}

// LoadDelay implements Fx07.
func (c *CPU) LoadDelay(op opcode.Opcode, t *Timers) {
	c.V[op.X()] = t.Delay
}

// SetDelay implements Fx15.
func (c *CPU) SetDelay(op opcode.Opcode, t *Timers) {
	t.Delay = c.V[op.X()]
}

// SetSound implements Fx18.
func (c *CPU) SetSound(op opcode.Opcode, t *Timers) {
	t.Sound = c.V[op.X()]
}

// WriteKey stores a key index in register x, resolving an Fx0A key wait.
func (c *CPU) WriteKey(x, key byte) {
	c.V[x&0x0F] = key & 0x0F
}

// AddIndex implements Fx1E.
func (c *CPU) AddIndex(op opcode.Opcode) {
	c.I += uint16(c.V[op.X()])
}

// LoadGlyph implements Fx29, pointing I at the font glyph for digit Vx.
func (c *CPU) LoadGlyph(op opcode.Opcode) {
	c.I = font.Address(c.V[op.X()])
}

// StoreBCD implements Fx33.
func (c *CPU) StoreBCD(op opcode.Opcode) {
	value := c.V[op.X()]
	c.write(c.I, value/100)
	c.write(c.I+1, value/10%10)
	c.write(c.I+2, value%10)
}

// StoreRegisters implements Fx55, storing V0 through Vx at I.
func (c *CPU) StoreRegisters(op opcode.Opcode) {
	x := uint16(op.X())
	for i := uint16(0); i <= x; i++ {
		c.write(c.I+i, c.V[i])
	}
	if c.quirks.LoadStoreIncrementsI {
		c.I += x + 1
	}
}

// LoadRegisters implements Fx65, loading V0 through Vx from I.
func (c *CPU) LoadRegisters(op opcode.Opcode) {
	x := uint16(op.X())
	for i := uint16(0); i <= x; i++ {
		c.V[i] = c.read(c.I + i)
	}
	if c.quirks.LoadStoreIncrementsI {
		c.I += x + 1
	}
}

type globalRand struct{}

func (globalRand) Uint32() uint32 {
	return rand.Uint32()
}
