// Package computer implements the CHIP-8 dispatcher that drives the
// execution engine one instruction per cycle.
package computer

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/font"
	"github.com/retroenv/retrochip8/internal/opcode"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Config contains the settings of a new computer.
type Config struct {
	// Font is the glyph table copied to address 0 on reset. An empty font
	// selects font.Default.
	Font   []byte
	Quirks options.Quirks
	// Rand is the random source of Cxnn. Nil uses the process wide
	// generator.
	Rand cpu.RandSource
}

// Effects reports the observable side effects of a cycle.
type Effects struct {
	Redraw        bool // the framebuffer changed
	Clear         bool // the screen was cleared
	WaitingForKey bool // execution is suspended until a key press
}

// Computer owns the CPU, the framebuffer, the keypad state and the timers.
type Computer struct {
	logger  *log.Logger
	cpu     *cpu.CPU
	display *display.Display
	timers  cpu.Timers
	keys    [cpu.KeyCount]bool
	font    []byte
	program []byte

	waiting      bool
	waitRegister byte
	halted       error
	effects      Effects
}

// New returns a new computer. Reset has to be called before the first
// cycle.
func New(logger *log.Logger, cfg Config) (*Computer, error) {
	glyphs := cfg.Font
	if len(glyphs) == 0 {
		glyphs = font.Default[:]
	}
	if len(glyphs) != font.Size {
		return nil, fmt.Errorf("invalid font size %d, expected %d bytes", len(glyphs), font.Size)
	}

	c := &Computer{
		logger:  logger,
		cpu:     cpu.New(cfg.Quirks, cfg.Rand),
		display: display.New(),
		font:    append([]byte(nil), glyphs...),
	}
	return c, nil
}

// Reset zeroes memory, registers, stack, timers and framebuffer, reseeds
// the font and clears any key wait or halt condition. The loaded program is
// wiped as well.
func (c *Computer) Reset() {
	c.cpu.Reset(c.font)
	c.display.Reset()
	c.timers = cpu.Timers{}
	c.waiting = false
	c.waitRegister = 0
	c.halted = nil
	c.effects = Effects{}
	c.logger.Debug("Computer reset")
}

// LoadProgram copies the program into memory at the program start address.
func (c *Computer) LoadProgram(data []byte) error {
	if err := c.cpu.LoadProgram(data); err != nil {
		return fmt.Errorf("loading program of %d bytes: %w", len(data), err)
	}
	c.program = append(c.program[:0], data...)
	c.logger.Debug("Program loaded", log.Int("size", len(data)))
	return nil
}

// Restart resets the computer and reloads the last loaded program.
func (c *Computer) Restart() error {
	c.Reset()
	return c.LoadProgram(c.program)
}

// Cycle executes a single instruction. A returned error is fatal, the
// computer stays halted and returns the same error on every following cycle
// until it gets reset.
func (c *Computer) Cycle() (Effects, error) {
	if c.halted != nil {
		return Effects{}, c.halted
	}
	if c.waiting {
		return Effects{WaitingForKey: true}, nil
	}

	c.effects = Effects{}
	address := c.cpu.PC
	op := c.cpu.Fetch()

	if err := classes[op.Class()](c, op); err != nil {
		c.halted = executionError(err, op, address)
		return c.effects, c.halted
	}

	c.effects.WaitingForKey = c.waiting
	return c.effects, nil
}

func executionError(err error, op opcode.Opcode, address uint16) error {
	if errors.Is(err, ErrUnknownOpcode) {
		return &DecodeError{Opcode: op, Address: address}
	}
	return fmt.Errorf("executing opcode 0x%04X at address 0x%03X: %w", uint16(op), address, err)
}

// NextInstruction returns the address and opcode of the instruction the
// next cycle executes.
func (c *Computer) NextInstruction() (uint16, opcode.Opcode) {
	pc := c.cpu.PC & (cpu.MemorySize - 1)
	next := (pc + 1) & (cpu.MemorySize - 1)
	return pc, opcode.New(c.cpu.Memory[pc], c.cpu.Memory[next])
}

// TickTimers decrements the delay and sound timers. It is meant to be
// called by the external 60 Hz clock, independent of the cycle rate.
func (c *Computer) TickTimers() {
	c.timers.Tick()
}

// SetKeys replaces the keypad state. A key that went down while a key wait
// is pending resolves the wait, the lowest key index wins.
func (c *Computer) SetKeys(keys [cpu.KeyCount]bool) {
	previous := c.keys
	c.keys = keys
	if !c.waiting {
		return
	}
	for key, down := range keys {
		if down && !previous[key] {
			c.KeyPressed(byte(key))
			return
		}
	}
}

// SetKey updates the state of a single key. Pressing a key while a key
// wait is pending resolves the wait.
func (c *Computer) SetKey(key byte, down bool) {
	key &= 0x0F
	c.keys[key] = down
	if down {
		c.KeyPressed(key)
	}
}

// KeyPressed resolves a pending key wait by writing the key index to the
// destination register. It returns whether a wait was resolved.
func (c *Computer) KeyPressed(key byte) bool {
	if !c.waiting {
		return false
	}
	c.cpu.WriteKey(c.waitRegister, key)
	c.waiting = false
	return true
}

// Keys returns the current keypad state.
func (c *Computer) Keys() [cpu.KeyCount]bool {
	return c.keys
}

// Waiting returns whether execution is suspended by a key wait.
func (c *Computer) Waiting() bool {
	return c.waiting
}

// Halted returns the fatal error that stopped execution, or nil.
func (c *Computer) Halted() error {
	return c.halted
}

// Display returns the framebuffer.
func (c *Computer) Display() *display.Display {
	return c.display
}

// CPU returns the execution engine.
func (c *Computer) CPU() *cpu.CPU {
	return c.cpu
}

// DelayTimer returns the delay timer value.
func (c *Computer) DelayTimer() byte {
	return c.timers.Delay
}

// SoundTimer returns the sound timer value.
func (c *Computer) SoundTimer() byte {
	return c.timers.Sound
}

// SoundActive returns whether the buzzer should sound.
func (c *Computer) SoundActive() bool {
	return c.timers.Sound > 0
}
