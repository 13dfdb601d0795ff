// Package clock schedules the execution of a computer in 60 Hz frames.
// Every frame runs the number of cycles the configured speed asks for and
// decrements the timers once.
package clock

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/retroenv/retrochip8/internal/computer"
	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrogolib/log"
)

// FrameRate is the rate of the timers and the screen refresh in Hz.
const FrameRate = 60

// ErrQuit is returned by a frontend to end the emulation without error.
var ErrQuit = errors.New("quit requested")

// Frontend connects the clock to the user.
type Frontend interface {
	// PollKeys returns the current keypad state.
	PollKeys() ([cpu.KeyCount]bool, error)
	// Present shows the framebuffer and the buzzer state of a finished frame.
	Present(frame Frame, d *display.Display) error
}

// Config contains the clock settings.
type Config struct {
	Speed int  // instructions executed per second
	Trace bool // log every executed instruction
}

// Frame describes the outcome of a single frame.
type Frame struct {
	Number  uint64
	Cycles  int  // instructions executed
	Redraw  bool // the framebuffer changed
	Sound   bool // the buzzer is active
	Waiting bool // execution is suspended by a key wait
}

// Clock drives a computer.
type Clock struct {
	logger   *log.Logger
	computer *computer.Computer
	speed    int
	trace    bool

	remainder int // accumulated fractional cycles
	frames    uint64
	cycles    uint64
}

// New returns a new clock for the computer.
func New(logger *log.Logger, c *computer.Computer, cfg Config) (*Clock, error) {
	if cfg.Speed <= 0 {
		return nil, fmt.Errorf("invalid speed %d", cfg.Speed)
	}
	return &Clock{
		logger:   logger,
		computer: c,
		speed:    cfg.Speed,
		trace:    cfg.Trace,
	}, nil
}

// Step runs a single frame with the given keypad state.
func (c *Clock) Step(keys [cpu.KeyCount]bool) (Frame, error) {
	return c.StepMax(keys, math.MaxInt)
}

// StepMax runs a single frame with the given keypad state, executing at
// most maxCycles instructions.
func (c *Clock) StepMax(keys [cpu.KeyCount]bool, maxCycles int) (Frame, error) {
	c.computer.SetKeys(keys)

	c.remainder += c.speed
	budget := min(c.remainder/FrameRate, maxCycles)
	c.remainder %= FrameRate

	c.frames++
	frame := Frame{Number: c.frames}

	for range budget {
		if c.computer.Waiting() {
			frame.Waiting = true
			break
		}
		if c.trace {
			c.traceInstruction()
		}

		effects, err := c.computer.Cycle()
		frame.Redraw = frame.Redraw || effects.Redraw
		if err != nil {
			c.cycles += uint64(frame.Cycles)
			return frame, fmt.Errorf("running frame %d: %w", c.frames, err)
		}
		frame.Cycles++
	}
	frame.Waiting = frame.Waiting || c.computer.Waiting()
	c.cycles += uint64(frame.Cycles)

	c.computer.TickTimers()
	frame.Sound = c.computer.SoundActive()
	return frame, nil
}

func (c *Clock) traceInstruction() {
	address, op := c.computer.NextInstruction()
	code, _ := disasm.Instruction(op)
	c.logger.Debug("Executing instruction",
		log.Hex("address", address),
		log.Stringer("opcode", op),
		log.String("code", code))
}

// Run executes frames at the frame rate until the context gets cancelled,
// the frontend quits or the computer halts with an error. A quit request
// returns nil, a cancellation returns the context error.
func (c *Clock) Run(ctx context.Context, fe Frontend) error {
	ticker := time.NewTicker(time.Second / FrameRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if err := c.runFrame(fe); err != nil {
			if errors.Is(err, ErrQuit) {
				c.logger.Debug("Frontend requested quit", log.Int("frames", int(c.frames)))
				return nil
			}
			return err
		}
	}
}

func (c *Clock) runFrame(fe Frontend) error {
	keys, err := fe.PollKeys()
	if err != nil {
		return fmt.Errorf("polling keys: %w", err)
	}

	frame, err := c.Step(keys)
	if err != nil {
		return err
	}

	if err := fe.Present(frame, c.computer.Display()); err != nil {
		return fmt.Errorf("presenting frame %d: %w", frame.Number, err)
	}
	return nil
}

// Frames returns the number of executed frames.
func (c *Clock) Frames() uint64 {
	return c.frames
}

// Cycles returns the number of executed instructions.
func (c *Clock) Cycles() uint64 {
	return c.cycles
}

// Computer returns the driven computer.
func (c *Clock) Computer() *computer.Computer {
	return c.computer
}
