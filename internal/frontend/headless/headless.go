// Package headless runs a computer as fast as possible without any user
// interface and reports the final machine state.
package headless

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/retroenv/retrochip8/internal/clock"
	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrogolib/log"
)

// KeySource provides the keypad state of every frame.
type KeySource interface {
	// Keys returns the keypad state of the numbered frame and whether the
	// run should end.
	Keys(frame uint64) ([cpu.KeyCount]bool, bool, error)
}

// Config contains the headless run settings.
type Config struct {
	Cycles int       // instructions to execute, 0 runs until halted
	Input  KeySource // optional scripted keypad input
	Output io.Writer // receives the final framebuffer, can be nil
}

// Runner executes frames back to back.
type Runner struct {
	logger *log.Logger
	clock  *clock.Clock
	cfg    Config
}

// New returns a new headless runner.
func New(logger *log.Logger, clk *clock.Clock, cfg Config) *Runner {
	return &Runner{
		logger: logger,
		clock:  clk,
		cfg:    cfg,
	}
}

// Run executes until the cycle count is reached, a key wait can not be
// satisfied, the input source quits or the context gets cancelled.
func (r *Runner) Run(ctx context.Context) error {
	err := r.run(ctx)
	r.report()
	return err
}

func (r *Runner) run(ctx context.Context) error {
	limit := uint64(math.MaxUint64)
	if r.cfg.Cycles > 0 {
		limit = uint64(r.cfg.Cycles)
	}

	for r.clock.Cycles() < limit {
		if err := ctx.Err(); err != nil {
			return err
		}

		var keys [cpu.KeyCount]bool
		if r.cfg.Input != nil {
			var (
				quit bool
				err  error
			)
			keys, quit, err = r.cfg.Input.Keys(r.clock.Frames() + 1)
			if err != nil {
				return fmt.Errorf("reading scripted input: %w", err)
			}
			if quit {
				r.logger.Debug("Input script requested quit")
				return nil
			}
		}

		remaining := limit - r.clock.Cycles()
		frame, err := r.clock.StepMax(keys, int(min(remaining, math.MaxInt)))
		if err != nil {
			return err
		}
		if frame.Waiting && r.cfg.Input == nil {
			r.logger.Info("Program is waiting for a key press, stopping")
			return nil
		}
	}
	return nil
}

func (r *Runner) report() {
	c := r.clock.Computer()
	state := c.CPU()

	r.logger.Info("Emulation finished",
		log.Int("frames", int(r.clock.Frames())),
		log.Int("cycles", int(r.clock.Cycles())),
		log.Hex("pc", state.PC),
		log.Hex("i", state.I),
		log.Uint8("sp", state.SP),
		log.Uint8("delay", c.DelayTimer()),
		log.Uint8("sound", c.SoundTimer()),
		log.String("v", fmt.Sprintf("% X", state.V[:])))

	if r.cfg.Output != nil {
		if _, err := io.WriteString(r.cfg.Output, c.Display().Text('#', '.')); err != nil {
			r.logger.Error("Writing framebuffer failed", log.Err(err))
		}
	}
}
