// Package emulator wires a ROM file, the computer and the selected frontend
// together.
package emulator

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/clock"
	"github.com/retroenv/retrochip8/internal/computer"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/frontend/headless"
	"github.com/retroenv/retrochip8/internal/frontend/terminal"
	"github.com/retroenv/retrochip8/internal/frontend/window"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/script"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile loads the ROM of the options and either prints its listing or
// runs it with the selected frontend.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, stdout io.Writer) error {
	rom, err := loader.New().Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	if opts.Disasm {
		if err := disasm.WriteListing(stdout, rom); err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
		return nil
	}

	clk, err := setupClock(logger, opts, rom)
	if err != nil {
		return err
	}

	switch opts.Frontend {
	case options.FrontendHeadless:
		return runHeadless(ctx, logger, opts, clk, stdout)
	case options.FrontendTerminal:
		return runTerminal(ctx, logger, opts, clk, stdout)
	default:
		return runWindow(ctx, logger, opts, clk)
	}
}

func setupClock(logger *log.Logger, opts options.Program, rom []byte) (*clock.Clock, error) {
	preset, quirks, err := detector.New(logger).Detect(opts)
	if err != nil {
		return nil, err
	}

	c, err := computer.New(logger, computer.Config{Quirks: quirks})
	if err != nil {
		return nil, fmt.Errorf("creating computer: %w", err)
	}
	c.Reset()
	if err := c.LoadProgram(rom); err != nil {
		return nil, err
	}

	clk, err := clock.New(logger, c, clock.Config{Speed: opts.Speed, Trace: opts.Trace})
	if err != nil {
		return nil, fmt.Errorf("creating clock: %w", err)
	}

	logger.Info("ROM loaded",
		log.String("file", opts.Input),
		log.Int("size", len(rom)),
		log.String("quirks", preset),
		log.Int("speed", opts.Speed))
	return clk, nil
}

func runHeadless(ctx context.Context, logger *log.Logger, opts options.Program,
	clk *clock.Clock, stdout io.Writer) error {

	cfg := headless.Config{
		Cycles: opts.Cycles,
		Output: stdout,
	}

	if opts.Script != "" {
		source, err := os.ReadFile(opts.Script)
		if err != nil {
			return fmt.Errorf("reading script %s: %w", opts.Script, err)
		}
		s, err := script.New(logger, clk.Computer(), filepath.Base(opts.Script), string(source))
		if err != nil {
			return err
		}
		defer s.Close()
		cfg.Input = s
	}

	return headless.New(logger, clk, cfg).Run(ctx)
}

func runTerminal(ctx context.Context, logger *log.Logger, opts options.Program,
	clk *clock.Clock, stdout io.Writer) error {

	input, err := terminal.OpenInput()
	if err != nil {
		return fmt.Errorf("opening terminal input: %w", err)
	}
	defer func() {
		if err := input.Close(); err != nil {
			logger.Error("Restoring terminal failed", log.Err(err))
		}
	}()

	buzzer, closeBuzzer := openBuzzer(logger, opts)
	defer closeBuzzer()

	term := terminal.New(stdout, input, buzzer)
	term.SetStatus(fmt.Sprintf("%s - Esc to quit", filepath.Base(opts.Input)))
	if err := term.Open(); err != nil {
		return err
	}
	defer func() { _ = term.Close() }()

	return clk.Run(ctx, term)
}

func runWindow(ctx context.Context, logger *log.Logger, opts options.Program, clk *clock.Clock) error {
	buzzer, closeBuzzer := openBuzzer(logger, opts)
	defer closeBuzzer()

	w := window.New(logger, clk, window.Config{
		Title:  "retrochip8 - " + filepath.Base(opts.Input),
		Scale:  opts.Scale,
		Buzzer: buzzer,
	})
	return w.Run(ctx)
}

// openBuzzer opens the audio output. Audio failures are not fatal, the
// emulation continues muted.
func openBuzzer(logger *log.Logger, opts options.Program) (audio.Buzzer, func()) {
	if opts.Mute {
		return audio.Silent{}, func() {}
	}

	beeper, err := audio.NewBeeper()
	if err != nil {
		logger.Error("Audio output is not available, continuing muted", log.Err(err))
		return audio.Silent{}, func() {}
	}
	return beeper, func() {
		if err := beeper.Close(); err != nil {
			logger.Error("Closing audio output failed", log.Err(err))
		}
	}
}
