// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	opts := options.NewProgram()
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	opts.Input = args[0]
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the command synopsis and all flag defaults.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <ROM file to run>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}
	logger.Info("retrochip8", log.String("version", buildinfo.Version(version, commit, date)))
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

var validFrontends = []string{options.FrontendWindow, options.FrontendTerminal, options.FrontendHeadless}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Frontend = strings.ToLower(opts.Frontend)
	opts.Preset = strings.ToLower(opts.Preset)

	if !slices.Contains(validFrontends, opts.Frontend) {
		return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
			opts.Frontend, strings.Join(validFrontends, ", "))
	}

	if opts.Preset != "" {
		if _, err := options.QuirksForPreset(opts.Preset); err != nil {
			return err
		}
	}

	if opts.Script != "" && opts.Frontend != options.FrontendHeadless {
		return fmt.Errorf("input scripts are only supported by the %s frontend", options.FrontendHeadless)
	}

	switch {
	case opts.Speed <= 0:
		return fmt.Errorf("invalid speed %d: instructions per second must be positive", opts.Speed)
	case opts.Scale <= 0:
		return fmt.Errorf("invalid scale %d: pixel scale must be positive", opts.Scale)
	case opts.Cycles < 0:
		return fmt.Errorf("invalid cycle count %d: must not be negative", opts.Cycles)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Frontend, "frontend", opts.Frontend, "frontend to run the ROM with (window/terminal/headless)")
	flags.StringVar(&opts.Preset, "quirks", "", "quirks preset ("+strings.Join(options.PresetNames(), "/")+"), auto-detected from the file extension if not set")
	flags.IntVar(&opts.Speed, "speed", opts.Speed, "instructions executed per second")
	flags.IntVar(&opts.Scale, "scale", opts.Scale, "pixel scale of the window frontend")
	flags.StringVar(&opts.Script, "script", "", "Lua script that drives the keypad in headless mode")
	flags.IntVar(&opts.Cycles, "cycles", 0, "number of cycles to execute in headless mode, 0 runs until halted")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")
	flags.BoolVar(&opts.Disasm, "disasm", false, "print a disassembly listing of the ROM instead of running it")
	flags.BoolVar(&opts.Mute, "mute", false, "disable the sound output")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
