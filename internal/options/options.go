// Package options contains the program and emulation options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input  string // ROM file to run
	Script string // Lua script driving the keypad of a headless run
}

// Flags contains behavior options.
type Flags struct {
	Frontend string // window, terminal or headless
	Preset   string // quirk preset name, auto-detected if empty
	Speed    int    // instructions per second
	Scale    int    // window pixel scale
	Cycles   int    // cycles to execute in headless mode, 0 runs until halted

	Debug  bool
	Quiet  bool
	Trace  bool // log every executed instruction
	Disasm bool // print a listing of the ROM instead of running it
	Mute   bool
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
}

// Frontend names.
const (
	FrontendWindow   = "window"
	FrontendTerminal = "terminal"
	FrontendHeadless = "headless"
)

// Default option values.
const (
	DefaultSpeed = 700
	DefaultScale = 10
)

// NewProgram returns program options with default values.
func NewProgram() Program {
	return Program{
		Flags: Flags{
			Frontend: FrontendWindow,
			Speed:    DefaultSpeed,
			Scale:    DefaultScale,
		},
	}
}
