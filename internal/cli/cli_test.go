package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func parseArgs(t *testing.T, args ...string) (options.Program, error) {
	t.Helper()

	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = append([]string{"retrochip8"}, args...)

	return ParseFlags()
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Program
	}{
		{
			name: "defaults",
			args: []string{"pong.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "pong.ch8"},
				Flags:      options.Flags{Frontend: options.FrontendWindow, Speed: options.DefaultSpeed, Scale: options.DefaultScale},
			},
		},
		{
			name: "headless with cycles",
			args: []string{"-frontend", "HEADLESS", "-cycles", "100", "test.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "test.ch8"},
				Flags:      options.Flags{Frontend: options.FrontendHeadless, Speed: options.DefaultSpeed, Scale: options.DefaultScale, Cycles: 100},
			},
		},
		{
			name: "terminal with preset and flags",
			args: []string{"-frontend", "terminal", "-quirks", "SChip", "-speed", "1000", "-mute", "-trace", "-q", "game.sc8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "game.sc8"},
				Flags: options.Flags{
					Frontend: options.FrontendTerminal,
					Preset:   options.PresetSChip,
					Speed:    1000,
					Scale:    options.DefaultScale,
					Mute:     true,
					Trace:    true,
					Quiet:    true,
				},
			},
		},
		{
			name: "headless with script",
			args: []string{"-frontend", "headless", "-script", "input.lua", "test.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "test.ch8", Script: "input.lua"},
				Flags:      options.Flags{Frontend: options.FrontendHeadless, Speed: options.DefaultSpeed, Scale: options.DefaultScale},
			},
		},
		{
			name: "disasm",
			args: []string{"-disasm", "-scale", "4", "test.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "test.ch8"},
				Flags:      options.Flags{Frontend: options.FrontendWindow, Speed: options.DefaultSpeed, Scale: 4, Disasm: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseArgs(t, tt.args...)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		usage       bool
		errContains string
	}{
		{"no ROM", nil, true, ""},
		{"flag after ROM", []string{"test.ch8", "-debug"}, true, "found after ROM file"},
		{"unknown frontend", []string{"-frontend", "sdl", "test.ch8"}, false, "unsupported frontend: sdl"},
		{"unknown preset", []string{"-quirks", "xochip", "test.ch8"}, false, "unsupported quirks preset"},
		{"script without headless", []string{"-script", "input.lua", "test.ch8"}, false, "only supported by the headless frontend"},
		{"zero speed", []string{"-speed", "0", "test.ch8"}, false, "invalid speed"},
		{"negative scale", []string{"-scale", "-1", "test.ch8"}, false, "invalid scale"},
		{"negative cycles", []string{"-cycles", "-5", "test.ch8"}, false, "invalid cycle count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs(t, tt.args...)
			assert.Error(t, err)

			var usageErr *UsageError
			assert.Equal(t, tt.usage, errors.As(err, &usageErr))
			if tt.errContains != "" {
				assert.ErrorContains(t, err, tt.errContains)
			}
		})
	}
}

func TestValidateArgs(t *testing.T) {
	assert.NoError(t, validateArgs([]string{"test.ch8"}))
	assert.NoError(t, validateArgs([]string{"test.ch8", ""}))
	assert.Error(t, validateArgs([]string{"test.ch8", "-q"}))
}
