package options

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestQuirksForPreset(t *testing.T) {
	tests := []struct {
		name    string
		preset  string
		want    Quirks
		wantErr bool
	}{
		{
			name:   "chip8",
			preset: PresetChip8,
			want:   Quirks{ShiftCopiesVy: true, LoadStoreIncrementsI: true, LogicResetsVF: true},
		},
		{
			name:   "schip upper case",
			preset: "SCHIP",
			want:   Quirks{JumpUsesVx: true},
		},
		{
			name:   "modern",
			preset: PresetModern,
			want:   Quirks{WrapSprites: true},
		},
		{
			name:    "unknown",
			preset:  "xochip",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := QuirksForPreset(tt.preset)
			if tt.wantErr {
				assert.ErrorContains(t, err, "unsupported quirks preset")
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPresetNames(t *testing.T) {
	assert.Equal(t, []string{PresetChip8, PresetModern, PresetSChip}, PresetNames())
}

func TestNewProgram(t *testing.T) {
	opts := NewProgram()
	assert.Equal(t, FrontendWindow, opts.Frontend)
	assert.Equal(t, DefaultSpeed, opts.Speed)
	assert.Equal(t, DefaultScale, opts.Scale)
}
