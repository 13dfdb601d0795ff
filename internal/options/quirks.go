package options

import (
	"fmt"
	"sort"
	"strings"
)

// Quirks selects between the behaviors that differ across CHIP-8
// interpreters.
type Quirks struct {
	// ShiftCopiesVy copies Vy into Vx before 8xy6 and 8xyE shift it.
	ShiftCopiesVy bool
	// LoadStoreIncrementsI advances I by x+1 after Fx55 and Fx65.
	LoadStoreIncrementsI bool
	// WrapSprites wraps sprite pixels crossing the display edge around to
	// the opposite edge instead of clipping them.
	WrapSprites bool
	// LogicResetsVF clears VF after 8xy1, 8xy2 and 8xy3.
	LogicResetsVF bool
	// JumpUsesVx makes Bxnn jump to xnn + Vx instead of nnn + V0.
	JumpUsesVx bool
}

// Quirk preset names.
const (
	PresetChip8  = "chip8"
	PresetSChip  = "schip"
	PresetModern = "modern"
)

var presets = map[string]Quirks{
	// COSMAC VIP interpreter behavior.
	PresetChip8: {
		ShiftCopiesVy:        true,
		LoadStoreIncrementsI: true,
		LogicResetsVF:        true,
	},
	// SUPER-CHIP 1.1 on the HP48.
	PresetSChip: {
		JumpUsesVx: true,
	},
	// What most modern interpreters and test ROMs assume.
	PresetModern: {
		WrapSprites: true,
	},
}

// QuirksForPreset returns the quirks of the named preset.
func QuirksForPreset(name string) (Quirks, error) {
	q, ok := presets[strings.ToLower(name)]
	if !ok {
		return Quirks{}, fmt.Errorf("unsupported quirks preset: %s. Valid options: %s",
			name, strings.Join(PresetNames(), ", "))
	}
	return q, nil
}

// PresetNames returns the sorted names of all quirk presets.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
