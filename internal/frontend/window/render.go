package window

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/retroenv/retrochip8/internal/clock"
	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/keypad"
)

type palette struct {
	on  color.RGBA
	off color.RGBA
}

// fillPixels converts the framebuffer into RGBA pixels.
func fillPixels(dst []byte, d *display.Display, p palette) {
	for i, pixel := range d.Pixels {
		c := p.off
		if pixel != 0 {
			c = p.on
		}
		dst[i*4] = c.R
		dst[i*4+1] = c.G
		dst[i*4+2] = c.B
		dst[i*4+3] = c.A
	}
}

// keyCodes maps the keyboard characters of the keypad layout to ebiten keys.
var keyCodes = map[rune]ebiten.Key{
	'1': ebiten.Key1, '2': ebiten.Key2, '3': ebiten.Key3, '4': ebiten.Key4,
	'q': ebiten.KeyQ, 'w': ebiten.KeyW, 'e': ebiten.KeyE, 'r': ebiten.KeyR,
	'a': ebiten.KeyA, 's': ebiten.KeyS, 'd': ebiten.KeyD, 'f': ebiten.KeyF,
	'z': ebiten.KeyZ, 'x': ebiten.KeyX, 'c': ebiten.KeyC, 'v': ebiten.KeyV,
}

// pressedKeys returns the keypad state using the given key state function.
func pressedKeys(isPressed func(ebiten.Key) bool) [cpu.KeyCount]bool {
	var keys [cpu.KeyCount]bool
	for key := range byte(cpu.KeyCount) {
		keys[key] = isPressed(keyCodes[keypad.Rune(key)])
	}
	return keys
}

func statusLine(frame clock.Frame, pc uint16, halted error) string {
	switch {
	case halted != nil:
		return "HALTED - F5 restart"
	case frame.Waiting:
		return fmt.Sprintf("PC $%03X  waiting for key", pc)
	default:
		return fmt.Sprintf("PC $%03X  %d/frame", pc, frame.Cycles)
	}
}
