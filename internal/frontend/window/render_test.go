package window

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/retroenv/retrochip8/internal/clock"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrogolib/assert"
)

func TestFillPixels(t *testing.T) {
	d := display.New()
	d.Blit(1, 0, []byte{0x80}, false)

	dst := make([]byte, display.Width*display.Height*4)
	fillPixels(dst, d, colors)

	assert.Equal(t, []byte{colors.off.R, colors.off.G, colors.off.B, colors.off.A}, dst[0:4])
	assert.Equal(t, []byte{colors.on.R, colors.on.G, colors.on.B, colors.on.A}, dst[4:8])
}

func TestKeyCodes(t *testing.T) {
	assert.Len(t, keyCodes, 16)

	seen := map[ebiten.Key]bool{}
	for _, key := range keyCodes {
		assert.False(t, seen[key])
		seen[key] = true
	}
}

func TestPressedKeys(t *testing.T) {
	keys := pressedKeys(func(key ebiten.Key) bool {
		return key == ebiten.Key4 || key == ebiten.KeyX
	})

	for key, down := range keys {
		assert.Equal(t, key == 0xC || key == 0x0, down)
	}
}

func TestStatusLine(t *testing.T) {
	assert.Equal(t, "PC $20A  11/frame", statusLine(clock.Frame{Cycles: 11}, 0x20A, nil))
	assert.Equal(t, "PC $200  waiting for key", statusLine(clock.Frame{Waiting: true}, 0x200, nil))
	assert.Equal(t, "HALTED - F5 restart", statusLine(clock.Frame{}, 0x200, errors.New("x")))
}
