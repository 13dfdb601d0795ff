package display

import (
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDisplay_Blit(t *testing.T) {
	d := New()
	collision := d.Blit(0, 0, []byte{0b10100000}, false)

	assert.False(t, collision)
	assert.Equal(t, byte(1), d.Pixel(0, 0))
	assert.Equal(t, byte(0), d.Pixel(1, 0))
	assert.Equal(t, byte(1), d.Pixel(2, 0))
}

func TestDisplay_BlitSelfInverse(t *testing.T) {
	d := New()
	d.Blit(2, 3, []byte{0x80}, false)
	before := d.Pixels

	sprite := []byte{0xF0, 0x90, 0xF0, 0x90, 0x90}
	collision := d.Blit(2, 3, sprite, false)
	assert.True(t, collision)

	collision = d.Blit(2, 3, sprite, false)
	assert.True(t, collision)
	assert.Equal(t, before, d.Pixels)
}

func TestDisplay_BlitEdges(t *testing.T) {
	tests := []struct {
		name  string
		x, y  int
		wrap  bool
		setX  int
		setY  int
		isSet bool
	}{
		{"clip right edge", 60, 0, false, 0, 0, false},
		{"wrap right edge", 60, 0, true, 0, 0, true},
		{"clip bottom edge", 0, 31, false, 0, 0, false},
		{"wrap bottom edge", 0, 31, true, 0, 0, true},
		{"start coordinate modulo", 64 + 5, 32 + 2, false, 5, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New()
			d.Blit(tt.x, tt.y, []byte{0xFF, 0xFF}, tt.wrap)
			assert.Equal(t, tt.isSet, d.Pixel(tt.setX, tt.setY) == 1)
		})
	}
}

func TestDisplay_ClipKeepsVisiblePart(t *testing.T) {
	d := New()
	d.Blit(62, 0, []byte{0xFF}, false)

	assert.Equal(t, byte(1), d.Pixel(62, 0))
	assert.Equal(t, byte(1), d.Pixel(63, 0))
	for x := range 6 {
		assert.Equal(t, byte(0), d.Pixel(x, 0))
	}
}

func TestDisplay_Reset(t *testing.T) {
	d := New()
	d.Blit(10, 10, []byte{0xFF, 0xFF}, false)
	d.Reset()
	assert.Equal(t, [Width * Height]byte{}, d.Pixels)
}

func TestDisplay_PixelOutOfRange(t *testing.T) {
	d := New()
	assert.Equal(t, byte(0), d.Pixel(-1, 0))
	assert.Equal(t, byte(0), d.Pixel(Width, 0))
	assert.Equal(t, byte(0), d.Pixel(0, Height))
}

func TestDisplay_Text(t *testing.T) {
	d := New()
	d.Blit(0, 0, []byte{0xC0}, false)
	d.Blit(63, 31, []byte{0x80}, false)

	lines := strings.Split(strings.TrimSuffix(d.Text('#', '.'), "\n"), "\n")
	assert.Len(t, lines, Height)
	assert.Equal(t, "##"+strings.Repeat(".", Width-2), lines[0])
	assert.Equal(t, strings.Repeat(".", Width), lines[1])
	assert.Equal(t, strings.Repeat(".", Width-1)+"#", lines[Height-1])
}
