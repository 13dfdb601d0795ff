// Package display implements the monochrome CHIP-8 framebuffer.
package display

import "strings"

// Framebuffer dimensions in pixels.
const (
	Width  = 64
	Height = 32
)

// Display is a 64x32 framebuffer stored as one byte per pixel in row-major
// order. A pixel is either 0 (unset) or 1 (set).
type Display struct {
	Pixels [Width * Height]byte
}

// New returns a cleared display.
func New() *Display {
	return &Display{}
}

// Reset clears all pixels.
func (d *Display) Reset() {
	d.Pixels = [Width * Height]byte{}
}

// Pixel returns the pixel value at the given coordinate. Coordinates outside
// the framebuffer return 0.
func (d *Display) Pixel(x, y int) byte {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return 0
	}
	return d.Pixels[y*Width+x]
}

// Blit XORs an 8 pixel wide sprite onto the framebuffer with its top left
// corner at x, y. Each byte of rows is one sprite line, most significant bit
// leftmost. The start coordinate is always taken modulo the display size.
// Pixels running past the right or bottom edge are clipped, or wrapped
// around to the opposite edge if wrap is set.
// It returns whether any set pixel was turned off.
func (d *Display) Blit(x, y int, rows []byte, wrap bool) bool {
	x %= Width
	y %= Height
	collision := false

	for line, row := range rows {
		py := y + line
		if py >= Height {
			if !wrap {
				break
			}
			py %= Height
		}

		for bit := range 8 {
			if row&(0x80>>bit) == 0 {
				continue
			}
			px := x + bit
			if px >= Width {
				if !wrap {
					break
				}
				px %= Width
			}

			idx := py*Width + px
			if d.Pixels[idx] == 1 {
				collision = true
			}
			d.Pixels[idx] ^= 1
		}
	}
	return collision
}

// Text renders the framebuffer as one line per row, using on for set and
// off for unset pixels.
func (d *Display) Text(on, off rune) string {
	var sb strings.Builder
	sb.Grow((Width + 1) * Height)

	for y := range Height {
		for x := range Width {
			if d.Pixels[y*Width+x] != 0 {
				sb.WriteRune(on)
			} else {
				sb.WriteRune(off)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
