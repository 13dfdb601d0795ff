// Package keypad maps the 16 key CHIP-8 hex keypad onto a QWERTY keyboard.
//
// The keypad of the COSMAC VIP is laid out as
//
//	1 2 3 C
//	4 5 6 D
//	7 8 9 E
//	A 0 B F
//
// and occupies the 4x4 block 1234/QWER/ASDF/ZXCV of the keyboard.
package keypad

import "github.com/retroenv/retrochip8/internal/cpu"

// Layout lists the keyboard key of every keypad key, indexed by the keypad
// key value.
const Layout = "x123qweasdzc4rfv"

// Key returns the keypad key of a keyboard character. Upper case letters
// are accepted.
func Key(r rune) (byte, bool) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	for key, c := range Layout {
		if c == r {
			return byte(key), true
		}
	}
	return 0, false
}

// Rune returns the keyboard character of a keypad key.
func Rune(key byte) rune {
	return rune(Layout[key%cpu.KeyCount])
}
