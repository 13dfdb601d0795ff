package terminal

import (
	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrochip8/internal/keypad"
)

// holdFrames is the number of frames a typed key stays pressed.
const holdFrames = 6

const (
	keyCtrlC  = 0x03
	keyEscape = 0x1B
)

type keyboard struct {
	held [cpu.KeyCount]int // remaining frames per key
}

// feed processes typed bytes and returns whether a quit key was typed.
func (k *keyboard) feed(input []byte) bool {
	for _, b := range input {
		switch b {
		case keyCtrlC, keyEscape:
			return true
		}
		if key, ok := keypad.Key(rune(b)); ok {
			k.held[key] = holdFrames
		}
	}
	return false
}

// next returns the keypad state of the current frame and ages the held
// keys by one frame.
func (k *keyboard) next() [cpu.KeyCount]bool {
	var keys [cpu.KeyCount]bool
	for key, frames := range k.held {
		if frames > 0 {
			keys[key] = true
			k.held[key]--
		}
	}
	return keys
}
