// Package audio implements the buzzer of the sound timer.
package audio

import (
	"encoding/binary"
	"sync/atomic"
)

// Sample format of the generated tone.
const (
	SampleRate     = 44100
	BytesPerSample = 2 // signed 16 bit little endian mono
	Frequency      = 440
	amplitude      = 0x1800
)

// Tone is an endless square wave that is silent while inactive.
// Read can be called concurrently to SetActive.
type Tone struct {
	active atomic.Bool
	phase  int // sample position inside the current period
	period int // samples per period
}

// NewTone returns an inactive tone of the given frequency in Hz.
func NewTone(frequency int) *Tone {
	if frequency <= 0 {
		frequency = Frequency
	}
	return &Tone{period: max(2, SampleRate/frequency)}
}

// SetActive switches the tone on or off.
func (t *Tone) SetActive(active bool) {
	t.active.Store(active)
}

// Active returns whether the tone is audible.
func (t *Tone) Active() bool {
	return t.active.Load()
}

// Read fills p with samples. It never returns an error.
func (t *Tone) Read(p []byte) (int, error) {
	samples := len(p) / BytesPerSample
	active := t.active.Load()

	for i := range samples {
		var value int16
		if active {
			value = amplitude
			if t.phase >= t.period/2 {
				value = -amplitude
			}
		}
		binary.LittleEndian.PutUint16(p[i*BytesPerSample:], uint16(value))
		t.phase = (t.phase + 1) % t.period
	}

	n := samples * BytesPerSample
	clear(p[n:])
	return len(p), nil
}
