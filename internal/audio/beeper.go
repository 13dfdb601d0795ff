package audio

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// Beeper plays a Tone on the default audio device.
type Beeper struct {
	mu     sync.Mutex
	tone   *Tone
	ctx    *oto.Context
	player *oto.Player
}

// NewBeeper opens the audio device and starts playing a silent tone.
// Only one beeper can exist per process.
func NewBeeper() (*Beeper, error) {
	opts := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, ready, err := oto.NewContext(opts)
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	tone := NewTone(Frequency)
	player := ctx.NewPlayer(tone)
	player.Play()

	return &Beeper{
		tone:   tone,
		ctx:    ctx,
		player: player,
	}, nil
}

// SetActive switches the buzzer on or off.
func (b *Beeper) SetActive(active bool) {
	b.tone.SetActive(active)
}

// Close stops the playback.
func (b *Beeper) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.player == nil {
		return nil
	}
	err := b.player.Close()
	b.player = nil
	if err != nil {
		return fmt.Errorf("closing audio player: %w", err)
	}
	return nil
}

// Buzzer switches a sound output on and off.
type Buzzer interface {
	SetActive(active bool)
}

// Silent is a buzzer that discards all state changes.
type Silent struct{}

// SetActive does nothing.
func (Silent) SetActive(bool) {}
