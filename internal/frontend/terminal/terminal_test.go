package terminal

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/clock"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrogolib/assert"
)

type fakeInput struct {
	chunks [][]byte
}

func (f *fakeInput) Drain() []byte {
	if len(f.chunks) == 0 {
		return nil
	}
	data := f.chunks[0]
	f.chunks = f.chunks[1:]
	return data
}

type recordingBuzzer struct {
	states []bool
}

func (r *recordingBuzzer) SetActive(active bool) {
	r.states = append(r.states, active)
}

func TestRender(t *testing.T) {
	d := display.New()
	d.Blit(0, 0, []byte{0x80, 0x00}, false) // top only
	d.Blit(1, 1, []byte{0x80}, false)       // bottom only
	d.Blit(2, 0, []byte{0x80, 0x80}, false) // both

	out := Render(d)
	lines := strings.Split(strings.TrimSuffix(out, "\r\n"), "\r\n")
	assert.Len(t, lines, display.Height/2)
	assert.True(t, strings.HasPrefix(lines[0], "▀▄█ "))
	assert.Equal(t, strings.Repeat(" ", display.Width), lines[1])
}

func TestTerminal_PollKeys(t *testing.T) {
	in := &fakeInput{chunks: [][]byte{[]byte("4x")}}
	term := New(&bytes.Buffer{}, in, nil)

	keys, err := term.PollKeys()
	assert.NoError(t, err)
	assert.True(t, keys[0xC])
	assert.True(t, keys[0x0])
	assert.False(t, keys[0x1])

	for range holdFrames - 1 {
		keys, err = term.PollKeys()
		assert.NoError(t, err)
		assert.True(t, keys[0xC])
	}

	keys, err = term.PollKeys()
	assert.NoError(t, err)
	assert.False(t, keys[0xC])
}

func TestTerminal_PollKeysQuit(t *testing.T) {
	in := &fakeInput{chunks: [][]byte{{'q', keyEscape}}}
	term := New(&bytes.Buffer{}, in, nil)

	_, err := term.PollKeys()
	assert.True(t, errors.Is(err, clock.ErrQuit))
}

func TestTerminal_Present(t *testing.T) {
	var out bytes.Buffer
	buzzer := &recordingBuzzer{}
	term := New(&out, &fakeInput{}, buzzer)
	term.SetStatus("pong.ch8")
	d := display.New()

	assert.NoError(t, term.Present(clock.Frame{Number: 1}, d))
	assert.True(t, strings.HasPrefix(out.String(), escHome))
	assert.True(t, strings.HasSuffix(out.String(), "pong.ch8\r\n"))

	out.Reset()
	assert.NoError(t, term.Present(clock.Frame{Number: 2, Sound: true}, d))
	assert.Equal(t, "", out.String())

	assert.NoError(t, term.Present(clock.Frame{Number: 3, Redraw: true}, d))
	assert.NotEmpty(t, out.String())
	assert.Equal(t, []bool{false, true, false}, buzzer.states)
}

func TestTerminal_OpenClose(t *testing.T) {
	var out bytes.Buffer
	term := New(&out, &fakeInput{}, nil)

	assert.NoError(t, term.Open())
	assert.Contains(t, out.String(), escHideCursor)
	assert.NoError(t, term.Close())
	assert.Contains(t, out.String(), escShowCursor)
}
