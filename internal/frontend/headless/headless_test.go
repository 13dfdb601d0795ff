package headless

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/clock"
	"github.com/retroenv/retrochip8/internal/computer"
	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func newTestClock(t *testing.T, program ...byte) *clock.Clock {
	t.Helper()

	logger := log.NewTestLogger(t)
	c, err := computer.New(logger, computer.Config{})
	assert.NoError(t, err)
	c.Reset()
	assert.NoError(t, c.LoadProgram(program))

	clk, err := clock.New(logger, c, clock.Config{Speed: 600})
	assert.NoError(t, err)
	return clk
}

type scriptedKeys struct {
	pressAt uint64
	quitAt  uint64
	err     error
}

func (s scriptedKeys) Keys(frame uint64) ([cpu.KeyCount]bool, bool, error) {
	var keys [cpu.KeyCount]bool
	keys[0xA] = frame >= s.pressAt
	return keys, s.quitAt > 0 && frame >= s.quitAt, s.err
}

func TestRunner_Cycles(t *testing.T) {
	clk := newTestClock(t,
		0x70, 0x01, // ADD V0, $01
		0x12, 0x00, // JP $200
	)

	var out bytes.Buffer
	r := New(log.NewTestLogger(t), clk, Config{Cycles: 25, Output: &out})
	assert.NoError(t, r.Run(context.Background()))

	assert.Equal(t, uint64(25), clk.Cycles())
	assert.Equal(t, uint64(3), clk.Frames())
	assert.Equal(t, byte(13), clk.Computer().CPU().V[0])
	assert.Equal(t, 32, strings.Count(out.String(), "\n"))
}

func TestRunner_DrawsFramebuffer(t *testing.T) {
	clk := newTestClock(t,
		0xD0, 0x15, // DRW V0, V1, 5
		0x12, 0x02, // JP $202
	)

	var out bytes.Buffer
	r := New(log.NewTestLogger(t), clk, Config{Cycles: 2, Output: &out})
	assert.NoError(t, r.Run(context.Background()))

	// glyph 0 is F0 90 90 90 F0
	lines := strings.Split(out.String(), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "####...."))
	assert.True(t, strings.HasPrefix(lines[1], "#..#...."))
}

func TestRunner_StopsOnKeyWait(t *testing.T) {
	clk := newTestClock(t, 0xF0, 0x0A)

	r := New(log.NewTestLogger(t), clk, Config{})
	assert.NoError(t, r.Run(context.Background()))
	assert.True(t, clk.Computer().Waiting())
}

func TestRunner_ScriptedInput(t *testing.T) {
	clk := newTestClock(t,
		0xF2, 0x0A, // LD V2, K
		0x12, 0x02, // JP $202
	)

	r := New(log.NewTestLogger(t), clk, Config{Input: scriptedKeys{pressAt: 3, quitAt: 5}})
	assert.NoError(t, r.Run(context.Background()))
	assert.False(t, clk.Computer().Waiting())
	assert.Equal(t, byte(0xA), clk.Computer().CPU().V[2])
	assert.Equal(t, uint64(4), clk.Frames())
}

func TestRunner_Errors(t *testing.T) {
	clk := newTestClock(t, 0x00, 0xEE)
	r := New(log.NewTestLogger(t), clk, Config{})
	err := r.Run(context.Background())
	assert.True(t, errors.Is(err, cpu.ErrStackUnderflow))

	errScript := errors.New("script failed")
	clk = newTestClock(t, 0x12, 0x00)
	r = New(log.NewTestLogger(t), clk, Config{Input: scriptedKeys{err: errScript}})
	err = r.Run(context.Background())
	assert.True(t, errors.Is(err, errScript))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	clk = newTestClock(t, 0x12, 0x00)
	r = New(log.NewTestLogger(t), clk, Config{})
	err = r.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}
