package script

import (
	"testing"

	"github.com/retroenv/retrochip8/internal/computer"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func newTestComputer(t *testing.T, program ...byte) *computer.Computer {
	t.Helper()

	c, err := computer.New(log.NewTestLogger(t), computer.Config{})
	assert.NoError(t, err)
	c.Reset()
	assert.NoError(t, c.LoadProgram(program))
	return c
}

func TestScript_Keys(t *testing.T) {
	c := newTestComputer(t, 0x12, 0x00)
	s, err := New(log.NewTestLogger(t), c, "keys.lua", `
function frame(n)
  if n == 2 then press(5) end
  if n == 3 then release(5); press(15) end
  if n == 4 then quit() end
end
`)
	assert.NoError(t, err)
	defer s.Close()

	keys, quit, err := s.Keys(1)
	assert.NoError(t, err)
	assert.False(t, quit)
	assert.False(t, keys[5])

	keys, _, err = s.Keys(2)
	assert.NoError(t, err)
	assert.True(t, keys[5])

	keys, _, err = s.Keys(3)
	assert.NoError(t, err)
	assert.False(t, keys[5])
	assert.True(t, keys[15])

	_, quit, err = s.Keys(4)
	assert.NoError(t, err)
	assert.True(t, quit)
}

func TestScript_MachineState(t *testing.T) {
	c := newTestComputer(t,
		0x63, 0x2A, // LD V3, $2A
		0xA2, 0x00, // LD I, $200
		0xD0, 0x01, // DRW V0, V0, 1
	)
	for range 3 {
		_, err := c.Cycle()
		assert.NoError(t, err)
	}

	s, err := New(log.NewTestLogger(t), c, "state.lua", `
function frame(n)
  assert(reg(3) == 42, "reg")
  assert(index() == 0x200, "index")
  assert(pc() == 0x206, "pc")
  assert(peek(0x200) == 0x63, "peek")
  assert(pixel(1, 0) == 1, "pixel set")
  assert(pixel(0, 0) == 0, "pixel unset")
  print("state ok", n)
  quit()
end
`)
	assert.NoError(t, err)
	defer s.Close()

	_, quit, err := s.Keys(1)
	assert.NoError(t, err)
	assert.True(t, quit)
}

func TestScript_NoFrameFunction(t *testing.T) {
	c := newTestComputer(t, 0x12, 0x00)
	s, err := New(log.NewTestLogger(t), c, "hold.lua", `press(1)`)
	assert.NoError(t, err)
	defer s.Close()

	keys, quit, err := s.Keys(1)
	assert.NoError(t, err)
	assert.False(t, quit)
	assert.True(t, keys[1])
}

func TestScript_Errors(t *testing.T) {
	c := newTestComputer(t, 0x12, 0x00)

	_, err := New(log.NewTestLogger(t), c, "broken.lua", `function (`)
	assert.ErrorContains(t, err, "running script broken.lua")

	s, err := New(log.NewTestLogger(t), c, "range.lua", `function frame(n) press(16) end`)
	assert.NoError(t, err)
	defer s.Close()

	_, _, err = s.Keys(1)
	assert.ErrorContains(t, err, "calling frame in script range.lua")
}
