// Package script drives the keypad of a headless run from a Lua script.
//
// A script can define a global function frame(n) that is called before
// every frame with the frame number starting at 1. The following functions
// are available to it:
//
//	press(key)     holds a keypad key down
//	release(key)   releases a keypad key
//	quit()         ends the run after the current frame
//	reg(x)         returns register Vx
//	index()        returns the index register
//	pc()           returns the program counter
//	peek(address)  returns a memory byte
//	pixel(x, y)    returns a framebuffer pixel
//	print(...)     logs its arguments
package script

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrochip8/internal/computer"
	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrogolib/log"
	lua "github.com/yuin/gopher-lua"
)

const frameFunction = "frame"

// Script is a loaded Lua script.
type Script struct {
	logger   *log.Logger
	computer *computer.Computer
	state    *lua.LState
	name     string

	keys [cpu.KeyCount]bool
	quit bool
}

// New compiles and runs the top level code of a script. The name is used in
// error messages.
func New(logger *log.Logger, c *computer.Computer, name, source string) (*Script, error) {
	s := &Script{
		logger:   logger,
		computer: c,
		state:    lua.NewState(),
		name:     name,
	}
	s.register()

	if err := s.state.DoString(source); err != nil {
		s.state.Close()
		return nil, fmt.Errorf("running script %s: %w", name, err)
	}
	return s, nil
}

func (s *Script) register() {
	functions := map[string]lua.LGFunction{
		"press":   s.press,
		"release": s.release,
		"quit":    s.requestQuit,
		"reg":     s.readRegister,
		"index":   s.index,
		"pc":      s.pc,
		"peek":    s.peek,
		"pixel":   s.pixel,
		"print":   s.print,
	}
	for name, fn := range functions {
		s.state.SetGlobal(name, s.state.NewFunction(fn))
	}
}

// Keys runs the frame function for the given frame number and returns the
// resulting keypad state, and whether the script requested to quit.
func (s *Script) Keys(frame uint64) ([cpu.KeyCount]bool, bool, error) {
	fn := s.state.GetGlobal(frameFunction)
	if fn.Type() != lua.LTFunction {
		return s.keys, s.quit, nil
	}

	err := s.state.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, lua.LNumber(frame))
	if err != nil {
		return s.keys, s.quit, fmt.Errorf("calling %s in script %s: %w", frameFunction, s.name, err)
	}
	return s.keys, s.quit, nil
}

// Close releases the Lua state.
func (s *Script) Close() {
	s.state.Close()
}

func (s *Script) checkKey(L *lua.LState) int {
	key := L.CheckInt(1)
	if key < 0 || key >= cpu.KeyCount {
		L.ArgError(1, fmt.Sprintf("key %d out of range", key))
	}
	return key
}

func (s *Script) press(L *lua.LState) int {
	s.keys[s.checkKey(L)] = true
	return 0
}

func (s *Script) release(L *lua.LState) int {
	s.keys[s.checkKey(L)] = false
	return 0
}

func (s *Script) requestQuit(*lua.LState) int {
	s.quit = true
	return 0
}

func (s *Script) readRegister(L *lua.LState) int {
	x := L.CheckInt(1)
	if x < 0 || x >= cpu.RegisterCount {
		L.ArgError(1, fmt.Sprintf("register %d out of range", x))
	}
	L.Push(lua.LNumber(s.computer.CPU().V[x]))
	return 1
}

func (s *Script) index(L *lua.LState) int {
	L.Push(lua.LNumber(s.computer.CPU().I))
	return 1
}

func (s *Script) pc(L *lua.LState) int {
	L.Push(lua.LNumber(s.computer.CPU().PC))
	return 1
}

func (s *Script) peek(L *lua.LState) int {
	address := L.CheckInt(1)
	L.Push(lua.LNumber(s.computer.CPU().Memory[address&(cpu.MemorySize-1)]))
	return 1
}

func (s *Script) pixel(L *lua.LState) int {
	x := L.CheckInt(1)
	y := L.CheckInt(2)
	L.Push(lua.LNumber(s.computer.Display().Pixel(x, y)))
	return 1
}

func (s *Script) print(L *lua.LState) int {
	args := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		args = append(args, L.ToStringMeta(L.Get(i)).String())
	}
	s.logger.Info("Script output", log.String("script", s.name), log.String("text", strings.Join(args, " ")))
	return 0
}
