package computer

import (
	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrochip8/internal/opcode"
)

// handler executes one decoded instruction. The program counter already
// points to the following instruction when a handler runs.
type handler func(c *Computer, op opcode.Opcode) error

// classes maps the instruction class (high nibble) to its handler. Classes
// that overload the low bits dispatch a second time through a sub table.
var classes = [16]handler{
	0x0: dispatchSystem,
	0x1: exec((*cpu.CPU).Jump),
	0x2: call,
	0x3: exec((*cpu.CPU).SkipEqualImmediate),
	0x4: exec((*cpu.CPU).SkipNotEqualImmediate),
	0x5: exec((*cpu.CPU).SkipEqualRegister),
	0x6: exec((*cpu.CPU).LoadImmediate),
	0x7: exec((*cpu.CPU).AddImmediate),
	0x8: dispatchArithmetic,
	0x9: exec((*cpu.CPU).SkipNotEqualRegister),
	0xA: exec((*cpu.CPU).LoadIndex),
	0xB: exec((*cpu.CPU).JumpOffset),
	0xC: exec((*cpu.CPU).Random),
	0xD: draw,
	0xE: dispatchKeys,
	0xF: dispatchMisc,
}

// system instructions of class 0, keyed by the full opcode.
var system = map[opcode.Opcode]handler{
	0x00E0: clearScreen,
	0x00EE: ret,
}

// arithmetic instructions of class 8, keyed by the low nibble.
var arithmetic = [16]handler{
	0x0: exec((*cpu.CPU).LoadRegister),
	0x1: exec((*cpu.CPU).Or),
	0x2: exec((*cpu.CPU).And),
	0x3: exec((*cpu.CPU).Xor),
	0x4: exec((*cpu.CPU).Add),
	0x5: exec((*cpu.CPU).Sub),
	0x6: exec((*cpu.CPU).ShiftRight),
	0x7: exec((*cpu.CPU).SubReverse),
	0xE: exec((*cpu.CPU).ShiftLeft),
}

// key instructions of class E, keyed by the low byte.
var keyOps = [256]handler{
	0x9E: skipKeyPressed,
	0xA1: skipKeyNotPressed,
}

// misc instructions of class F, keyed by the low byte.
var misc = [256]handler{
	0x07: loadDelay,
	0x0A: waitKey,
	0x15: setDelay,
	0x18: setSound,
	0x1E: exec((*cpu.CPU).AddIndex),
	0x29: exec((*cpu.CPU).LoadGlyph),
	0x33: exec((*cpu.CPU).StoreBCD),
	0x55: exec((*cpu.CPU).StoreRegisters),
	0x65: exec((*cpu.CPU).LoadRegisters),
}

func exec(fn func(*cpu.CPU, opcode.Opcode)) handler {
	return func(c *Computer, op opcode.Opcode) error {
		fn(c.cpu, op)
		return nil
	}
}

func dispatchSystem(c *Computer, op opcode.Opcode) error {
	h, ok := system[op]
	if !ok {
		return ErrUnknownOpcode
	}
	return h(c, op)
}

func dispatchArithmetic(c *Computer, op opcode.Opcode) error {
	return dispatchByte(c, op, arithmetic[op.N()])
}

func dispatchKeys(c *Computer, op opcode.Opcode) error {
	return dispatchByte(c, op, keyOps[op.NN()])
}

func dispatchMisc(c *Computer, op opcode.Opcode) error {
	return dispatchByte(c, op, misc[op.NN()])
}

func dispatchByte(c *Computer, op opcode.Opcode, h handler) error {
	if h == nil {
		return ErrUnknownOpcode
	}
	return h(c, op)
}

func clearScreen(c *Computer, _ opcode.Opcode) error {
	c.cpu.ClearScreen(c.display)
	c.effects.Clear = true
	c.effects.Redraw = true
	return nil
}

func ret(c *Computer, _ opcode.Opcode) error {
	return c.cpu.Return()
}

func call(c *Computer, op opcode.Opcode) error {
	return c.cpu.Call(op)
}

func draw(c *Computer, op opcode.Opcode) error {
	c.cpu.Draw(op, c.display)
	c.effects.Redraw = true
	return nil
}

func skipKeyPressed(c *Computer, op opcode.Opcode) error {
	c.cpu.SkipKeyPressed(op, &c.keys)
	return nil
}

func skipKeyNotPressed(c *Computer, op opcode.Opcode) error {
	c.cpu.SkipKeyNotPressed(op, &c.keys)
	return nil
}

func loadDelay(c *Computer, op opcode.Opcode) error {
	c.cpu.LoadDelay(op, &c.timers)
	return nil
}

func setDelay(c *Computer, op opcode.Opcode) error {
	c.cpu.SetDelay(op, &c.timers)
	return nil
}

func setSound(c *Computer, op opcode.Opcode) error {
	c.cpu.SetSound(op, &c.timers)
	return nil
}

// waitKey implements Fx0A. It only records the destination register, the
// wait is resolved by the caller delivering a key press.
func waitKey(c *Computer, op opcode.Opcode) error {
	c.waiting = true
	c.waitRegister = op.X()
	return nil
}
