// Package terminal implements a frontend that renders the framebuffer with
// unicode half blocks and reads the keypad from raw mode stdin.
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/clock"
	"github.com/retroenv/retrochip8/internal/cpu"
	"github.com/retroenv/retrochip8/internal/display"
)

const (
	escHome       = "\x1b[H"
	escClear      = "\x1b[2J"
	escHideCursor = "\x1b[?25l"
	escShowCursor = "\x1b[?25h"
)

// byteSource delivers the bytes typed since the last call.
type byteSource interface {
	Drain() []byte
}

// Terminal is a clock.Frontend writing to a terminal.
type Terminal struct {
	out      io.Writer
	input    byteSource
	buzzer   audio.Buzzer
	keyboard keyboard
	status   string
}

var _ clock.Frontend = (*Terminal)(nil)

// New returns a terminal frontend writing to out and reading typed bytes
// from input.
func New(out io.Writer, input byteSource, buzzer audio.Buzzer) *Terminal {
	if buzzer == nil {
		buzzer = audio.Silent{}
	}
	return &Terminal{
		out:    out,
		input:  input,
		buzzer: buzzer,
	}
}

// SetStatus sets the text shown below the framebuffer.
func (t *Terminal) SetStatus(status string) {
	t.status = status
}

// Open clears the screen and hides the cursor.
func (t *Terminal) Open() error {
	if _, err := io.WriteString(t.out, escClear+escHideCursor); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	return nil
}

// Close shows the cursor again and moves it below the framebuffer.
func (t *Terminal) Close() error {
	t.buzzer.SetActive(false)
	if _, err := io.WriteString(t.out, escShowCursor+"\r\n"); err != nil {
		return fmt.Errorf("restoring terminal: %w", err)
	}
	return nil
}

// PollKeys returns the keypad state. Terminals do not report key releases,
// a typed key is held down for a few frames.
func (t *Terminal) PollKeys() ([cpu.KeyCount]bool, error) {
	if quit := t.keyboard.feed(t.input.Drain()); quit {
		return [cpu.KeyCount]bool{}, clock.ErrQuit
	}
	return t.keyboard.next(), nil
}

// Present redraws the framebuffer if it changed and updates the buzzer.
func (t *Terminal) Present(frame clock.Frame, d *display.Display) error {
	t.buzzer.SetActive(frame.Sound)
	if !frame.Redraw && frame.Number > 1 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(escHome)
	sb.WriteString(Render(d))
	if t.status != "" {
		sb.WriteString(t.status)
		sb.WriteString("\r\n")
	}
	if _, err := io.WriteString(t.out, sb.String()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// halfBlocks is indexed by top pixel | bottom pixel<<1.
var halfBlocks = [4]rune{' ', '▀', '▄', '█'}

// Render returns the framebuffer as text, two pixel rows per line. Lines
// end in CRLF as raw mode disables the newline translation.
func Render(d *display.Display) string {
	var sb strings.Builder
	for y := 0; y < display.Height; y += 2 {
		for x := range display.Width {
			idx := d.Pixel(x, y) | d.Pixel(x, y+1)<<1
			sb.WriteRune(halfBlocks[idx])
		}
		sb.WriteString("\r\n")
	}
	return sb.String()
}
