// Package window implements a desktop window frontend based on ebiten.
package window

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/clock"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrogolib/log"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

// Config contains the window settings.
type Config struct {
	Title  string
	Scale  int          // window pixels per framebuffer pixel
	Buzzer audio.Buzzer // sound output, nil mutes
}

// Window runs the clock from the ebiten game loop.
type Window struct {
	logger *log.Logger
	clock  *clock.Clock
	cfg    Config
	ctx    context.Context

	image      *ebiten.Image
	pixels     []byte
	frame      clock.Frame
	halted     error
	showStatus bool

	clipboardOnce sync.Once
	clipboardOK   bool
}

var colors = palette{
	on:  color.RGBA{R: 0xE0, G: 0xF0, B: 0xD0, A: 0xFF},
	off: color.RGBA{R: 0x10, G: 0x18, B: 0x10, A: 0xFF},
}

// New returns a new window frontend.
func New(logger *log.Logger, clk *clock.Clock, cfg Config) *Window {
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	if cfg.Buzzer == nil {
		cfg.Buzzer = audio.Silent{}
	}
	return &Window{
		logger:     logger,
		clock:      clk,
		cfg:        cfg,
		pixels:     make([]byte, display.Width*display.Height*4),
		showStatus: true,
	}
}

// Run opens the window and blocks until it gets closed or the context gets
// cancelled. It returns the error that halted the computer, if the computer
// is still halted when the window closes.
func (w *Window) Run(ctx context.Context) error {
	w.ctx = ctx
	fillPixels(w.pixels, w.clock.Computer().Display(), colors)

	ebiten.SetWindowSize(display.Width*w.cfg.Scale, display.Height*w.cfg.Scale)
	ebiten.SetWindowTitle(w.cfg.Title)
	ebiten.SetWindowResizable(true)
	ebiten.SetTPS(clock.FrameRate)

	defer w.cfg.Buzzer.SetActive(false)
	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("running window: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return w.halted
}

// Update runs one frame. It implements ebiten.Game.
func (w *Window) Update() error {
	if w.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	w.handleHotkeys()

	if w.halted != nil {
		w.cfg.Buzzer.SetActive(false)
		return nil
	}

	frame, err := w.clock.Step(pressedKeys(ebiten.IsKeyPressed))
	w.frame = frame
	if frame.Redraw {
		fillPixels(w.pixels, w.clock.Computer().Display(), colors)
	}
	w.cfg.Buzzer.SetActive(frame.Sound && err == nil)

	if err != nil {
		w.halted = err
		w.logger.Error("Emulation halted, press F5 to restart", log.Err(err))
	}
	return nil
}

func (w *Window) handleHotkeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		w.showStatus = !w.showStatus
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		w.restart()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		w.copyScreen()
	}
}

func (w *Window) restart() {
	if err := w.clock.Computer().Restart(); err != nil {
		w.logger.Error("Restarting failed", log.Err(err))
		return
	}
	w.halted = nil
	fillPixels(w.pixels, w.clock.Computer().Display(), colors)
	w.logger.Info("Program restarted")
}

// copyScreen puts the framebuffer as text into the clipboard.
func (w *Window) copyScreen() {
	w.clipboardOnce.Do(func() {
		if err := clipboard.Init(); err != nil {
			w.logger.Error("Clipboard is not available", log.Err(err))
			return
		}
		w.clipboardOK = true
	})
	if !w.clipboardOK {
		return
	}

	clipboard.Write(clipboard.FmtText, []byte(w.clock.Computer().Display().Text('#', '.')))
	w.logger.Info("Screen copied to clipboard")
}

// Draw renders the framebuffer scaled to the window. It implements
// ebiten.Game.
func (w *Window) Draw(screen *ebiten.Image) {
	if w.image == nil {
		w.image = ebiten.NewImage(display.Width, display.Height)
	}
	w.image.WritePixels(w.pixels)

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(w.cfg.Scale), float64(w.cfg.Scale))
	screen.DrawImage(w.image, opts)

	if w.showStatus {
		w.drawStatus(screen)
	}
}

func (w *Window) drawStatus(screen *ebiten.Image) {
	face := basicfont.Face7x13
	line := statusLine(w.frame, w.clock.Computer().CPU().PC, w.halted)
	textColor := color.RGBA{R: 0x90, G: 0x90, B: 0x90, A: 0xFF}
	if w.halted != nil {
		textColor = color.RGBA{R: 0xF0, G: 0x40, B: 0x40, A: 0xFF}
	}
	text.Draw(screen, line, face, 4, 14, textColor)
}

// Layout returns the fixed logical screen size. It implements ebiten.Game.
func (w *Window) Layout(_, _ int) (int, int) {
	return display.Width * w.cfg.Scale, display.Height * w.cfg.Scale
}
