//go:build sdl

// Package sdlpanel shows the board in an SDL window. The A and B keys act as
// the two buttons. Closing the window or pressing Escape ends the run.
package sdlpanel

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/sarchlab/lifeboard/controller"
	"github.com/sarchlab/lifeboard/grid"
	"github.com/sarchlab/lifeboard/peripheral"
)

// SDL must be driven from the main thread.
func init() {
	runtime.LockOSThread()
}

const (
	cellSize = 64
	gap      = 8
	side     = grid.Cols*cellSize + (grid.Cols+1)*gap

	// Key reads per sample. Each read pumps the event queue first, so the
	// reads see the keyboard state at three points in time.
	debounceReads = 3
)

// Panel is a window-based light matrix with keyboard buttons.
type Panel struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	cancel   context.CancelFunc
	buttons  *peripheral.EdgeTrigger
}

// New opens the window. cancel is called when the user closes it.
func New(cancel context.CancelFunc) (*Panel, error) {
	err := sdl.Init(sdl.INIT_VIDEO)
	if err != nil {
		return nil, fmt.Errorf("initializing sdl: %w", err)
	}

	window, err := sdl.CreateWindow("lifeboard",
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		side, side, sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("creating window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		_ = window.Destroy()
		sdl.Quit()

		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	p := &Panel{
		window:   window,
		renderer: renderer,
		cancel:   cancel,
	}
	p.buttons = &peripheral.EdgeTrigger{
		Source: peripheral.Debounced{
			A:     keyPin(sdl.SCANCODE_A),
			B:     keyPin(sdl.SCANCODE_B),
			Reads: debounceReads,
		},
	}

	return p, nil
}

func keyPin(code sdl.Scancode) peripheral.Pin {
	return peripheral.PolledPin{
		Poll: sdl.PumpEvents,
		Read: func() bool {
			return sdl.GetKeyboardState()[code] != 0
		},
	}
}

// Buttons returns the keyboard as a button source.
func (p *Panel) Buttons() controller.ButtonSource {
	return p.buttons
}

// Show draws the pattern and keeps the window responsive for the hold
// duration.
func (p *Panel) Show(pattern grid.Pattern, hold time.Duration) {
	p.draw(pattern)

	deadline := time.Now().Add(hold)
	for {
		p.pollEvents()

		left := time.Until(deadline)
		if left <= 0 {
			return
		}

		sdl.Delay(uint32(min(left, 10*time.Millisecond) / time.Millisecond))
	}
}

func (p *Panel) draw(pattern grid.Pattern) {
	mustDraw(p.renderer.SetDrawColor(16, 16, 16, 255))
	mustDraw(p.renderer.Clear())

	for i, lit := range pattern {
		row, col := i/grid.Cols, i%grid.Cols
		rect := &sdl.Rect{
			X: int32(gap + col*(cellSize+gap)),
			Y: int32(gap + row*(cellSize+gap)),
			W: cellSize,
			H: cellSize,
		}

		if lit {
			mustDraw(p.renderer.SetDrawColor(255, 48, 32, 255))
		} else {
			mustDraw(p.renderer.SetDrawColor(48, 16, 16, 255))
		}

		mustDraw(p.renderer.FillRect(rect))
	}

	p.renderer.Present()
}

func (p *Panel) pollEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			p.cancel()
		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Keysym.Sym == sdl.K_ESCAPE {
				p.cancel()
			}
		}
	}
}

// Close destroys the window.
func (p *Panel) Close() {
	_ = p.renderer.Destroy()
	_ = p.window.Destroy()
	sdl.Quit()
}

func mustDraw(err error) {
	if err != nil {
		log.Panicf("display unavailable: %v", err)
	}
}
