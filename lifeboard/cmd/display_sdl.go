//go:build sdl

package cmd

import (
	"context"
	"io"

	"github.com/sarchlab/lifeboard/config"
	"github.com/sarchlab/lifeboard/controller"
	"github.com/sarchlab/lifeboard/peripheral"
	"github.com/sarchlab/lifeboard/peripheral/sdlpanel"
)

// openDisplay creates the display of a run. The returned button source is
// non-nil when the display also reads buttons.
func openDisplay(
	kind config.Display,
	in io.Reader,
	out io.Writer,
	cancel context.CancelFunc,
) (controller.Display, controller.ButtonSource, func(), error) {
	switch kind {
	case config.DisplaySDL:
		panel, err := sdlpanel.New(cancel)
		if err != nil {
			return nil, nil, nil, err
		}

		return panel, panel.Buttons(), panel.Close, nil
	case config.DisplayNone:
		return peripheral.HeadlessDisplay{}, nil, func() {}, nil
	default:
		term, closeTerm := openTerminal(in, out, cancel)
		return term, term, closeTerm, nil
	}
}
