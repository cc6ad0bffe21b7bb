//go:build !sdl

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/sarchlab/lifeboard/config"
	"github.com/sarchlab/lifeboard/controller"
	"github.com/sarchlab/lifeboard/peripheral"
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
	case config.DisplayTerminal:
		term, closeTerm := openTerminal(in, out, cancel)
		return term, term, closeTerm, nil
	case config.DisplayNone:
		return peripheral.HeadlessDisplay{}, nil, func() {}, nil
	default:
		return nil, nil, nil, fmt.Errorf(
			"%w: display %q is not built in, rebuild with -tags sdl",
			config.ErrInvalidConfig, kind)
	}
}
