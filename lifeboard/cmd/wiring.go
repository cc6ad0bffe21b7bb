package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/browser"

	"github.com/sarchlab/lifeboard/config"
	"github.com/sarchlab/lifeboard/controller"
	"github.com/sarchlab/lifeboard/grid"
	"github.com/sarchlab/lifeboard/monitoring"
	"github.com/sarchlab/lifeboard/peripheral"
	"github.com/sarchlab/lifeboard/recording"
)

const controllerName = "Lifeboard"

func newRandomSource(seed uint64) controller.RandomSource {
	if seed == 0 {
		return peripheral.SystemSource{}
	}

	return peripheral.NewSeededSource(seed)
}

// newButtons creates the button source of a mode. The stdin mode reads the
// keyboard of the display, and has no buttons without one. A script is edge
// triggered like a real button B, so holding B flips the board once.
func newButtons(
	mode string,
	keyboard controller.ButtonSource,
) (controller.ButtonSource, error) {
	switch {
	case mode == config.ButtonsNone:
		return peripheral.NoButtons{}, nil
	case mode == config.ButtonsStdin:
		if keyboard == nil {
			return peripheral.NoButtons{}, nil
		}

		return keyboard, nil
	case strings.HasPrefix(mode, config.ScriptPrefix):
		script, err := peripheral.ParseScript(
			strings.TrimPrefix(mode, config.ScriptPrefix))
		if err != nil {
			return nil, err
		}

		return &peripheral.EdgeTrigger{Source: script}, nil
	default:
		return nil, fmt.Errorf("%w: buttons %q", config.ErrInvalidConfig, mode)
	}
}

// openTerminal starts a terminal and returns it with the function that
// stops it.
func openTerminal(
	in io.Reader,
	out io.Writer,
	quit func(),
) (*peripheral.Terminal, func()) {
	term := peripheral.NewTerminal(in, out, quit)
	term.Start()

	return term, func() {
		err := term.Close()
		if err != nil {
			notice("Cannot restore the terminal: %v", err)
		}
	}
}

// loadBoard reads the first board from a file.
func loadBoard(path string) (grid.Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return grid.Board{}, fmt.Errorf("reading board: %w", err)
	}

	b, err := grid.ParseBoard(string(data))
	if err != nil {
		return grid.Board{}, fmt.Errorf("%s: %w", path, err)
	}

	return b, nil
}

// buildController builds the controller of a run from the settings.
func buildController(
	c *config.Config,
	buttons controller.ButtonSource,
	display controller.Display,
) (*controller.Controller, error) {
	builder := controller.MakeBuilder().
		WithRandomSource(newRandomSource(c.Seed)).
		WithButtons(buttons).
		WithDisplay(display)

	if c.BoardPath != "" {
		b, err := loadBoard(c.BoardPath)
		if err != nil {
			return nil, err
		}

		builder = builder.WithInitialBoard(b)
	}

	return builder.Build(controllerName), nil
}

// observers are the optional hooks of a run.
type observers struct {
	recorder *recording.Recorder
	monitor  *monitoring.Monitor
}

func attachObservers(
	c *config.Config,
	ctrl *controller.Controller,
	target monitoring.Pausable,
) (*observers, error) {
	o := &observers{}

	if c.Record {
		r, err := recording.New(c.RecordPath, controllerName)
		if err != nil {
			return nil, err
		}

		ctrl.AcceptHook(r)
		o.recorder = r
	}

	if c.Monitor {
		m := monitoring.NewMonitor().WithPortNumber(c.MonitorPort)
		m.RegisterPausable(target)
		ctrl.AcceptHook(m)
		m.StartServer()

		if c.OpenBrowser {
			err := browser.OpenURL(m.URL())
			if err != nil {
				notice("Cannot open browser: %v", err)
			}
		}

		o.monitor = m
	}

	return o, nil
}

func (o *observers) close() error {
	if o.recorder == nil {
		return nil
	}

	return o.recorder.Close()
}
