package peripheral

import (
	"io"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sarchlab/lifeboard/controller"
	"github.com/sarchlab/lifeboard/grid"
)

const terminalHelp = "a: shuffle  b: flip  q: quit"

// Terminal is the light matrix and the two buttons in a terminal, run as a
// Bubble Tea program. Key a holds button A for the next tick and key b
// presses button B once.
type Terminal struct {
	program *tea.Program
	keys    *keyLatch
	send    func(tea.Msg)
	sleep   func(time.Duration)

	done chan struct{}
	err  error
}

type keyLatch struct {
	a, b atomic.Bool
}

// frameMsg carries the pattern to draw.
type frameMsg grid.Pattern

type terminalModel struct {
	keys  *keyLatch
	quit  func()
	frame grid.Pattern
	shown bool
}

// NewTerminal creates a terminal that reads keys from in and draws on out.
// Pressing q, Esc or Ctrl+C stops the program and calls quit.
func NewTerminal(in io.Reader, out io.Writer, quit func()) *Terminal {
	keys := &keyLatch{}
	program := tea.NewProgram(
		terminalModel{keys: keys, quit: quit},
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithoutSignalHandler(),
	)

	return &Terminal{
		program: program,
		keys:    keys,
		send:    program.Send,
		sleep:   time.Sleep,
		done:    make(chan struct{}),
	}
}

// Start runs the program in the background. It must be called before Show.
func (t *Terminal) Start() {
	go func() {
		_, t.err = t.program.Run()
		close(t.done)
	}()
}

// Close stops the program and restores the terminal.
func (t *Terminal) Close() error {
	t.program.Quit()
	<-t.done

	return t.err
}

// Show draws the pattern and blocks for the hold duration.
func (t *Terminal) Show(p grid.Pattern, hold time.Duration) {
	t.send(frameMsg(p))
	t.sleep(hold)
}

// Sample returns and clears the keys pressed since the last sample.
func (t *Terminal) Sample() controller.Buttons {
	return controller.Buttons{
		A: t.keys.a.Swap(false),
		B: t.keys.b.Swap(false),
	}
}

func (m terminalModel) Init() tea.Cmd {
	return nil
}

func (m terminalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.frame = grid.Pattern(msg)
		m.shown = true
	case tea.KeyMsg:
		switch strings.ToLower(msg.String()) {
		case "a":
			m.keys.a.Store(true)
		case "b":
			m.keys.b.Store(true)
		case "q", "esc", "ctrl+c":
			if m.quit != nil {
				m.quit()
			}

			return m, tea.Quit
		}
	}

	return m, nil
}

func (m terminalModel) View() string {
	if !m.shown {
		return "\n" + terminalHelp + "\n"
	}

	return Render(m.frame) + "\n" + terminalHelp + "\n"
}

var (
	_ controller.Display      = (*Terminal)(nil)
	_ controller.ButtonSource = (*Terminal)(nil)
)
