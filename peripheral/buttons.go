package peripheral

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sarchlab/lifeboard/controller"
)

// NoButtons never reports a press.
type NoButtons struct{}

// Sample returns no presses.
func (NoButtons) Sample() controller.Buttons {
	return controller.Buttons{}
}

// ErrBadScript is returned when a button script cannot be parsed.
var ErrBadScript = errors.New("peripheral: bad button script")

type scriptEntry struct {
	button     byte
	start, end uint64
}

// ScriptedButtons replays a fixed button script. Each Sample call is one
// tick, starting from tick 1.
type ScriptedButtons struct {
	entries []scriptEntry
	tick    uint64
}

// ParseScript parses a comma-separated list of "<button>@<tick>" or
// "<button>@<first>-<last>" entries, where button is a or b. For example,
// "a@3-7,b@10" holds A from tick 3 to 7 and presses B at tick 10.
func ParseScript(script string) (*ScriptedButtons, error) {
	s := &ScriptedButtons{}

	for _, item := range strings.Split(script, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		entry, err := parseScriptEntry(item)
		if err != nil {
			return nil, err
		}

		s.entries = append(s.entries, entry)
	}

	return s, nil
}

func parseScriptEntry(item string) (scriptEntry, error) {
	button, ticks, found := strings.Cut(strings.ToLower(item), "@")
	if !found || (button != "a" && button != "b") {
		return scriptEntry{}, fmt.Errorf("%w: %q", ErrBadScript, item)
	}

	first, last, isRange := strings.Cut(ticks, "-")
	if !isRange {
		last = first
	}

	start, err := strconv.ParseUint(first, 10, 64)
	if err != nil || start == 0 {
		return scriptEntry{}, fmt.Errorf("%w: bad tick in %q", ErrBadScript, item)
	}

	end, err := strconv.ParseUint(last, 10, 64)
	if err != nil || end < start {
		return scriptEntry{}, fmt.Errorf("%w: bad range in %q", ErrBadScript, item)
	}

	return scriptEntry{button: button[0], start: start, end: end}, nil
}

// Sample advances the script by one tick.
func (s *ScriptedButtons) Sample() controller.Buttons {
	s.tick++

	b := controller.Buttons{}
	for _, e := range s.entries {
		if s.tick < e.start || s.tick > e.end {
			continue
		}

		switch e.button {
		case 'a':
			b.A = true
		case 'b':
			b.B = true
		}
	}

	return b
}

// Pin is a raw button input that reports whether the button is currently
// down.
type Pin interface {
	IsDown() bool
}

// PolledPin is a pin whose input has to be refreshed before it can be read,
// such as a keyboard state that only changes when events are pumped. Every
// read polls first, so consecutive reads see fresh input.
type PolledPin struct {
	Poll func()
	Read func() bool
}

// IsDown polls and reads the pin.
func (p PolledPin) IsDown() bool {
	if p.Poll != nil {
		p.Poll()
	}

	return p.Read()
}

// Debounced samples two raw pins. A button only counts as held if every one
// of Reads consecutive reads sees it down.
type Debounced struct {
	A, B  Pin
	Reads int
}

// Sample reads the pins.
func (d Debounced) Sample() controller.Buttons {
	return controller.Buttons{
		A: d.stable(d.A),
		B: d.stable(d.B),
	}
}

func (d Debounced) stable(p Pin) bool {
	reads := max(d.Reads, 1)

	down := true
	for i := 0; i < reads; i++ {
		down = p.IsDown() && down
	}

	return down
}

// EdgeTrigger turns a level-sampled button B into one press per physical
// press: B is reported only on the tick it goes from up to down. A is passed
// through as a level.
type EdgeTrigger struct {
	Source controller.ButtonSource

	lastB bool
}

// Sample samples the source once.
func (e *EdgeTrigger) Sample() controller.Buttons {
	b := e.Source.Sample()

	pressed := b.B && !e.lastB
	e.lastB = b.B
	b.B = pressed

	return b
}
