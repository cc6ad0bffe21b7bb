package controller

import (
	"github.com/sarchlab/lifeboard/grid"
	"github.com/sarchlab/lifeboard/hooking"
)

// Builder can build controllers.
type Builder struct {
	random       RandomSource
	buttons      ButtonSource
	display      Display
	initialBoard *grid.Board
}

// MakeBuilder creates a new Builder.
func MakeBuilder() Builder {
	return Builder{}
}

// WithRandomSource sets where random boards come from.
func (b Builder) WithRandomSource(r RandomSource) Builder {
	b.random = r
	return b
}

// WithButtons sets the button source.
func (b Builder) WithButtons(s ButtonSource) Builder {
	b.buttons = s
	return b
}

// WithDisplay sets the display the frames are sent to.
func (b Builder) WithDisplay(d Display) Builder {
	b.display = d
	return b
}

// WithInitialBoard starts the controller from the given board instead of a
// random one.
func (b Builder) WithInitialBoard(board grid.Board) Builder {
	b.initialBoard = &board
	return b
}

func (b Builder) parametersMustBeValid() {
	if b.random == nil {
		panic("controller: random source is not set")
	}

	if b.buttons == nil {
		panic("controller: button source is not set")
	}

	if b.display == nil {
		panic("controller: display is not set")
	}
}

// Build creates a controller. Unless an initial board is given, the board
// starts from a fresh random value.
func (b Builder) Build(name string) *Controller {
	b.parametersMustBeValid()

	c := &Controller{
		HookableBase: hooking.NewHookableBase(),
		name:         name,
		random:       b.random,
		buttons:      b.buttons,
		display:      b.display,
	}

	if b.initialBoard != nil {
		c.board = *b.initialBoard
	} else {
		c.board = grid.NewRandom(b.random.NextU32())
	}

	return c
}
