// Package controller runs the board: once per tick it samples the buttons,
// decides which transformation to apply, and hands the result to the display.
package controller

import (
	"time"

	"github.com/sarchlab/lifeboard/grid"
	"github.com/sarchlab/lifeboard/hooking"
)

// Timing of the board. Tick counts are derived from the ratios to the tick
// period.
const (
	TickPeriod         = 100 * time.Millisecond
	ComplementCooldown = 500 * time.Millisecond
	DeadBoardWait      = 500 * time.Millisecond

	cooldownTicks  = int(ComplementCooldown / TickPeriod)
	deadBoardTicks = int(DeadBoardWait / TickPeriod)
)

// RandomSource supplies a fresh random value every time it is asked.
type RandomSource interface {
	NextU32() uint32
}

// Buttons is the state of both buttons for one tick. A is a level (held). B
// is a trigger that is true once per physical press.
type Buttons struct {
	A bool
	B bool
}

// ButtonSource is sampled exactly once per tick.
type ButtonSource interface {
	Sample() Buttons
}

// Display lights a pattern and holds it for the given duration before
// returning. The hold is what paces the ticks.
type Display interface {
	Show(p grid.Pattern, hold time.Duration)
}

// HookPosAfterTick fires once per tick after the frame has been displayed.
// The hook item is a TickReport.
var HookPosAfterTick = &hooking.HookPos{Name: "AfterTick"}

// TickReport describes what happened in one tick.
type TickReport struct {
	Tick          uint64
	Action        Action
	Buttons       Buttons
	Board         grid.Board
	Cooldown      int
	DeadCountdown int
}

// Controller owns the board and the two timers. It is not safe for
// concurrent use; everything happens in Tick.
type Controller struct {
	*hooking.HookableBase

	name    string
	random  RandomSource
	buttons ButtonSource
	display Display

	board     grid.Board
	cooldown  Countdown
	deadTimer Countdown
	tickCount uint64
}

// Name returns the name of the controller.
func (c *Controller) Name() string {
	return c.name
}

// Board returns the current board.
func (c *Controller) Board() grid.Board {
	return c.board
}

// TickCount returns the number of ticks processed so far.
func (c *Controller) TickCount() uint64 {
	return c.tickCount
}

// Cooldown returns the number of ticks before button B is accepted again.
func (c *Controller) Cooldown() int {
	return c.cooldown.Remaining()
}

// DeadCountdown returns the ticks left before a dead board is re-randomized,
// or 0 if the dead-board timer is not armed.
func (c *Controller) DeadCountdown() int {
	return c.deadTimer.Remaining()
}

// Tick processes one tick. It always makes progress and returns true.
func (c *Controller) Tick() bool {
	c.tickCount++

	buttons := c.buttons.Sample()
	action := c.applyAction(buttons)

	c.cooldown.Tick()

	c.display.Show(c.board.Snapshot(), TickPeriod)

	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    HookPosAfterTick,
		Item: TickReport{
			Tick:          c.tickCount,
			Action:        action,
			Buttons:       buttons,
			Board:         c.board,
			Cooldown:      c.cooldown.Remaining(),
			DeadCountdown: c.deadTimer.Remaining(),
		},
	})

	return true
}

// applyAction performs exactly one of the board transformations, in priority
// order.
func (c *Controller) applyAction(b Buttons) Action {
	switch {
	case b.A:
		c.board.Randomize(c.random.NextU32())
		c.deadTimer.Disarm()

		return ActionRandomize
	case b.B && !c.cooldown.Armed():
		c.board.Complement()
		c.cooldown.Arm(cooldownTicks)
		c.deadTimer.Disarm()

		return ActionComplement
	case c.board.IsAllDead():
		return c.waitOnDeadBoard()
	default:
		c.board.Step()
		c.deadTimer.Disarm()

		return ActionStep
	}
}

func (c *Controller) waitOnDeadBoard() Action {
	if !c.deadTimer.Armed() {
		c.deadTimer.Arm(deadBoardTicks)
	}

	if !c.deadTimer.Tick() {
		return ActionWait
	}

	c.board.Randomize(c.random.NextU32())

	return ActionRevive
}
