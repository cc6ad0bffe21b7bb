package controller

import (
	"github.com/sarchlab/lifeboard/timing"
)

// Limit wraps a controller so that it stops making progress after n ticks.
// A zero n means no limit.
func (c *Controller) Limit(n uint64) timing.Ticker {
	return &limitedTicker{ctrl: c, limit: n}
}

type limitedTicker struct {
	ctrl  *Controller
	limit uint64
}

func (t *limitedTicker) Tick() bool {
	if t.limit > 0 && t.ctrl.TickCount() >= t.limit {
		return false
	}

	t.ctrl.Tick()

	return t.limit == 0 || t.ctrl.TickCount() < t.limit
}

// Component lets a timing engine drive the controller in virtual time at the
// tick frequency.
type Component struct {
	*timing.TickingComponent

	ctrl *Controller
}

// NewComponent registers the controller as a ticking component of the engine.
// The controller stops after limit ticks, or never if limit is zero.
func NewComponent(
	ctrl *Controller,
	engine timing.Engine,
	limit uint64,
) *Component {
	c := &Component{ctrl: ctrl}
	c.TickingComponent = timing.NewTickingComponent(
		ctrl.Name(), engine, timing.FreqFromPeriod(TickPeriod), ctrl.Limit(limit))

	return c
}

// Controller returns the controller driven by the component.
func (c *Component) Controller() *Controller {
	return c.ctrl
}
