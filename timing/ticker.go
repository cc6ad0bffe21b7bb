package timing

import "sync"

// A Ticker updates its state once per tick. It returns false when it made
// no progress and does not need another tick.
type Ticker interface {
	Tick() bool
}

// TickingComponent ticks a Ticker on an engine at a fixed frequency for as
// long as the Ticker makes progress.
type TickingComponent struct {
	name   string
	engine Engine
	freq   Freq
	ticker Ticker

	lock      sync.Mutex
	scheduled VTimeInSec
}

// NewTickingComponent creates a new ticking component. Nothing happens until
// TickLater is called.
func NewTickingComponent(
	name string,
	engine Engine,
	freq Freq,
	ticker Ticker,
) *TickingComponent {
	return &TickingComponent{
		name:      name,
		engine:    engine,
		freq:      freq,
		ticker:    ticker,
		scheduled: -1,
	}
}

// Name returns the name of the component.
func (c *TickingComponent) Name() string {
	return c.name
}

// TickLater schedules a tick on the next tick boundary after the current
// time, unless one is already scheduled.
func (c *TickingComponent) TickLater() {
	c.lock.Lock()
	defer c.lock.Unlock()

	at := c.freq.NextTick(c.engine.CurrentTime())
	if c.scheduled >= at {
		return
	}

	c.scheduled = at
	c.engine.Schedule(NewTickEvent(at, c))
}

// Handle ticks the Ticker and keeps ticking while it makes progress.
func (c *TickingComponent) Handle(_ Event) error {
	if c.ticker.Tick() {
		c.TickLater()
	}

	return nil
}
