// Package timing provides a virtual-time event engine. The board can be run
// on it as a ticking component so that many ticks are simulated without
// waiting for the real display hold.
package timing

import "github.com/rs/xid"

// VTimeInSec defines the time in the simulated space in the unit of second
type VTimeInSec float64

// An Event is something going to happen at a virtual time.
type Event interface {
	Time() VTimeInSec
	Handler() Handler
}

// A Handler reacts to the events scheduled for it.
type Handler interface {
	Handle(e Event) error
}

// TickEvent asks its target to tick.
type TickEvent struct {
	ID     string
	At     VTimeInSec
	Target Handler
}

// NewTickEvent creates a TickEvent with a fresh ID.
func NewTickEvent(at VTimeInSec, target Handler) TickEvent {
	return TickEvent{
		ID:     xid.New().String(),
		At:     at,
		Target: target,
	}
}

// Time returns when the tick happens.
func (e TickEvent) Time() VTimeInSec {
	return e.At
}

// Handler returns the component to tick.
func (e TickEvent) Handler() Handler {
	return e.Target
}
