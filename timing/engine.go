package timing

import "github.com/sarchlab/lifeboard/hooking"

// An Engine runs events in virtual-time order.
type Engine interface {
	hooking.Hookable

	// CurrentTime is the time of the event being handled, or of the last one.
	CurrentTime() VTimeInSec

	// Schedule queues an event. Events cannot be scheduled in the past.
	Schedule(e Event)

	// Run handles events until none are left or a handler fails.
	Run() error

	// Pause stops the engine before its next event.
	Pause()

	// Continue resumes a paused engine.
	Continue()
}

// HookPosAfterEvent fires after each event is handled. The hook item is the
// event.
var HookPosAfterEvent = &hooking.HookPos{Name: "AfterEvent"}
