package timing

import (
	"fmt"
	"log"
	"sync"

	"github.com/sarchlab/lifeboard/hooking"
)

// A SerialEngine handles one event at a time on the goroutine that calls Run.
type SerialEngine struct {
	*hooking.HookableBase

	lock   sync.Mutex
	now    VTimeInSec
	queue  eventQueue
	resume chan struct{}

	running sync.Mutex
}

// NewSerialEngine creates a SerialEngine
func NewSerialEngine() *SerialEngine {
	return &SerialEngine{HookableBase: hooking.NewHookableBase()}
}

// Schedule queues an event. Scheduling before the current time is a
// programming error and panics.
func (e *SerialEngine) Schedule(evt Event) {
	e.lock.Lock()
	defer e.lock.Unlock()

	if evt.Time() < e.now {
		log.Panicf("scheduling %T @ %.10f in the past, now %.10f",
			evt, evt.Time(), e.now)
	}

	e.queue.push(evt)
}

// Run handles events until the queue is empty. The first handler error stops
// the run and is returned.
func (e *SerialEngine) Run() error {
	e.running.Lock()
	defer e.running.Unlock()

	for {
		e.waitIfPaused()

		evt, ok := e.advance()
		if !ok {
			return nil
		}

		err := evt.Handler().Handle(evt)
		if err != nil {
			return fmt.Errorf("handling %T @ %.10f: %w", evt, evt.Time(), err)
		}

		e.InvokeHook(hooking.HookCtx{
			Domain: e,
			Pos:    HookPosAfterEvent,
			Item:   evt,
		})
	}
}

// advance pops the next event and moves the clock to it.
func (e *SerialEngine) advance() (Event, bool) {
	e.lock.Lock()
	defer e.lock.Unlock()

	evt, ok := e.queue.pop()
	if ok {
		e.now = evt.Time()
	}

	return evt, ok
}

func (e *SerialEngine) waitIfPaused() {
	e.lock.Lock()
	resume := e.resume
	e.lock.Unlock()

	if resume != nil {
		<-resume
	}
}

// Pause stops the engine before its next event. Pausing twice is a no-op.
func (e *SerialEngine) Pause() {
	e.lock.Lock()
	defer e.lock.Unlock()

	if e.resume == nil {
		e.resume = make(chan struct{})
	}
}

// Continue resumes a paused engine.
func (e *SerialEngine) Continue() {
	e.lock.Lock()
	defer e.lock.Unlock()

	if e.resume != nil {
		close(e.resume)
		e.resume = nil
	}
}

// CurrentTime returns the time of the event being handled.
func (e *SerialEngine) CurrentTime() VTimeInSec {
	e.lock.Lock()
	defer e.lock.Unlock()

	return e.now
}
