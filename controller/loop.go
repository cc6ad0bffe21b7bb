package controller

import (
	"context"
	"sync"

	"github.com/sarchlab/lifeboard/timing"
)

// Loop drives a ticker in real time. There is no sleeping in the loop
// itself; the display hold inside each tick sets the pace.
type Loop struct {
	ticker timing.Ticker

	lock   sync.Mutex
	resume chan struct{}
}

// NewLoop creates a loop around the ticker, usually a *Controller.
func NewLoop(t timing.Ticker) *Loop {
	return &Loop{ticker: t}
}

// Run ticks until the ticker stops making progress or ctx is cancelled.
// Cancellation is only observed between ticks; a tick always completes.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := l.waitIfPaused(ctx); err != nil {
			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if !l.ticker.Tick() {
			return nil
		}
	}
}

func (l *Loop) waitIfPaused(ctx context.Context) error {
	l.lock.Lock()
	resume := l.resume
	l.lock.Unlock()

	if resume == nil {
		return nil
	}

	select {
	case <-resume:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pause stops the loop before its next tick.
func (l *Loop) Pause() {
	l.lock.Lock()
	defer l.lock.Unlock()

	if l.resume == nil {
		l.resume = make(chan struct{})
	}
}

// Continue resumes a paused loop.
func (l *Loop) Continue() {
	l.lock.Lock()
	defer l.lock.Unlock()

	if l.resume != nil {
		close(l.resume)
		l.resume = nil
	}
}

// IsPaused tells if the loop is paused.
func (l *Loop) IsPaused() bool {
	l.lock.Lock()
	defer l.lock.Unlock()

	return l.resume != nil
}
