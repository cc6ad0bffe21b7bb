package controller

// Countdown counts whole ticks down to zero. A countdown is armed while its
// remaining value is positive. The zero value is disarmed.
type Countdown struct {
	remaining int
}

// Arm (re)starts the countdown at n ticks. Non-positive n disarms it.
func (c *Countdown) Arm(n int) {
	c.remaining = max(n, 0)
}

// Disarm stops the countdown.
func (c *Countdown) Disarm() {
	c.remaining = 0
}

// Armed tells if the countdown is running.
func (c *Countdown) Armed() bool {
	return c.remaining > 0
}

// Remaining returns the ticks left.
func (c *Countdown) Remaining() int {
	return c.remaining
}

// Tick decrements an armed countdown by one and reports whether it reached
// zero on this call. Ticking a disarmed countdown does nothing.
func (c *Countdown) Tick() bool {
	if c.remaining == 0 {
		return false
	}

	c.remaining--

	return c.remaining == 0
}
