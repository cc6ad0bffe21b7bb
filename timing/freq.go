package timing

import (
	"log"
	"math"
	"time"
)

// Freq is a tick rate in Hz.
type Freq float64

// Hz is the unit of Freq.
const Hz Freq = 1

// FreqFromPeriod returns the frequency that ticks once every period.
func FreqFromPeriod(period time.Duration) Freq {
	if period <= 0 {
		log.Panicf("tick period must be positive, got %s", period)
	}

	return Freq(float64(time.Second) / float64(period))
}

// Period returns the time between two consecutive ticks
func (f Freq) Period() VTimeInSec {
	if f <= 0 {
		log.Panicf("frequency must be positive, got %g", float64(f))
	}

	return VTimeInSec(1 / float64(f))
}

// NextTick returns the first tick strictly after now. Ticks fall on whole
// multiples of the period; times within a millionth of a period of a tick
// count as on it.
func (f Freq) NextTick(now VTimeInSec) VTimeInSec {
	if math.IsNaN(float64(now)) {
		log.Panic("invalid time")
	}

	elapsed := math.Floor(float64(now)*float64(f) + 1e-6)

	return VTimeInSec((elapsed + 1) / float64(f))
}
