// Package peripheral provides the random sources, buttons and displays the
// controller is wired to outside of the test suite.
package peripheral

import (
	"crypto/rand"
	"encoding/binary"
	"log"
	mathrand "math/rand/v2"
)

// SeededSource is a deterministic random source. The same seed always gives
// the same boards.
type SeededSource struct {
	rng *mathrand.Rand
}

// NewSeededSource creates a SeededSource.
func NewSeededSource(seed uint64) *SeededSource {
	return &SeededSource{
		rng: mathrand.New(mathrand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
	}
}

// NextU32 returns the next random value.
func (s *SeededSource) NextU32() uint32 {
	return s.rng.Uint32()
}

// SystemSource draws from the operating system's random generator.
type SystemSource struct{}

// NextU32 returns the next random value. A failing system generator is not
// recoverable and panics.
func (SystemSource) NextU32() uint32 {
	var buf [4]byte

	_, err := rand.Read(buf[:])
	if err != nil {
		log.Panicf("random source unavailable: %v", err)
	}

	return binary.LittleEndian.Uint32(buf[:])
}
