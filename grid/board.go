// Package grid implements the 5x5 Game of Life board.
//
// Cells are stored row-major in the low 25 bits of a uint32. Bit 0 is the
// top-left cell (row 0, column 0) and bit 24 is the bottom-right cell. The
// board does not wrap around: positions outside the 5x5 square do not exist.
package grid

import (
	"math/bits"
	"strings"
)

// Board geometry.
const (
	Rows      = 5
	Cols      = 5
	CellCount = Rows * Cols

	// Mask selects the 25 valid cell bits.
	Mask uint32 = 1<<CellCount - 1
)

// Pattern is a read-only export of the board, one entry per cell in the same
// row-major order as the board bits.
type Pattern [CellCount]bool

// Cell addresses a position on the board.
type Cell struct {
	Row, Col int
}

// Index returns the bit index of the cell.
func (c Cell) Index() int {
	return c.Row*Cols + c.Col
}

func (c Cell) onBoard() bool {
	return c.Row >= 0 && c.Row < Rows && c.Col >= 0 && c.Col < Cols
}

// Board is the state of the 25 cells. The zero value is an all-dead board.
type Board struct {
	bits uint32
}

// NewRandom creates a board where cell i is alive iff bit i of randomBits is
// set. Bits 25 to 31 are ignored.
func NewRandom(randomBits uint32) Board {
	return Board{bits: randomBits & Mask}
}

// FromPattern creates a board from an exported pattern.
func FromPattern(p Pattern) Board {
	b := Board{}

	for i, alive := range p {
		if alive {
			b.bits |= 1 << i
		}
	}

	return b
}

// FromCells creates a board with only the given cells alive. Cells outside
// the board are ignored.
func FromCells(cells ...Cell) Board {
	b := Board{}

	for _, c := range cells {
		if c.onBoard() {
			b.bits |= 1 << c.Index()
		}
	}

	return b
}

// Randomize overwrites all the cells with the low 25 bits of randomBits.
func (b *Board) Randomize(randomBits uint32) {
	b.bits = randomBits & Mask
}

// Complement flips every cell.
func (b *Board) Complement() {
	b.bits ^= Mask
}

// Step advances the board by one generation.
//
// Every next state is computed from the same pre-step snapshot.
func (b *Board) Step() {
	prev := *b
	next := Board{}

	for i := 0; i < CellCount; i++ {
		row, col := i/Cols, i%Cols
		n := prev.Neighbors(row, col)

		if n == 3 || (n == 2 && prev.bits&(1<<i) != 0) {
			next.bits |= 1 << i
		}
	}

	*b = next
}

// IsAllDead returns true if no cell is alive.
func (b Board) IsAllDead() bool {
	return b.bits == 0
}

// Snapshot exports the board for display.
func (b Board) Snapshot() Pattern {
	p := Pattern{}

	for i := range p {
		p[i] = b.bits&(1<<i) != 0
	}

	return p
}

// Alive tells if the cell at the given position is alive. Positions outside
// the board are never alive.
func (b Board) Alive(row, col int) bool {
	c := Cell{Row: row, Col: col}
	if !c.onBoard() {
		return false
	}

	return b.bits&(1<<c.Index()) != 0
}

// Neighbors counts the live cells among the up-to-8 positions adjacent to
// (row, col).
func (b Board) Neighbors(row, col int) int {
	n := 0

	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}

			if b.Alive(row+dr, col+dc) {
				n++
			}
		}
	}

	return n
}

// Population returns the number of live cells.
func (b Board) Population() int {
	return bits.OnesCount32(b.bits)
}

// Bits returns the raw cell bits.
func (b Board) Bits() uint32 {
	return b.bits
}

// String renders the board as 5 lines of '#' (alive) and '.' (dead).
func (b Board) String() string {
	var sb strings.Builder

	for row := 0; row < Rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}

		for col := 0; col < Cols; col++ {
			if b.Alive(row, col) {
				sb.WriteByte(aliveGlyph)
			} else {
				sb.WriteByte(deadGlyph)
			}
		}
	}

	return sb.String()
}
