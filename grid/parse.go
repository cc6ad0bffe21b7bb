package grid

import (
	"errors"
	"fmt"
	"strings"
)

const (
	aliveGlyph = '#'
	deadGlyph  = '.'
)

// ErrMalformedBoard is returned when a textual board cannot be parsed.
var ErrMalformedBoard = errors.New("grid: malformed board")

// ParseBoard reads a board in the format produced by Board.String. Blank
// lines and surrounding spaces are ignored. 'O' and '*' are also accepted as
// live cells.
func ParseBoard(s string) (Board, error) {
	b := Board{}
	row := 0

	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if row >= Rows {
			return Board{}, fmt.Errorf("%w: more than %d rows", ErrMalformedBoard, Rows)
		}

		if len(line) != Cols {
			return Board{}, fmt.Errorf(
				"%w: row %d has %d columns, want %d",
				ErrMalformedBoard, row, len(line), Cols)
		}

		for col := 0; col < Cols; col++ {
			switch line[col] {
			case aliveGlyph, 'O', '*':
				b.bits |= 1 << (row*Cols + col)
			case deadGlyph:
			default:
				return Board{}, fmt.Errorf(
					"%w: unexpected character %q at row %d column %d",
					ErrMalformedBoard, line[col], row, col)
			}
		}

		row++
	}

	if row != Rows {
		return Board{}, fmt.Errorf("%w: %d rows, want %d", ErrMalformedBoard, row, Rows)
	}

	return b, nil
}

// MustParseBoard is like ParseBoard but panics on error.
func MustParseBoard(s string) Board {
	b, err := ParseBoard(s)
	if err != nil {
		panic(err)
	}

	return b
}
