package main

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConflict is returned when a word cannot be written into the grid
// without overwriting a different letter or running along another word.
var ErrConflict = errors.New("placement conflicts with grid")

// Cell is a single square of the grid. An empty Letter means the cell is
// unfilled. Across and Down name the words running through the cell in
// each orientation.
type Cell struct {
	Letter string `json:"letter,omitempty"`
	Across string `json:"across,omitempty"`
	Down   string `json:"down,omitempty"`
}

// Filled reports whether a letter has been written into the cell.
func (c Cell) Filled() bool {
	return c.Letter != ""
}

func (c Cell) label(o Orientation) string {
	if o == Down {
		return c.Down
	}
	return c.Across
}

func (c *Cell) setLabel(o Orientation, word string) {
	if o == Down {
		c.Down = word
	} else {
		c.Across = word
	}
}

// Grid holds the letters laid out so far.
type Grid struct {
	Rows  int      `json:"rows"`
	Cols  int      `json:"cols"`
	Cells [][]Cell `json:"cells"`
}

// NewGrid creates a rows x cols grid with every cell unfilled.
func NewGrid(rows, cols int) Grid {
	cells := make([][]Cell, rows)
	for i := range cells {
		cells[i] = make([]Cell, cols)
	}
	return Grid{Rows: rows, Cols: cols, Cells: cells}
}

// InBounds reports whether every coordinate fits on the grid.
func (g Grid) InBounds(coords []Coord) bool {
	return InBounds(g.Rows, g.Cols, coords)
}

// Apply writes a placed word into a copy of g and returns the copy.
// g itself is left untouched.
func (g Grid) Apply(w Word) (Grid, error) {
	if !w.Placed() {
		return g, fmt.Errorf("apply %q: word is not placed", w.Text)
	}
	p := w.Placement
	if len(p.Coords) != len(w.Text) {
		return g, fmt.Errorf("apply %q: %d coords for %d letters", w.Text, len(p.Coords), len(w.Text))
	}
	if !g.InBounds(p.Coords) {
		return g, fmt.Errorf("apply %q: %w", w.Text, errOutOfBounds)
	}

	out := g.clone()
	for i, c := range p.Coords {
		cell := &out.Cells[c.Row][c.Col]
		letter := w.Text[i : i+1]
		if cell.Filled() && cell.Letter != letter {
			return g, fmt.Errorf("apply %q at %s: %q over %q: %w", w.Text, c, letter, cell.Letter, ErrConflict)
		}
		if other := cell.label(p.Orientation); other != "" && other != w.Text {
			return g, fmt.Errorf("apply %q at %s: runs along %q: %w", w.Text, c, other, ErrConflict)
		}
		cell.Letter = letter
		cell.setLabel(p.Orientation, w.Text)
	}
	return out, nil
}

var errOutOfBounds = errors.New("coordinates out of bounds")

func (g Grid) clone() Grid {
	cells := make([][]Cell, len(g.Cells))
	for i, row := range g.Cells {
		cells[i] = make([]Cell, len(row))
		copy(cells[i], row)
	}
	return Grid{Rows: g.Rows, Cols: g.Cols, Cells: cells}
}

// String renders the grid one row per line, '.' for unfilled cells.
func (g Grid) String() string {
	var sb strings.Builder
	for _, row := range g.Cells {
		for _, c := range row {
			if c.Filled() {
				sb.WriteString(strings.ToUpper(c.Letter))
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
