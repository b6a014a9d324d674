package main

import (
	"fmt"
)

// Coord is a (row, column) position on the grid.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Orientation is the direction a word runs on the grid.
// Across keeps the row static and varies the column; Down keeps the
// column static and varies the row.
type Orientation int

const (
	Across Orientation = iota
	Down
)

func (o Orientation) String() string {
	if o == Down {
		return "down"
	}
	return "across"
}

// Other returns the perpendicular orientation.
func (o Orientation) Other() Orientation {
	if o == Down {
		return Across
	}
	return Down
}

// Static returns the component of c that stays fixed along a word.
func (o Orientation) Static(c Coord) int {
	if o == Down {
		return c.Col
	}
	return c.Row
}

// Dynamic returns the component of c that varies along a word.
func (o Orientation) Dynamic(c Coord) int {
	if o == Down {
		return c.Row
	}
	return c.Col
}

// At builds a coordinate from its static and dynamic components.
func (o Orientation) At(static, dynamic int) Coord {
	if o == Down {
		return Coord{Row: dynamic, Col: static}
	}
	return Coord{Row: static, Col: dynamic}
}

func (o Orientation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Orientation) UnmarshalText(b []byte) error {
	switch string(b) {
	case "across":
		*o = Across
	case "down":
		*o = Down
	default:
		return fmt.Errorf("unknown orientation %q", b)
	}
	return nil
}

// Endpoint is one word's side of a crossing: if Text is laid out in
// Orientation, the letter at LetterIndex touches the crossing point.
type Endpoint struct {
	Text        string      `json:"text"`
	LetterIndex int         `json:"letter_index"`
	Orientation Orientation `json:"orientation"`
}

// Letter returns the letter of the endpoint's word at its index.
func (e Endpoint) Letter() byte {
	return e.Text[e.LetterIndex]
}

// ExpandFromAnchor returns the full coordinate sequence of e's word when
// its letter at e.LetterIndex sits on anchor. The result is ordered by
// letter index. Bounds are not checked here; see InBounds.
//
// It panics if e.LetterIndex is not a valid index into e.Text.
func ExpandFromAnchor(e Endpoint, anchor Coord) []Coord {
	if e.LetterIndex < 0 || e.LetterIndex >= len(e.Text) {
		panic(fmt.Sprintf("crosslay: letter index %d out of range for %q", e.LetterIndex, e.Text))
	}

	static := e.Orientation.Static(anchor)
	offset := e.Orientation.Dynamic(anchor) - e.LetterIndex

	coords := make([]Coord, len(e.Text))
	for i := range coords {
		coords[i] = e.Orientation.At(static, offset+i)
	}
	return coords
}

// InBounds reports whether every coordinate lies in [0,rows) x [0,cols).
func InBounds(rows, cols int, coords []Coord) bool {
	for _, c := range coords {
		if c.Row < 0 || c.Row >= rows || c.Col < 0 || c.Col >= cols {
			return false
		}
	}
	return true
}
