package main

// Placement is where a word sits on the grid. Orientation and Coords are
// always set together.
type Placement struct {
	Orientation Orientation `json:"orientation"`
	Coords      []Coord     `json:"coords"`
}

// Word is a puzzle word, placed or not.
type Word struct {
	Text      string     `json:"text"`
	Placement *Placement `json:"placement,omitempty"`
}

// Placed reports whether the word has been laid on the grid.
func (w Word) Placed() bool {
	return w.Placement != nil
}

// placedAt returns a copy of w carrying the given placement.
func (w Word) placedAt(o Orientation, coords []Coord) Word {
	w.Placement = &Placement{Orientation: o, Coords: coords}
	return w
}

// findWord returns the index of the word with the given text, or -1.
func findWord(words []Word, text string) int {
	for i, w := range words {
		if w.Text == text {
			return i
		}
	}
	return -1
}

func makeWords(texts []string) []Word {
	words := make([]Word, len(texts))
	for i, t := range texts {
		words[i] = Word{Text: t}
	}
	return words
}
