package main

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrInvalidOptions is returned for a non-positive word count or grid size.
	ErrInvalidOptions = errors.New("invalid generation options")
	// ErrUnplaceable is returned when no sampled word fits centered on the grid.
	ErrUnplaceable = errors.New("no word fits the grid")
	// ErrAlreadyPlaced is returned when placing a word that is on the grid.
	ErrAlreadyPlaced = errors.New("word already placed")
	// ErrUnknownWord is returned when a candidate names a word outside the generation.
	ErrUnknownWord = errors.New("unknown word")

	errCorruptGeneration = errors.New("inconsistent generation")
)

// Options controls InitGeneration.
type Options struct {
	Words int // distinct words to sample
	Rows  int
	Cols  int

	// MaxDraws bounds the single-word top-ups made while deduplicating.
	// Zero means defaultMaxDraws.
	MaxDraws int

	// DeferAnchor leaves the returned grid empty. The anchor is still
	// placed in Words; the caller writes it with Rebuild.
	DeferAnchor bool
}

// Generation is the state of one puzzle layout: the sampled words (the
// anchor placed, the rest waiting), every possible crossing between them,
// and the grid built so far.
type Generation struct {
	RequestedWords int        `json:"requested_words"`
	Rows           int        `json:"rows"`
	Cols           int        `json:"cols"`
	PlacedCount    int        `json:"placed_count"`
	Words          []Word     `json:"words"`
	Crossings      []Crossing `json:"crossings"`
	Grid           Grid       `json:"grid"`
}

// InitGeneration samples opts.Words distinct words from src, centers the
// first one that fits, and enumerates the crossings between all of them.
func InitGeneration(ctx context.Context, src WordSource, opts Options) (*Generation, error) {
	if opts.Words < 1 || opts.Rows < 1 || opts.Cols < 1 {
		return nil, fmt.Errorf("%d words on %dx%d: %w", opts.Words, opts.Rows, opts.Cols, ErrInvalidOptions)
	}
	maxDraws := opts.MaxDraws
	if maxDraws <= 0 {
		maxDraws = defaultMaxDraws
	}

	texts, err := sampleDistinct(ctx, src, opts.Words, maxDraws)
	if err != nil {
		return nil, err
	}
	words := makeWords(texts)

	anchor := -1
	for i, w := range words {
		if coords, ok := centered(w.Text, opts.Rows, opts.Cols); ok {
			words[i] = w.placedAt(Across, coords)
			anchor = i
			break
		}
	}
	if anchor < 0 {
		return nil, fmt.Errorf("%d words on %dx%d: %w", len(words), opts.Rows, opts.Cols, ErrUnplaceable)
	}

	grid := NewGrid(opts.Rows, opts.Cols)
	if !opts.DeferAnchor {
		if grid, err = grid.Apply(words[anchor]); err != nil {
			return nil, fmt.Errorf("apply anchor: %w", err)
		}
	}

	return &Generation{
		RequestedWords: opts.Words,
		Rows:           opts.Rows,
		Cols:           opts.Cols,
		PlacedCount:    1,
		Words:          words,
		Crossings:      EnumerateCrossings(words),
		Grid:           grid,
	}, nil
}

// centered lays text Across with its middle letter on the grid center.
func centered(text string, rows, cols int) ([]Coord, bool) {
	coords := ExpandFromAnchor(
		Endpoint{Text: text, LetterIndex: len(text) / 2, Orientation: Across},
		Coord{Row: rows / 2, Col: cols / 2},
	)
	return coords, InBounds(rows, cols, coords)
}

// validate checks the invariants the candidate and grid code index by,
// for generations that come back from storage rather than InitGeneration.
func (g *Generation) validate() error {
	if g.Grid.Rows != g.Rows || g.Grid.Cols != g.Cols || len(g.Grid.Cells) != g.Rows {
		return fmt.Errorf("grid is %dx%d, want %dx%d: %w", g.Grid.Rows, g.Grid.Cols, g.Rows, g.Cols, errCorruptGeneration)
	}
	for r, row := range g.Grid.Cells {
		if len(row) != g.Cols {
			return fmt.Errorf("grid row %d has %d cells, want %d: %w", r, len(row), g.Cols, errCorruptGeneration)
		}
	}
	for _, w := range g.Words {
		if !w.Placed() {
			continue
		}
		if len(w.Placement.Coords) != len(w.Text) {
			return fmt.Errorf("word %q has %d coords: %w", w.Text, len(w.Placement.Coords), errCorruptGeneration)
		}
		if !InBounds(g.Rows, g.Cols, w.Placement.Coords) {
			return fmt.Errorf("word %q: %w", w.Text, errOutOfBounds)
		}
	}
	for _, x := range g.Crossings {
		for _, e := range []Endpoint{x.First, x.Second} {
			if e.LetterIndex < 0 || e.LetterIndex >= len(e.Text) {
				return fmt.Errorf("crossing letter %d of %q: %w", e.LetterIndex, e.Text, errCorruptGeneration)
			}
		}
	}
	return nil
}

// Candidates lists the in-bounds placements currently on offer.
func (g *Generation) Candidates() []Candidate {
	return GenerateCandidates(g.Crossings, g.Words, g.Rows, g.Cols)
}

// Place accepts a candidate: the word gets the candidate's placement and
// its letters are written into the grid. On error the generation is
// unchanged.
func (g *Generation) Place(c Candidate) error {
	i := findWord(g.Words, c.Endpoint.Text)
	if i < 0 {
		return fmt.Errorf("place %q: %w", c.Endpoint.Text, ErrUnknownWord)
	}
	if g.Words[i].Placed() {
		return fmt.Errorf("place %q: %w", c.Endpoint.Text, ErrAlreadyPlaced)
	}

	coords := make([]Coord, len(c.Coords))
	copy(coords, c.Coords)
	w := g.Words[i].placedAt(c.Endpoint.Orientation, coords)

	grid, err := g.Grid.Apply(w)
	if err != nil {
		return fmt.Errorf("place %q: %w", w.Text, err)
	}

	g.Words[i] = w
	g.Grid = grid
	g.PlacedCount++
	return nil
}

// Rebuild rewrites the grid from scratch with every placed word.
func (g *Generation) Rebuild() error {
	grid := NewGrid(g.Rows, g.Cols)
	for _, w := range g.PlacedWords() {
		var err error
		if grid, err = grid.Apply(w); err != nil {
			return fmt.Errorf("rebuild: %w", err)
		}
	}
	g.Grid = grid
	return nil
}

// PlacedWords returns the words on the grid, in sampling order.
func (g *Generation) PlacedWords() []Word {
	var out []Word
	for _, w := range g.Words {
		if w.Placed() {
			out = append(out, w)
		}
	}
	return out
}

// UnplacedWords returns the words still waiting for a placement.
func (g *Generation) UnplacedWords() []Word {
	var out []Word
	for _, w := range g.Words {
		if !w.Placed() {
			out = append(out, w)
		}
	}
	return out
}

// Fill repeatedly accepts the first candidate the grid takes without
// conflict, until none is left. It returns the number of words placed.
func (g *Generation) Fill() int {
	placed := 0
	for {
		progressed := false
		for _, c := range g.Candidates() {
			if g.Place(c) == nil {
				placed++
				progressed = true
				break
			}
		}
		if !progressed {
			return placed
		}
	}
}
