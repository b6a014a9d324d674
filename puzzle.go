package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrStaleCandidate is returned when a candidate index no longer matches
// the puzzle's current candidate list.
var ErrStaleCandidate = errors.New("stale candidate")

// CandidateRef names a candidate by the word it places and the letter it
// hooks onto, independent of its position in a candidate list.
type CandidateRef struct {
	Endpoint Endpoint `json:"endpoint"`
	Anchor   Endpoint `json:"anchor"`
}

// Ref returns the reference a client echoes back when accepting c.
func (c Candidate) Ref() CandidateRef {
	return CandidateRef{Endpoint: c.Endpoint, Anchor: c.Anchor}
}

// Puzzle is a generation being laid out by players.
type Puzzle struct {
	ID        string
	CreatedAt time.Time

	mu  sync.Mutex
	gen *Generation
}

// NewPuzzle wraps a generation under a fresh ID.
func NewPuzzle(gen *Generation) *Puzzle {
	return &Puzzle{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		gen:       gen,
	}
}

// Snapshot returns a copy of the current generation state.
func (p *Puzzle) Snapshot() Generation {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Placements and grids are replaced, never edited, so copying the
	// word slice is enough to detach the snapshot.
	cp := *p.gen
	cp.Words = append([]Word(nil), p.gen.Words...)
	return cp
}

// Candidates returns the placements currently on offer.
func (p *Puzzle) Candidates() []Candidate {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gen.Candidates()
}

// PlaceIndex accepts the candidate at index i of Candidates. seen is the
// candidate the caller found at i; if the list has moved on since, nothing
// is placed and ErrStaleCandidate is returned.
func (p *Puzzle) PlaceIndex(i int, seen CandidateRef) (Candidate, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	candidates := p.gen.Candidates()
	if i < 0 || i >= len(candidates) {
		return Candidate{}, fmt.Errorf("candidate %d of %d: %w", i, len(candidates), ErrStaleCandidate)
	}
	c := candidates[i]
	if c.Ref() != seen {
		return Candidate{}, fmt.Errorf("candidate %d is now %s %s: %w", i, c.Endpoint.Text, c.Endpoint.Orientation, ErrStaleCandidate)
	}
	if err := p.gen.Place(c); err != nil {
		return Candidate{}, err
	}
	return c, nil
}

type puzzleJSON struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	*Generation
}

func (p *Puzzle) MarshalJSON() ([]byte, error) {
	snap := p.Snapshot()
	return json.Marshal(puzzleJSON{ID: p.ID, CreatedAt: p.CreatedAt, Generation: &snap})
}

func (p *Puzzle) UnmarshalJSON(b []byte) error {
	v := puzzleJSON{Generation: &Generation{}}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if err := v.Generation.validate(); err != nil {
		return fmt.Errorf("puzzle %s: %w", v.ID, err)
	}
	p.ID, p.CreatedAt, p.gen = v.ID, v.CreatedAt, v.Generation
	return nil
}
