package main

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// ErrPuzzleNotFound is returned for an unknown puzzle ID.
var ErrPuzzleNotFound = errors.New("puzzle not found")

// Store persists puzzles.
type Store interface {
	Save(ctx context.Context, p *Puzzle) error
	Get(ctx context.Context, id string) (*Puzzle, error)
	// List returns all puzzles, most recent first.
	List(ctx context.Context) ([]*Puzzle, error)
	// Update runs fn on the stored puzzle and persists the result.
	// Nothing is written when fn fails.
	Update(ctx context.Context, id string, fn func(*Puzzle) error) (*Puzzle, error)
}

// MemStore holds all puzzles in memory.
type MemStore struct {
	mu      sync.RWMutex
	puzzles map[string]*Puzzle
}

// NewMemStore creates an empty store.
func NewMemStore() *MemStore {
	return &MemStore{
		puzzles: make(map[string]*Puzzle),
	}
}

func (s *MemStore) Save(_ context.Context, p *Puzzle) error {
	s.mu.Lock()
	s.puzzles[p.ID] = p
	s.mu.Unlock()
	return nil
}

func (s *MemStore) Get(_ context.Context, id string) (*Puzzle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.puzzles[id]
	if !ok {
		return nil, ErrPuzzleNotFound
	}
	return p, nil
}

func (s *MemStore) List(_ context.Context) ([]*Puzzle, error) {
	s.mu.RLock()
	list := make([]*Puzzle, 0, len(s.puzzles))
	for _, p := range s.puzzles {
		list = append(list, p)
	}
	s.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

// Update runs fn directly on the live puzzle; Puzzle methods do their
// own locking.
func (s *MemStore) Update(ctx context.Context, id string, fn func(*Puzzle) error) (*Puzzle, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(p); err != nil {
		return nil, err
	}
	return p, nil
}
