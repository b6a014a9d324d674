package main

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func newTestPuzzle(t *testing.T, words ...string) *Puzzle {
	t.Helper()
	if len(words) == 0 {
		words = []string{"cat", "car", "tar"}
	}
	gen, err := InitGeneration(context.Background(), NewStaticSource(words...), Options{Words: len(words), Rows: 7, Cols: 7})
	if err != nil {
		t.Fatalf("init generation: %v", err)
	}
	return NewPuzzle(gen)
}

// placeCurrent accepts whatever candidate sits at index i right now.
func placeCurrent(p *Puzzle, i int) (Candidate, error) {
	cands := p.Candidates()
	if i < 0 || i >= len(cands) {
		return p.PlaceIndex(i, CandidateRef{})
	}
	return p.PlaceIndex(i, cands[i].Ref())
}

func TestSaveAndGetPuzzle(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	p := newTestPuzzle(t)

	if err := s.Save(ctx, p); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Get(ctx, p.ID)
	if err != nil || got != p {
		t.Fatalf("expected to find saved puzzle, got %v, %v", got, err)
	}
	if _, err := s.Get(ctx, "nonexistent"); !errors.Is(err, ErrPuzzleNotFound) {
		t.Fatalf("expected ErrPuzzleNotFound, got %v", err)
	}
}

func TestListPuzzles(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	older := newTestPuzzle(t)
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := newTestPuzzle(t)
	s.Save(ctx, older)
	s.Save(ctx, newer)

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 puzzles, got %d", len(list))
	}
	if list[0] != newer {
		t.Fatal("expected puzzles sorted by descending creation time")
	}
}

func TestMemStoreUpdate(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	p := newTestPuzzle(t)
	s.Save(ctx, p)

	if _, err := s.Update(ctx, "unknown", func(*Puzzle) error { return nil }); !errors.Is(err, ErrPuzzleNotFound) {
		t.Fatalf("expected ErrPuzzleNotFound, got %v", err)
	}

	boom := errors.New("boom")
	if _, err := s.Update(ctx, p.ID, func(*Puzzle) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected fn error, got %v", err)
	}

	got, err := s.Update(ctx, p.ID, func(p *Puzzle) error {
		_, err := placeCurrent(p, 0)
		return err
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Snapshot().PlacedCount != 2 {
		t.Fatalf("expected 2 placed words, got %d", got.Snapshot().PlacedCount)
	}
}

func TestConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	p := newTestPuzzle(t, "cat", "car", "tar", "art", "rat", "act")
	s.Save(ctx, p)

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Update(ctx, p.ID, func(p *Puzzle) error {
				_, err := placeCurrent(p, i%3)
				return err
			})
			p.Snapshot()
			p.Candidates()
			s.List(ctx)
		}(i)
	}
	wg.Wait()

	snap := p.Snapshot()
	if len(snap.PlacedWords()) != snap.PlacedCount {
		t.Fatalf("placed count %d does not match %d placed words", snap.PlacedCount, len(snap.PlacedWords()))
	}
}
