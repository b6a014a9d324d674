package main

import (
	"bufio"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
)

// ErrSourceExhausted is returned when a word source cannot supply enough
// distinct words within the draw budget.
var ErrSourceExhausted = errors.New("word source exhausted")

// defaultMaxDraws caps the single-word top-up requests made after the
// initial sample.
const defaultMaxDraws = 1000

// WordSource supplies candidate words. A call may repeat words returned
// by earlier calls.
type WordSource interface {
	Sample(ctx context.Context, n int) ([]string, error)
}

//go:embed words.txt
var wordList string

// ListSource draws words at random from a fixed vocabulary. The same seed
// always yields the same sequence.
type ListSource struct {
	mu    sync.Mutex
	words []string
	rng   *rand.Rand
}

// NewListSource creates a source over the embedded vocabulary.
func NewListSource(seed uint64) *ListSource {
	return NewListSourceFrom(parseWordList(wordList), seed)
}

// NewListSourceFrom creates a source over the given vocabulary.
func NewListSourceFrom(words []string, seed uint64) *ListSource {
	return &ListSource{
		words: words,
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Sample draws n words with replacement.
func (s *ListSource) Sample(_ context.Context, n int) ([]string, error) {
	if len(s.words) == 0 {
		return nil, fmt.Errorf("sample %d: %w", n, ErrSourceExhausted)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, n)
	for i := range out {
		out[i] = s.words[s.rng.IntN(len(s.words))]
	}
	return out, nil
}

// StaticSource hands out a fixed word sequence, wrapping around at the end.
type StaticSource struct {
	mu    sync.Mutex
	words []string
	next  int
}

func NewStaticSource(words ...string) *StaticSource {
	return &StaticSource{words: words}
}

func (s *StaticSource) Sample(_ context.Context, n int) ([]string, error) {
	if len(s.words) == 0 {
		return nil, fmt.Errorf("sample %d: %w", n, ErrSourceExhausted)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, n)
	for i := range out {
		out[i] = s.words[s.next%len(s.words)]
		s.next++
	}
	return out, nil
}

// sampleDistinct collects n distinct normalized words from src. After the
// first request it tops up one word at a time, at most maxDraws times.
func sampleDistinct(ctx context.Context, src WordSource, n, maxDraws int) ([]string, error) {
	seen := make(map[string]bool, n)
	var out []string
	add := func(words []string) {
		for _, w := range words {
			w, ok := normalizeWord(w)
			if !ok || seen[w] || len(out) == n {
				continue
			}
			seen[w] = true
			out = append(out, w)
		}
	}

	words, err := src.Sample(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("sample %d words: %w", n, err)
	}
	add(words)

	for draws := 0; len(out) < n; draws++ {
		if draws == maxDraws {
			return nil, fmt.Errorf("%d of %d distinct words after %d draws: %w", len(out), n, draws, ErrSourceExhausted)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		words, err := src.Sample(ctx, 1)
		if err != nil {
			return nil, fmt.Errorf("sample top-up word: %w", err)
		}
		add(words)
	}
	return out, nil
}

// normalizeWord lower-cases w and rejects anything outside a-z.
func normalizeWord(w string) (string, bool) {
	w = strings.ToLower(strings.TrimSpace(w))
	if w == "" {
		return "", false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return "", false
		}
	}
	return w, true
}

func parseWordList(s string) []string {
	var words []string
	sc := bufio.NewScanner(strings.NewReader(s))
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		if w, ok := normalizeWord(line); ok {
			words = append(words, w)
		}
	}
	return words
}
