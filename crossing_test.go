package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumerateCrossingsCatCar(t *testing.T) {
	crossings := EnumerateCrossings(makeWords([]string{"cat", "car"}))

	want := []Crossing{
		{First: Endpoint{"cat", 0, Across}, Second: Endpoint{"car", 0, Down}},
		{First: Endpoint{"cat", 0, Down}, Second: Endpoint{"car", 0, Across}},
		{First: Endpoint{"cat", 1, Across}, Second: Endpoint{"car", 1, Down}},
		{First: Endpoint{"cat", 1, Down}, Second: Endpoint{"car", 1, Across}},
	}
	assert.Equal(t, want, crossings)
}

func TestEnumerateCrossingsCounts(t *testing.T) {
	tests := []struct {
		a, b    string
		matches int
	}{
		{"cat", "dog", 0},
		{"cat", "car", 2},
		{"aa", "a", 2},
		{"level", "eel", 6}, // e(1),e(3) x e(0),e(1) = 4; l(0),l(4) x l(2) = 2
		{"abc", "cab", 3},
	}
	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			crossings := EnumerateCrossings(makeWords([]string{tt.a, tt.b}))
			require.Len(t, crossings, 2*tt.matches)

			for _, x := range crossings {
				assert.NotEqual(t, x.First.Text, x.Second.Text)
				assert.Equal(t, x.First.Letter(), x.Second.Letter())
				assert.Equal(t, x.First.Orientation.Other(), x.Second.Orientation)
			}
		})
	}
}

func TestEnumerateCrossingsPairsOnly(t *testing.T) {
	assert.Empty(t, EnumerateCrossings(nil))
	assert.Empty(t, EnumerateCrossings(makeWords([]string{"banana"})), "no crossing of a word with itself")

	// Three words: every pair is visited once, earlier word first.
	crossings := EnumerateCrossings(makeWords([]string{"ab", "bc", "ca"}))
	require.Len(t, crossings, 6)
	order := map[string]int{"ab": 0, "bc": 1, "ca": 2}
	for _, x := range crossings {
		assert.Less(t, order[x.First.Text], order[x.Second.Text])
	}
}

func TestEnumerateCrossingsIgnoresPlacement(t *testing.T) {
	words := makeWords([]string{"cat", "car"})
	plain := EnumerateCrossings(words)

	words[0] = words[0].placedAt(Down, []Coord{{0, 0}, {1, 0}, {2, 0}})
	assert.Equal(t, plain, EnumerateCrossings(words))
}
