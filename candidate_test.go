package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// catCarWords has "cat" across on row 2 of a 5x5 grid and "car" waiting.
func catCarWords() []Word {
	words := makeWords([]string{"cat", "car"})
	words[0] = words[0].placedAt(Across, []Coord{{2, 2}, {2, 3}, {2, 4}})
	return words
}

func TestGenerateCandidatesCatCar(t *testing.T) {
	words := catCarWords()
	candidates := GenerateCandidates(EnumerateCrossings(words), words, 5, 5)

	want := []Candidate{
		{
			Endpoint: Endpoint{"car", 0, Down},
			Coords:   []Coord{{2, 2}, {3, 2}, {4, 2}},
			Anchor:   Endpoint{"cat", 0, Across},
		},
		{
			Endpoint: Endpoint{"car", 0, Across},
			Coords:   []Coord{{2, 2}, {2, 3}, {2, 4}},
			Anchor:   Endpoint{"cat", 0, Down},
		},
		{
			Endpoint: Endpoint{"car", 1, Down},
			Coords:   []Coord{{1, 3}, {2, 3}, {3, 3}},
			Anchor:   Endpoint{"cat", 1, Across},
		},
		{
			Endpoint: Endpoint{"car", 1, Across},
			Coords:   []Coord{{2, 2}, {2, 3}, {2, 4}},
			Anchor:   Endpoint{"cat", 1, Down},
		},
	}
	assert.Equal(t, want, candidates)
}

func TestGenerateCandidatesDropsOutOfBounds(t *testing.T) {
	words := catCarWords()
	// On a 4x5 grid the Down placement from 'c' reaches row 4.
	candidates := GenerateCandidates(EnumerateCrossings(words), words, 4, 5)
	require.Len(t, candidates, 3)
	for _, c := range candidates {
		assert.True(t, InBounds(4, 5, c.Coords), "%v", c.Coords)
	}
}

func TestGenerateCandidatesAnchorSecond(t *testing.T) {
	// The placed word is the second endpoint of every crossing.
	words := makeWords([]string{"car", "cat"})
	words[1] = words[1].placedAt(Down, []Coord{{1, 1}, {2, 1}, {3, 1}})

	candidates := GenerateCandidates(EnumerateCrossings(words), words, 6, 6)
	require.NotEmpty(t, candidates)
	for _, c := range candidates {
		assert.Equal(t, "car", c.Endpoint.Text)
		assert.Equal(t, "cat", c.Anchor.Text)
		assert.Equal(t, words[1].Placement.Coords[c.Anchor.LetterIndex], c.Coords[c.Endpoint.LetterIndex])
	}
}

func TestGenerateCandidatesNeedsExactlyOnePlaced(t *testing.T) {
	words := makeWords([]string{"cat", "car"})
	crossings := EnumerateCrossings(words)
	assert.Empty(t, GenerateCandidates(crossings, words, 5, 5), "nothing placed")

	words = catCarWords()
	words[1] = words[1].placedAt(Down, []Coord{{2, 2}, {3, 2}, {4, 2}})
	assert.Empty(t, GenerateCandidates(crossings, words, 5, 5), "both placed")
}

func TestGenerateCandidatesNeverOutOfBounds(t *testing.T) {
	words := makeWords([]string{"orbit", "robin", "tiger", "river", "bit"})
	words[0] = words[0].placedAt(Across, ExpandFromAnchor(Endpoint{"orbit", 2, Across}, Coord{3, 3}))
	crossings := EnumerateCrossings(words)

	for rows := 1; rows <= 8; rows++ {
		for cols := 1; cols <= 8; cols++ {
			for _, c := range GenerateCandidates(crossings, words, rows, cols) {
				for _, xy := range c.Coords {
					assert.True(t, xy.Row >= 0 && xy.Row < rows && xy.Col >= 0 && xy.Col < cols,
						"%dx%d: %s at %s", rows, cols, c.Endpoint.Text, xy)
				}
			}
		}
	}
}
