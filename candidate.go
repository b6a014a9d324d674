package main

// Candidate proposes a placement for an unplaced word, hooked onto a
// letter of a word already on the grid.
type Candidate struct {
	Endpoint Endpoint `json:"endpoint"`
	Coords   []Coord  `json:"coords"`
	Anchor   Endpoint `json:"anchor"`
}

// GenerateCandidates turns each actionable crossing into a placement
// proposal. A crossing is actionable when exactly one of its words is
// placed. Proposals that leave the rows x cols grid are dropped whole.
// Letter conflicts with other placed words are left to Grid.Apply.
func GenerateCandidates(crossings []Crossing, words []Word, rows, cols int) []Candidate {
	candidates := []Candidate{}
	for _, x := range crossings {
		candidate, anchor, anchorWord, ok := splitCrossing(x, words)
		if !ok {
			continue
		}
		at := anchorWord.Placement.Coords[anchor.LetterIndex]
		coords := ExpandFromAnchor(candidate, at)
		if !InBounds(rows, cols, coords) {
			continue
		}
		candidates = append(candidates, Candidate{
			Endpoint: candidate,
			Coords:   coords,
			Anchor:   anchor,
		})
	}
	return candidates
}

// splitCrossing sorts a crossing into its unplaced and placed sides.
// ok is false unless exactly one side is placed.
func splitCrossing(x Crossing, words []Word) (candidate, anchor Endpoint, anchorWord Word, ok bool) {
	i, j := findWord(words, x.First.Text), findWord(words, x.Second.Text)
	if i < 0 || j < 0 {
		return Endpoint{}, Endpoint{}, Word{}, false
	}
	first, second := words[i], words[j]
	switch {
	case first.Placed() && !second.Placed():
		return x.Second, x.First, first, true
	case second.Placed() && !first.Placed():
		return x.First, x.Second, second, true
	}
	return Endpoint{}, Endpoint{}, Word{}, false
}
