package main

// Crossing is one way two different words can share a letter: First laid
// in its orientation, Second in the perpendicular one.
type Crossing struct {
	First  Endpoint `json:"first"`
	Second Endpoint `json:"second"`
}

// EnumerateCrossings finds every equal letter between every pair of
// distinct words. Each match yields two crossings, one with the earlier
// word Across and one with it Down. Output order follows the word and
// letter iteration order.
func EnumerateCrossings(words []Word) []Crossing {
	crossings := []Crossing{}
	for h := 0; h < len(words)-1; h++ {
		a := words[h].Text
		for i := 0; i < len(a); i++ {
			for j := h + 1; j < len(words); j++ {
				b := words[j].Text
				for k := 0; k < len(b); k++ {
					if a[i] != b[k] {
						continue
					}
					crossings = append(crossings,
						Crossing{
							First:  Endpoint{Text: a, LetterIndex: i, Orientation: Across},
							Second: Endpoint{Text: b, LetterIndex: k, Orientation: Down},
						},
						Crossing{
							First:  Endpoint{Text: a, LetterIndex: i, Orientation: Down},
							Second: Endpoint{Text: b, LetterIndex: k, Orientation: Across},
						},
					)
				}
			}
		}
	}
	return crossings
}
