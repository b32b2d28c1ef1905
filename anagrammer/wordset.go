package anagrammer

import (
	"slices"

	"github.com/samber/lo"
)

// WordSet is an unordered set of words.
type WordSet map[string]struct{}

func NewWordSet(words ...string) WordSet {
	ws := make(WordSet, len(words))
	for _, w := range words {
		ws.Add(w)
	}
	return ws
}

func (ws WordSet) Add(w string) {
	ws[w] = struct{}{}
}

func (ws WordSet) Has(w string) bool {
	_, ok := ws[w]
	return ok
}

// Sorted returns the words in lexicographic order.
func (ws WordSet) Sorted() []string {
	words := lo.Keys(ws)
	slices.Sort(words)
	return words
}

// Minus returns the words of ws that are not in other.
func (ws WordSet) Minus(other WordSet) WordSet {
	return lo.PickBy(ws, func(w string, _ struct{}) bool {
		return !other.Has(w)
	})
}
