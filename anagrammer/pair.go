package anagrammer

import (
	"strings"

	"github.com/domino14/anagame/hand"
)

// Pair is the two raw words a player submits in one turn. The zero Pair
// stands for input that could not be parsed.
type Pair struct {
	First  string `json:"first" yaml:"first"`
	Second string `json:"second" yaml:"second"`
}

// Reversed returns the pair with its words swapped.
func (p Pair) Reversed() Pair {
	return Pair{First: p.Second, Second: p.First}
}

// SameAs reports whether p and o hold the same two words in either order,
// ignoring case.
func (p Pair) SameAs(o Pair) bool {
	if strings.EqualFold(p.First, o.First) && strings.EqualFold(p.Second, o.Second) {
		return true
	}
	return strings.EqualFold(p.First, o.Second) && strings.EqualFold(p.Second, o.First)
}

func (p Pair) String() string {
	return p.First + "," + p.Second
}

// IsValidPair reports whether both words of p are distinct corpus words,
// each individually formable from h, that are anagrams of each other. Each
// word is checked against the full hand, not what the other word leaves.
func (idx *Index) IsValidPair(p Pair, h hand.Hand) bool {
	a := strings.ToLower(p.First)
	b := strings.ToLower(p.Second)
	if !idx.lex.HasWord(a) || !idx.lex.HasWord(b) || a == b {
		return false
	}
	if !hand.CanForm(a, h) || !hand.CanForm(b, h) {
		return false
	}
	return Signature(a) == Signature(b)
}
