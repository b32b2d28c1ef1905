// Package stats scores a finished round of guesses.
package stats

import (
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/domino14/anagame/anagrammer"
	"github.com/domino14/anagame/hand"
)

// Stats is the result of one round.
type Stats struct {
	Hand hand.Hand
	// Valid holds accepted pairs in the order first guessed. A pair and its
	// reverse count as the same pair.
	Valid []anagrammer.Pair
	// Invalid holds rejected and repeated guesses in submission order.
	Invalid  []anagrammer.Pair
	Score    int
	Accuracy int
	Skill    int
	// Guessed is every word appearing in a valid pair, lowercased.
	Guessed anagrammer.WordSet
	// NotGuessed is every playable word the player missed.
	NotGuessed anagrammer.WordSet
}

// Guesses is the number of guesses the stats were computed from.
func (s *Stats) Guesses() int {
	return len(s.Valid) + len(s.Invalid)
}

// PairScore is what a valid pair is worth: the length of its first word
// less two. Both words of a valid pair are anagrams and so the same length.
func PairScore(p anagrammer.Pair) int {
	return utf8.RuneCountInString(p.First) - 2
}

// percent returns floor(100*n/d), or 0 when d is 0.
func percent(n, d int) int {
	if d == 0 {
		return 0
	}
	return 100 * n / d
}

// Aggregate scores guesses made against h.
func Aggregate(guesses []anagrammer.Pair, h hand.Hand, idx *anagrammer.Index) Stats {
	s := Stats{
		Hand:    h.Copy(),
		Valid:   []anagrammer.Pair{},
		Invalid: []anagrammer.Pair{},
	}
	for _, g := range guesses {
		dup := lo.ContainsBy(s.Valid, func(v anagrammer.Pair) bool {
			return v.SameAs(g)
		})
		if !dup && idx.IsValidPair(g, h) {
			s.Valid = append(s.Valid, g)
		} else {
			s.Invalid = append(s.Invalid, g)
		}
	}

	s.Score = lo.SumBy(s.Valid, PairScore)
	s.Accuracy = percent(len(s.Valid), len(guesses))

	s.Guessed = anagrammer.NewWordSet(lo.FlatMap(s.Valid, func(v anagrammer.Pair, _ int) []string {
		return []string{strings.ToLower(v.First), strings.ToLower(v.Second)}
	})...)
	playable := idx.PlayableWords(h)
	s.Skill = percent(len(s.Guessed), len(playable))
	s.NotGuessed = playable.Minus(s.Guessed)
	return s
}
