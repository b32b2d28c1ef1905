package hand

import (
	"errors"
	"fmt"
	"unicode"
)

// Size is the number of letters dealt for a standard round.
const Size = 7

var (
	ErrWrongSize    = errors.New("hand has the wrong number of letters")
	ErrBadCharacter = errors.New("hand may only contain lowercase letters")
)

// Hand is the multiset of letters a player may build words from. None of
// the functions in this package modify a Hand; matching always works on
// a scratch copy.
type Hand []rune

// FromString creates a hand from a user-visible string. Whitespace and
// commas are dropped, so "p o t s r i a", "p,o,t,s,r,i,a" and "potsria"
// are equivalent.
func FromString(s string) Hand {
	h := make(Hand, 0, len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == ',' {
			continue
		}
		h = append(h, unicode.ToLower(r))
	}
	return h
}

// String returns a user-visible version of this hand.
func (h Hand) String() string {
	return string(h)
}

// Letters returns the hand as a list of single-letter strings.
func (h Hand) Letters() []string {
	ls := make([]string, len(h))
	for i, r := range h {
		ls[i] = string(r)
	}
	return ls
}

// Copy returns a deep copy of this hand.
func (h Hand) Copy() Hand {
	n := make(Hand, len(h))
	copy(n, h)
	return n
}

// Counts returns a fresh letter -> multiplicity map for this hand.
func (h Hand) Counts() map[rune]int {
	counts := make(map[rune]int, len(h))
	for _, r := range h {
		counts[unicode.ToLower(r)]++
	}
	return counts
}

// Validate checks that the hand has exactly size letters, all lowercase.
func (h Hand) Validate(size int) error {
	if len(h) != size {
		return fmt.Errorf("%w: have %d, want %d", ErrWrongSize, len(h), size)
	}
	for _, r := range h {
		if !unicode.IsLower(r) {
			return fmt.Errorf("%w: %q", ErrBadCharacter, r)
		}
	}
	return nil
}

// CanForm returns true if every letter of word can be taken from h, each
// letter of h being usable at most once. A word needing two e's fails
// against a hand holding a single e.
func CanForm(word string, h Hand) bool {
	counts := h.Counts()
	for _, r := range word {
		r = unicode.ToLower(r)
		if counts[r] == 0 {
			return false
		}
		counts[r]--
	}
	return true
}

// Leave returns the letters of h that remain after word is formed from it.
// The returned hand keeps the original letter order.
func Leave(h Hand, word string) (Hand, error) {
	counts := make(map[rune]int)
	for _, r := range word {
		counts[unicode.ToLower(r)]++
	}
	leave := make(Hand, 0, len(h))
	for _, r := range h {
		if counts[r] > 0 {
			counts[r]--
			continue
		}
		leave = append(leave, r)
	}
	for r, n := range counts {
		if n > 0 {
			return nil, fmt.Errorf("letter in word but not in hand: %q", r)
		}
	}
	return leave, nil
}
