// Package testhelpers holds fixtures shared by the tests of several
// packages.
package testhelpers

import (
	"sync"

	"github.com/domino14/anagame/anagrammer"
	"github.com/domino14/anagame/config"
	"github.com/domino14/anagame/hand"
	"github.com/domino14/anagame/lexicon"
)

var DefaultConfig = config.DefaultConfig()

var defaultIndex = sync.OnceValue(func() *anagrammer.Index {
	return anagrammer.Build(lexicon.Default())
})

// DefaultIndex returns the index of the embedded corpus. It is built once
// and shared; tests must not modify it.
func DefaultIndex() *anagrammer.Index {
	return defaultIndex()
}

// Potsria is the hand of the worked example: p o t s r i a.
func Potsria() hand.Hand {
	return hand.FromString("potsria")
}

// ExampleGuesses are the guesses of the worked example. Against Potsria and
// the default corpus they give one valid pair, a score of 1 and 20%
// accuracy.
func ExampleGuesses() []anagrammer.Pair {
	return []anagrammer.Pair{
		{First: "star", Second: "tarts"},
		{First: "far", Second: "rat"},
		{First: "rat", Second: "art"},
		{First: "rat", Second: "art"},
		{First: "art", Second: "rat"},
	}
}
