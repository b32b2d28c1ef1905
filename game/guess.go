package game

import (
	"strings"

	"github.com/domino14/anagame/anagrammer"
)

// ParseGuess splits a typed line such as "eat, tea" into a pair. All
// whitespace is removed. A line that does not contain exactly one comma
// parses to the zero Pair, which never validates.
func ParseGuess(raw string) anagrammer.Pair {
	if strings.Count(raw, ",") != 1 {
		return anagrammer.Pair{}
	}
	first, second, _ := strings.Cut(strings.Join(strings.Fields(raw), ""), ",")
	return anagrammer.Pair{First: first, Second: second}
}

// IsGuess reports whether a shell line should be treated as a guess rather
// than a command.
func IsGuess(line string) bool {
	return strings.Contains(line, ",")
}
