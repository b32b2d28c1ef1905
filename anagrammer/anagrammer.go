// Package anagrammer groups a corpus by letter signature and answers
// questions about which of those groups can be played from a hand.
package anagrammer

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/anagame/hand"
	"github.com/domino14/anagame/lexicon"
)

// MinPlayableLength is the shortest word that counts as playable. Two-letter
// words can anagram (no/on) but are not allowed in play.
const MinPlayableLength = 3

// sigChunk is the number of words a single goroutine signs during a
// parallel build.
const sigChunk = 4096

// Signature returns the sorted letters of the lowercased word. Two words
// have the same signature iff they are anagrams of each other.
func Signature(word string) string {
	rs := []rune(strings.ToLower(word))
	slices.Sort(rs)
	return string(rs)
}

// Group is the set of corpus words sharing one signature, in sorted corpus
// order.
type Group struct {
	Signature string
	Words     []string
}

// Index is built once from a corpus and is read-only afterwards, so it can
// be shared by any number of concurrent rounds.
type Index struct {
	lex      lexicon.Lexicon
	groups   map[string][]string
	order    []string
	numWords int
}

// Build builds an index sequentially.
func Build(corpus *lexicon.Corpus) *Index {
	// Without a cancelable context the build cannot fail.
	idx, _ := BuildContext(context.Background(), corpus, 1)
	return idx
}

// FromWords builds an index from a plain word list.
func FromWords(words []string) *Index {
	return Build(lexicon.NewCorpus("", words))
}

// BuildContext builds an index, computing signatures with up to threads
// goroutines. The result does not depend on the number of threads.
func BuildContext(ctx context.Context, corpus *lexicon.Corpus, threads int) (*Index, error) {
	t := time.Now()
	words := corpus.Words()
	slices.Sort(words)

	sigs := make([]string, len(words))
	if threads <= 1 || len(words) <= sigChunk {
		for i, w := range words {
			sigs[i] = Signature(w)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(threads)
		for start := 0; start < len(words); start += sigChunk {
			end := min(start+sigChunk, len(words))
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				for i := start; i < end; i++ {
					sigs[i] = Signature(words[i])
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	idx := &Index{
		lex:      corpus,
		groups:   make(map[string][]string),
		numWords: len(words),
	}
	for i, w := range words {
		s := sigs[i]
		if _, ok := idx.groups[s]; !ok {
			idx.order = append(idx.order, s)
		}
		idx.groups[s] = append(idx.groups[s], w)
	}
	log.Debug().Str("corpus", corpus.Name()).Int("words", idx.numWords).
		Int("groups", len(idx.order)).Dur("elapsed", time.Since(t)).
		Msg("built anagram index")
	return idx, nil
}

// NumWords is the number of words the index was built from, duplicates
// included.
func (idx *Index) NumWords() int {
	return idx.numWords
}

func (idx *Index) NumGroups() int {
	return len(idx.order)
}

// Lexicon returns the word list the index was built from.
func (idx *Index) Lexicon() lexicon.Lexicon {
	return idx.lex
}

// Groups returns every group in the order its signature was first seen in
// the sorted corpus.
func (idx *Index) Groups() []Group {
	gs := make([]Group, len(idx.order))
	for i, s := range idx.order {
		gs[i] = Group{Signature: s, Words: slices.Clone(idx.groups[s])}
	}
	return gs
}

// Anagrams returns the group word belongs to, including word itself, or nil
// if no corpus word has its signature.
func (idx *Index) Anagrams(word string) []string {
	return slices.Clone(idx.groups[Signature(word)])
}

// PlayableWords returns every word of length MinPlayableLength or more that
// has at least one anagram partner and whose letters can be taken from h.
func (idx *Index) PlayableWords(h hand.Hand) WordSet {
	ws := WordSet{}
	for _, s := range idx.order {
		group := idx.groups[s]
		if len(group) < 2 || !hand.CanForm(s, h) {
			continue
		}
		for _, w := range group {
			if len([]rune(w)) >= MinPlayableLength {
				ws.Add(w)
			}
		}
	}
	return ws
}

// BestHintWord returns the first word of the largest group playable from h.
// Among equally large groups the one with the smallest signature wins. A
// group must have at least two words; if none does, ok is false.
func (idx *Index) BestHintWord(h hand.Hand) (word string, ok bool) {
	best := 1
	bestSig := ""
	for _, s := range idx.order {
		n := len(idx.groups[s])
		if n < best || !hand.CanForm(s, h) {
			continue
		}
		if n > best || (n == best && bestSig != "" && s < bestSig) {
			best = n
			bestSig = s
		}
	}
	if bestSig == "" {
		return "", false
	}
	return idx.groups[bestSig][0], true
}
