// Package game runs a single timed round of anagram guessing: it holds the
// hand, collects guesses until the player quits or the clock runs out, and
// hands the guesses to the stats package when the round is finished.
package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/domino14/anagame/anagrammer"
	"github.com/domino14/anagame/config"
	"github.com/domino14/anagame/hand"
	"github.com/domino14/anagame/letterdist"
	"github.com/domino14/anagame/stats"
)

var (
	ErrRoundOver    = errors.New("the round is over")
	ErrNoHint       = errors.New("no word in this hand has an anagram")
	ErrInvalidGuess = errors.New("invalid input; guesses look like word1,word2")
)

type PlayState int

const (
	Playing PlayState = iota
	Quit
	TimedOut
	Finished
)

func (ps PlayState) String() string {
	switch ps {
	case Playing:
		return "playing"
	case Quit:
		return "quit"
	case TimedOut:
		return "timed out"
	case Finished:
		return "finished"
	}
	return "unknown"
}

// Round is one game: a hand and the guesses made against it before the
// deadline. A Round is not safe for concurrent use.
type Round struct {
	hand     hand.Hand
	idx      *anagrammer.Index
	guesses  []anagrammer.Pair
	started  time.Time
	deadline time.Time
	now      func() time.Time
	playing  PlayState
	hints    int
	rejected int
}

// NewRound starts a round on h that lasts for timeLimit.
func NewRound(h hand.Hand, idx *anagrammer.Index, timeLimit time.Duration) *Round {
	return newRound(h, idx, timeLimit, time.Now)
}

func newRound(h hand.Hand, idx *anagrammer.Index, timeLimit time.Duration,
	now func() time.Time) *Round {

	started := now()
	return &Round{
		hand:     h.Copy(),
		idx:      idx,
		guesses:  []anagrammer.Pair{},
		started:  started,
		deadline: started.Add(timeLimit),
		now:      now,
		playing:  Playing,
	}
}

// RoundOptions controls how a round's hand is generated and how long the
// round lasts.
type RoundOptions struct {
	// Hand, if set, is played instead of a generated hand.
	Hand         hand.Hand
	Distribution string
	HandSize     int
	FunFactor    int
	MaxAttempts  uint
	TimeLimit    time.Duration
}

func OptionsFromConfig(cfg *config.Config) RoundOptions {
	return RoundOptions{
		Distribution: cfg.GetString(config.ConfigLetterDistribution),
		HandSize:     cfg.GetInt(config.ConfigHandSize),
		FunFactor:    cfg.GetInt(config.ConfigFunFactor),
		MaxAttempts:  cfg.GetUint(config.ConfigMaxHandAttempts),
		TimeLimit:    cfg.GetDuration(config.ConfigTimeLimit),
	}
}

// NewRoundFromConfig generates a fun hand using the configured letter
// distribution and starts a round on it.
func NewRoundFromConfig(ctx context.Context, cfg *config.Config,
	idx *anagrammer.Index) (*Round, error) {
	return StartRound(ctx, cfg, idx, OptionsFromConfig(cfg))
}

// StartRound is NewRoundFromConfig with explicit options; cfg is only
// consulted to find letter distribution files.
func StartRound(ctx context.Context, cfg *config.Config, idx *anagrammer.Index,
	opts RoundOptions) (*Round, error) {

	if opts.TimeLimit <= 0 {
		return nil, fmt.Errorf("time limit must be positive, got %v", opts.TimeLimit)
	}
	if opts.Hand != nil {
		if err := opts.Hand.Validate(opts.HandSize); err != nil {
			return nil, err
		}
		log.Info().Str("hand", opts.Hand.String()).Dur("time-limit", opts.TimeLimit).
			Msg("starting round with a chosen hand")
		return NewRound(opts.Hand, idx, opts.TimeLimit), nil
	}
	dist, err := letterdist.Named(cfg, opts.Distribution)
	if err != nil {
		return nil, err
	}
	h, words, err := anagrammer.GenerateHand(ctx, idx, dist, anagrammer.HandRequest{
		Size:        opts.HandSize,
		FunFactor:   opts.FunFactor,
		MaxAttempts: opts.MaxAttempts,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("hand", h.String()).Int("playable", len(words)).
		Dur("time-limit", opts.TimeLimit).Msg("starting round")
	return NewRound(h, idx, opts.TimeLimit), nil
}

// Hand returns a copy of the round's hand.
func (r *Round) Hand() hand.Hand {
	return r.hand.Copy()
}

func (r *Round) Index() *anagrammer.Index {
	return r.idx
}

// Playing returns the state of the round, moving it to TimedOut once the
// deadline has passed.
func (r *Round) Playing() PlayState {
	if r.playing == Playing && !r.now().Before(r.deadline) {
		r.playing = TimedOut
	}
	return r.playing
}

func (r *Round) IsPlaying() bool {
	return r.Playing() == Playing
}

// Remaining is the time left before the deadline, never negative.
func (r *Round) Remaining() time.Duration {
	if r.Playing() != Playing {
		return 0
	}
	return r.deadline.Sub(r.now())
}

func (r *Round) Elapsed() time.Duration {
	return r.now().Sub(r.started)
}

// AddGuess parses a typed line and records it. Lines whose first word is a
// single letter or empty are rejected with ErrInvalidGuess and not recorded;
// everything else is recorded, valid or not, and judged when the round
// finishes.
func (r *Round) AddGuess(raw string) (anagrammer.Pair, error) {
	if !r.IsPlaying() {
		return anagrammer.Pair{}, ErrRoundOver
	}
	p := ParseGuess(raw)
	if utf8.RuneCountInString(p.First) <= 1 {
		r.rejected++
		return p, ErrInvalidGuess
	}
	r.guesses = append(r.guesses, p)
	log.Debug().Str("guess", p.String()).Int("n", len(r.guesses)).Msg("guess")
	return p, nil
}

// Guesses returns the recorded guesses in the order they were made.
func (r *Round) Guesses() []anagrammer.Pair {
	return append([]anagrammer.Pair(nil), r.guesses...)
}

// Hint suggests the word of the hand with the most anagrams.
func (r *Round) Hint() (string, error) {
	if !r.IsPlaying() {
		return "", ErrRoundOver
	}
	word, ok := r.idx.BestHintWord(r.hand)
	if !ok {
		return "", ErrNoHint
	}
	r.hints++
	return word, nil
}

func (r *Round) HintsUsed() int {
	return r.hints
}

// Rejected counts lines that AddGuess turned away as malformed.
func (r *Round) Rejected() int {
	return r.rejected
}

// Quit ends the round early.
func (r *Round) Quit() {
	if r.Playing() == Playing {
		r.playing = Quit
	}
}

// Finish ends the round and scores it.
func (r *Round) Finish() stats.Stats {
	ps := r.Playing()
	r.playing = Finished
	st := stats.Aggregate(r.guesses, r.hand, r.idx)
	log.Info().Str("ended", ps.String()).Int("score", st.Score).
		Int("accuracy", st.Accuracy).Int("skill", st.Skill).
		Int("hints", r.HintsUsed()).Int("rejected", r.Rejected()).
		Dur("elapsed", r.Elapsed()).Msg("round finished")
	return st
}

// ToDisplayText shows the hand and the time left.
func (r *Round) ToDisplayText() string {
	letters := strings.Join(r.hand.Letters(), " ")
	if !r.IsPlaying() {
		return fmt.Sprintf("[%s] %s", letters, r.playing)
	}
	return fmt.Sprintf("[%s] %.2f seconds left", letters, r.Remaining().Seconds())
}
