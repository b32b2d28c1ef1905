package anagrammer

import (
	"context"
	"errors"
	"fmt"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/domino14/anagame/hand"
	"github.com/domino14/anagame/letterdist"
)

// DefaultMaxAttempts caps GenerateHand when no cap is given.
const DefaultMaxAttempts = 100000

var ErrNoFunHand = errors.New("no hand with enough playable words was found")

var errNotFun = errors.New("not enough playable words")

// HandRequest holds the parameters for generating a hand.
type HandRequest struct {
	Size int
	// FunFactor is the minimum number of playable words the hand must offer.
	FunFactor   int
	MaxAttempts uint
}

// GenerateHand draws hands from dist until one offers at least
// req.FunFactor playable words, giving up with ErrNoFunHand after
// req.MaxAttempts draws. It returns the hand and its playable words.
func GenerateHand(ctx context.Context, idx *Index, dist *letterdist.Distribution,
	req HandRequest) (hand.Hand, WordSet, error) {

	if req.Size <= 0 {
		req.Size = hand.Size
	}
	if req.MaxAttempts == 0 {
		req.MaxAttempts = DefaultMaxAttempts
	}
	var h hand.Hand
	var words WordSet
	tries := 0
	err := retry.Do(
		func() error {
			tries++
			h = dist.Draw(req.Size)
			words = idx.PlayableWords(h)
			if len(words) < req.FunFactor {
				return errNotFun
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(req.MaxAttempts),
		retry.Delay(0),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
		log.Debug().Int("tries", tries).Int("fun-factor", req.FunFactor).
			Str("distribution", dist.Name).Msg("gave up generating hand")
		return nil, nil, fmt.Errorf("%w: fun factor %d, %d attempts", ErrNoFunHand,
			req.FunFactor, tries)
	}
	log.Debug().Int("tries", tries).Str("hand", h.String()).
		Int("playable", len(words)).Msg("generated hand")
	return h, words, nil
}
