package anagrammer

import (
	"context"
	"errors"
	"runtime"
	"strings"

	"github.com/domino14/anagame/cache"
	"github.com/domino14/anagame/config"
	"github.com/domino14/anagame/lexicon"
)

func indexLoadFunc(cfg *config.Config, key string) (interface{}, error) {
	corpus, err := lexicon.Load(cfg)
	if err != nil {
		return nil, err
	}
	threads := cfg.GetInt(config.ConfigBuildThreads)
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	return BuildContext(context.Background(), corpus, threads)
}

func indexCacheKey(cfg *config.Config) string {
	return "index:" + strings.TrimPrefix(lexicon.CacheKey(cfg), "corpus:")
}

// Load returns the index of the corpus the config points at, building it
// on first use.
func Load(cfg *config.Config) (*Index, error) {
	obj, err := cache.Load(cfg, indexCacheKey(cfg), indexLoadFunc)
	if err != nil {
		return nil, err
	}
	idx, ok := obj.(*Index)
	if !ok {
		return nil, errors.New("cached object is not an anagram index")
	}
	return idx, nil
}

// Evict drops the cached corpus and index the config points at, so that the
// next Load reads the corpus again. It returns whether anything was cached.
func Evict(cfg *config.Config) bool {
	idx := cache.Evict(indexCacheKey(cfg))
	corpus := cache.Evict(lexicon.CacheKey(cfg))
	return idx || corpus
}
