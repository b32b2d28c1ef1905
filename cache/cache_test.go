package cache

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/anagame/config"
)

func TestLoadCachesObject(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	calls := 0
	lf := func(cfg *config.Config, key string) (interface{}, error) {
		calls++
		return "obj:" + key, nil
	}
	o1, err := Load(cfg, "test:cached", lf)
	is.NoErr(err)
	o2, err := Load(cfg, "test:cached", lf)
	is.NoErr(err)
	is.Equal(o1, "obj:test:cached")
	is.Equal(o1, o2)
	is.Equal(calls, 1)

	is.True(Evict("test:cached"))
	is.True(!Evict("test:cached"))
	_, err = Load(cfg, "test:cached", lf)
	is.NoErr(err)
	is.Equal(calls, 2)
}

func TestLoadError(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	boom := errors.New("boom")
	_, err := Load(cfg, "test:error", func(cfg *config.Config, key string) (interface{}, error) {
		return nil, boom
	})
	is.Equal(err, boom)
	is.True(!Evict("test:error"))
}

func TestNestedLoad(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	inner := func(cfg *config.Config, key string) (interface{}, error) {
		return 1, nil
	}
	outer := func(cfg *config.Config, key string) (interface{}, error) {
		n, err := Load(cfg, "test:inner", inner)
		if err != nil {
			return nil, err
		}
		return n.(int) + 1, nil
	}
	obj, err := Load(cfg, "test:outer", outer)
	is.NoErr(err)
	is.Equal(obj, 2)
}
