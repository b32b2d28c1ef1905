package cache

import (
	"sync"

	"github.com/domino14/anagame/config"
	"github.com/rs/zerolog/log"
)

// The cache holds large read-only objects that are expensive to build and
// safe to share: corpora, anagram indexes, letter distributions. Several
// rounds (or several sessions in one process) reuse the same objects.

type cache struct {
	sync.Mutex
	objects map[string]interface{}
}

type LoadFunc func(cfg *config.Config, key string) (interface{}, error)

// GlobalObjectCache is our global object cache, of course.
var GlobalObjectCache *cache

var createOnce sync.Once

func (c *cache) load(cfg *config.Config, key string, loadFunc LoadFunc) (interface{}, error) {
	log.Debug().Str("key", key).Msg("loading into cache")

	// The lock is not held while loading, since loaders may themselves
	// load other objects (an index loads its corpus).
	obj, err := loadFunc(cfg, key)
	if err != nil {
		return nil, err
	}
	c.Lock()
	defer c.Unlock()
	if existing, ok := c.objects[key]; ok {
		// Someone else loaded it first.
		return existing, nil
	}
	c.objects[key] = obj
	return obj, nil
}

func (c *cache) get(cfg *config.Config, key string, loadFunc LoadFunc) (interface{}, error) {
	c.Lock()
	obj, ok := c.objects[key]
	c.Unlock()
	if !ok {
		return c.load(cfg, key, loadFunc)
	}
	log.Debug().Str("key", key).Msg("getting obj from cache")

	return obj, nil
}

func (c *cache) evict(key string) bool {
	c.Lock()
	defer c.Unlock()
	_, ok := c.objects[key]
	delete(c.objects, key)
	return ok
}

func CreateGlobalObjectCache() {
	createOnce.Do(func() {
		GlobalObjectCache = &cache{objects: make(map[string]interface{})}
	})
}

// Load returns the object stored under name, calling loadFunc to build it
// on first use.
func Load(cfg *config.Config, name string, loadFunc LoadFunc) (interface{}, error) {
	CreateGlobalObjectCache()
	return GlobalObjectCache.get(cfg, name, loadFunc)
}

// Evict drops the object stored under name, if any. It returns whether
// anything was dropped.
func Evict(name string) bool {
	CreateGlobalObjectCache()
	return GlobalObjectCache.evict(name)
}
