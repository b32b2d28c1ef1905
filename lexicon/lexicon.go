package lexicon

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/domino14/anagame/cache"
	"github.com/domino14/anagame/config"
)

// DefaultName is the name of the embedded corpus.
const DefaultName = "default"

//go:embed data/words.txt
var defaultWords string

// Lexicon answers membership questions about a word list.
type Lexicon interface {
	Name() string
	HasWord(word string) bool
}

// Corpus is an immutable ordered list of lowercase words. Duplicates are
// kept as encountered.
type Corpus struct {
	name     string
	words    []string
	set      map[string]struct{}
	checksum uint64
}

// NewCorpus creates a corpus from words, lowercasing each.
func NewCorpus(name string, words []string) *Corpus {
	c := &Corpus{
		name:  name,
		words: make([]string, 0, len(words)),
		set:   make(map[string]struct{}, len(words)),
	}
	d := xxhash.New()
	for _, w := range words {
		w = strings.ToLower(w)
		c.words = append(c.words, w)
		c.set[w] = struct{}{}
		d.Write([]byte(w))
		d.Write([]byte{'\n'})
	}
	c.checksum = d.Sum64()
	return c
}

func (c *Corpus) Name() string {
	return c.name
}

// HasWord is case-insensitive.
func (c *Corpus) HasWord(word string) bool {
	_, ok := c.set[strings.ToLower(word)]
	return ok
}

// Words returns a copy of the corpus in its original order.
func (c *Corpus) Words() []string {
	ws := make([]string, len(c.words))
	copy(ws, c.words)
	return ws
}

func (c *Corpus) Len() int {
	return len(c.words)
}

// Checksum is an xxhash of the corpus contents, useful for telling apart
// two corpora with the same name.
func (c *Corpus) Checksum() uint64 {
	return c.checksum
}

// decoder returns a reader that converts the given encoding to UTF-8.
func decoder(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(encoding) {
	case "", "utf8", "utf-8":
		return r, nil
	case "latin1", "iso-8859-1", "iso8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	}
	return nil, errors.New("unhandled character encoding " + encoding)
}

// Scan reads a corpus with one word per line. Blank lines and lines
// starting with # are skipped; surrounding whitespace is trimmed.
func Scan(name string, r io.Reader, encoding string) (*Corpus, error) {
	dr, err := decoder(r, encoding)
	if err != nil {
		return nil, err
	}
	scanner := bufio.NewScanner(dr)
	var words []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// Only the first field counts; some word lists carry definitions.
		words = append(words, strings.Fields(line)[0])
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return NewCorpus(name, words), nil
}

// Default returns the embedded corpus.
func Default() *Corpus {
	c, err := Scan(DefaultName, strings.NewReader(defaultWords), "utf8")
	if err != nil {
		// the embedded list is plain UTF-8 text
		panic(err)
	}
	return c
}

func loadFunc(cfg *config.Config, key string) (interface{}, error) {
	path := strings.TrimPrefix(key, "corpus:")
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening corpus: %w", err)
	}
	defer f.Close()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	c, err := Scan(name, f, cfg.GetString(config.ConfigCorpusEncoding))
	if err != nil {
		return nil, fmt.Errorf("reading corpus %v: %w", path, err)
	}
	log.Info().Str("corpus", name).Int("words", c.Len()).
		Uint64("checksum", c.Checksum()).Msg("loaded corpus")
	return c, nil
}

// Load returns the corpus named by the corpus-file setting, or the
// embedded default if that is empty. Corpora are cached per path.
func Load(cfg *config.Config) (*Corpus, error) {
	obj, err := cache.Load(cfg, CacheKey(cfg), loadFunc)
	if err != nil {
		return nil, err
	}
	c, ok := obj.(*Corpus)
	if !ok {
		return nil, errors.New("cached object is not a corpus")
	}
	return c, nil
}

// CacheKey is the object-cache key of the corpus the config points at.
func CacheKey(cfg *config.Config) string {
	return "corpus:" + cfg.GetString(config.ConfigCorpusFile)
}
