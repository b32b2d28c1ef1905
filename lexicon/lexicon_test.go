package lexicon

import (
	"os"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/anagame/cache"
	"github.com/domino14/anagame/config"
)

func TestScan(t *testing.T) {
	is := is.New(t)
	f, err := os.Open("testdata/small.txt")
	is.NoErr(err)
	defer f.Close()
	c, err := Scan("small", f, "utf8")
	is.NoErr(err)
	is.Equal(c.Words(), []string{"abed", "mouse", "bead", "baled", "abled", "rat", "blade", "rat"})
	is.Equal(c.Len(), 8)
	is.True(c.HasWord("BLADE"))
	is.True(!c.HasWord("tar"))
	is.Equal(c.Name(), "small")
}

func TestScanLatin1(t *testing.T) {
	is := is.New(t)
	f, err := os.Open("testdata/latin1.txt")
	is.NoErr(err)
	defer f.Close()
	c, err := Scan("latin1", f, "latin1")
	is.NoErr(err)
	is.Equal(c.Words(), []string{"café", "façe", "état"})
}

func TestScanBadEncoding(t *testing.T) {
	is := is.New(t)
	_, err := Scan("x", strings.NewReader("rat\n"), "ebcdic")
	is.True(err != nil)
}

func TestChecksum(t *testing.T) {
	a := NewCorpus("a", []string{"rat", "tar", "art"})
	b := NewCorpus("b", []string{"RAT", "tar", "art"})
	c := NewCorpus("c", []string{"rat", "art", "tar"})
	assert.Equal(t, a.Checksum(), b.Checksum())
	assert.NotEqual(t, a.Checksum(), c.Checksum())
}

func TestWordsIsACopy(t *testing.T) {
	is := is.New(t)
	c := NewCorpus("a", []string{"rat", "tar"})
	ws := c.Words()
	ws[0] = "zzz"
	is.Equal(c.Words()[0], "rat")
}

func TestDefaultCorpus(t *testing.T) {
	is := is.New(t)
	c := Default()
	is.True(c.Len() > 300)
	for _, w := range []string{"rat", "art", "abed", "bead", "mouse", "stop", "pots"} {
		is.True(c.HasWord(w))
	}
	for _, w := range c.Words() {
		is.Equal(w, strings.ToLower(w))
		is.True(!strings.HasPrefix(w, "#"))
	}
}

func TestLoad(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigCorpusFile, "testdata/small.txt")
	c1, err := Load(cfg)
	is.NoErr(err)
	c2, err := Load(cfg)
	is.NoErr(err)
	is.True(c1 == c2)
	is.Equal(c1.Name(), "small")
	is.True(cache.Evict(CacheKey(cfg)))

	cfg.Set(config.ConfigCorpusFile, "testdata/nonexistent.txt")
	_, err = Load(cfg)
	is.True(err != nil)

	cfg.Set(config.ConfigCorpusFile, "")
	c3, err := Load(cfg)
	is.NoErr(err)
	is.Equal(c3.Name(), DefaultName)
}
