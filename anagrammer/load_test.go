package anagrammer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/anagame/config"
)

func TestLoad(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigBuildThreads, 2)
	idx1, err := Load(cfg)
	is.NoErr(err)
	idx2, err := Load(cfg)
	is.NoErr(err)
	is.True(idx1 == idx2)
	is.True(idx1.NumWords() > 300)
	is.True(idx1.Lexicon().HasWord("rat"))

	cfg.Set(config.ConfigCorpusFile, "testdata/missing.txt")
	_, err = Load(cfg)
	is.True(err != nil)
}

func TestEvictRereadsCorpus(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "latin.txt")
	// "caf\xe9" and "fac\xe9" are café and facé in ISO-8859-1.
	is.NoErr(os.WriteFile(path, []byte("caf\xe9\nfac\xe9\nrat\n"), 0o644))
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigCorpusFile, path)

	idx, err := Load(cfg)
	is.NoErr(err)
	is.True(!idx.Lexicon().HasWord("café"))

	is.NoErr(cfg.Update(config.ConfigCorpusEncoding, "latin1"))
	idx, err = Load(cfg)
	is.NoErr(err)
	// still the index read as utf8
	is.True(!idx.Lexicon().HasWord("café"))

	is.True(Evict(cfg))
	is.True(!Evict(cfg))
	idx, err = Load(cfg)
	is.NoErr(err)
	is.True(idx.Lexicon().HasWord("café"))
	is.Equal(len(idx.Anagrams("café")), 2)
}
