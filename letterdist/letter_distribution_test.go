package letterdist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/anagame/config"
)

var DefaultConfig = config.DefaultConfig()

func TestScrabbleDistribution(t *testing.T) {
	is := is.New(t)
	d, err := Named(DefaultConfig, Scrabble)
	is.NoErr(err)
	is.Equal(d.NumLetters(), uint(98))
	is.Equal(d.Quantity('e'), uint8(12))
	is.Equal(d.Quantity('z'), uint8(1))
	is.Equal(d.Quantity('?'), uint8(0))
	is.Equal(len(d.Pool()), 98)
}

func TestUniformDistribution(t *testing.T) {
	is := is.New(t)
	d, err := Named(DefaultConfig, "Uniform")
	is.NoErr(err)
	is.Equal(d.NumLetters(), uint(26))
	is.Equal(string(d.Pool()), "abcdefghijklmnopqrstuvwxyz")
}

func TestUnknownDistribution(t *testing.T) {
	is := is.New(t)
	_, err := Named(DefaultConfig, "klingon")
	is.True(err != nil)
}

func TestDistributionFromDataPath(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	is.NoErr(os.MkdirAll(filepath.Join(dir, "letterdistributions"), 0o755))
	is.NoErr(os.WriteFile(filepath.Join(dir, "letterdistributions", "vowelly.csv"),
		[]byte("a,3\ne,2\n"), 0o644))
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigDataPath, dir)
	d, err := Named(cfg, "vowelly")
	is.NoErr(err)
	is.Equal(string(d.Pool()), "aaaee")
}

func TestScanDistributionErrors(t *testing.T) {
	is := is.New(t)
	for _, bad := range []string{
		"",
		"a,x\n",
		"ab,1\n",
		"a,1\na,2\n",
		"a,300\n",
		"a,1,1\n",
	} {
		_, err := ScanDistribution("bad", strings.NewReader(bad))
		is.True(err != nil)
	}
}

func TestDraw(t *testing.T) {
	is := is.New(t)
	d, err := ScanDistribution("two", strings.NewReader("q,1\nx,0\n"))
	is.NoErr(err)
	h := d.Draw(7)
	is.Equal(h.String(), "qqqqqqq")

	d, err = Named(DefaultConfig, Scrabble)
	is.NoErr(err)
	for i := 0; i < 100; i++ {
		h := d.Draw(7)
		is.Equal(len(h), 7)
		for _, r := range h {
			is.True(d.Quantity(r) > 0)
		}
	}
}
