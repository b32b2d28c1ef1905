package letterdist

import (
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/anagame/cache"
	"github.com/domino14/anagame/config"
	"github.com/domino14/anagame/hand"
)

const (
	Scrabble = "scrabble"
	Uniform  = "uniform"
)

//go:embed data/*.csv
var builtin embed.FS

// Distribution is a read-only weighted letter table that hands are sampled
// from. Letters are drawn with replacement, so drawing never exhausts it.
type Distribution struct {
	Name       string
	letters    []rune
	quantities []uint8
	numLetters uint
}

// ScanDistribution reads a distribution in letter,quantity CSV format.
func ScanDistribution(name string, data io.Reader) (*Distribution, error) {
	r := csv.NewReader(data)
	r.FieldsPerRecord = 2
	d := &Distribution{Name: name}
	seen := map[rune]bool{}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		letter := strings.ToLower(strings.TrimSpace(record[0]))
		if utf8.RuneCountInString(letter) != 1 {
			return nil, fmt.Errorf("bad letter %q in distribution %v", record[0], name)
		}
		rn, _ := utf8.DecodeRuneInString(letter)
		if seen[rn] {
			return nil, fmt.Errorf("duplicate letter %q in distribution %v", letter, name)
		}
		seen[rn] = true
		n, err := strconv.Atoi(strings.TrimSpace(record[1]))
		if err != nil {
			return nil, err
		}
		if n < 0 || n > 255 {
			return nil, fmt.Errorf("quantity %d out of range for %q", n, letter)
		}
		d.letters = append(d.letters, rn)
		d.quantities = append(d.quantities, uint8(n))
		d.numLetters += uint(n)
	}
	if d.numLetters == 0 {
		return nil, errors.New("distribution " + name + " has no letters")
	}
	return d, nil
}

// NumLetters is the total weight of the distribution, e.g. 98 for the
// scrabble table.
func (d *Distribution) NumLetters() uint {
	return d.numLetters
}

// Quantity returns the weight of a single letter.
func (d *Distribution) Quantity(r rune) uint8 {
	for i, l := range d.letters {
		if l == r {
			return d.quantities[i]
		}
	}
	return 0
}

// Pool expands the distribution into one entry per tile.
func (d *Distribution) Pool() []rune {
	pool := make([]rune, 0, d.numLetters)
	for i, l := range d.letters {
		for j := uint8(0); j < d.quantities[i]; j++ {
			pool = append(pool, l)
		}
	}
	return pool
}

// letterAt returns the letter at the given index of the expanded pool
// without building the pool.
func (d *Distribution) letterAt(idx uint) rune {
	counter := uint(0)
	for i, l := range d.letters {
		counter += uint(d.quantities[i])
		if counter > idx {
			return l
		}
	}
	// unreachable for idx < numLetters
	return d.letters[len(d.letters)-1]
}

// Draw samples n letters with replacement, each letter weighted by its
// quantity.
func (d *Distribution) Draw(n int) hand.Hand {
	h := make(hand.Hand, n)
	for i := range h {
		h[i] = d.letterAt(uint(frand.Intn(int(d.numLetters))))
	}
	return h
}

func loadFunc(cfg *config.Config, key string) (interface{}, error) {
	name := strings.TrimPrefix(key, "letterdist:")
	path := filepath.Join(cfg.GetString(config.ConfigDataPath), "letterdistributions", name+".csv")
	f, err := os.Open(path)
	if err == nil {
		defer f.Close()
		log.Debug().Str("path", path).Msg("loading letter distribution from file")
		return ScanDistribution(name, f)
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	bf, err := builtin.Open("data/" + name + ".csv")
	if err != nil {
		return nil, fmt.Errorf("letter distribution %v not found", name)
	}
	defer bf.Close()
	return ScanDistribution(name, bf)
}

// Named loads a distribution by name. A CSV file in
// <data-path>/letterdistributions takes precedence over the built-in
// scrabble and uniform tables.
func Named(cfg *config.Config, name string) (*Distribution, error) {
	name = strings.ToLower(name)
	obj, err := cache.Load(cfg, "letterdist:"+name, loadFunc)
	if err != nil {
		return nil, err
	}
	d, ok := obj.(*Distribution)
	if !ok {
		return nil, errors.New("cached object is not a letter distribution")
	}
	return d, nil
}
