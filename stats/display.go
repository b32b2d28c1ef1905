package stats

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/domino14/anagame/anagrammer"
)

const rule = "------------"

// ToDisplayText renders the end-of-round report.
func (s *Stats) ToDisplayText() string {
	var sb strings.Builder
	fmt.Fprintln(&sb, rule)
	fmt.Fprintf(&sb, "Final Score: %d\n", s.Score)
	fmt.Fprintln(&sb, rule)
	fmt.Fprintf(&sb, "Accuracy: %d%%\n", s.Accuracy)
	fmt.Fprintf(&sb, " valid guesses (%d):%s\n", len(s.Valid), pairList(s.Valid))
	fmt.Fprintf(&sb, " invalid guesses (%d):%s\n", len(s.Invalid), pairList(s.Invalid))
	fmt.Fprintln(&sb, rule)
	fmt.Fprintf(&sb, "Skill: %d%%\n", s.Skill)
	fmt.Fprintf(&sb, " unique words you could have guessed (%d):\n", len(s.NotGuessed))
	for _, w := range s.NotGuessed.Sorted() {
		fmt.Fprintf(&sb, "  %s", w)
	}
	return sb.String()
}

func pairList(ps []anagrammer.Pair) string {
	var sb strings.Builder
	for _, p := range ps {
		sb.WriteString("  ")
		sb.WriteString(p.String())
	}
	return sb.String()
}

// Report is the serialized form of a round's stats.
type Report struct {
	Hand       string            `yaml:"hand"`
	Score      int               `yaml:"score"`
	Accuracy   int               `yaml:"accuracy"`
	Skill      int               `yaml:"skill"`
	Valid      []anagrammer.Pair `yaml:"valid,flow"`
	Invalid    []anagrammer.Pair `yaml:"invalid,flow"`
	Guessed    []string          `yaml:"guessed,flow"`
	NotGuessed []string          `yaml:"not_guessed,flow"`
}

func (s *Stats) Report() Report {
	return Report{
		Hand:       s.Hand.String(),
		Score:      s.Score,
		Accuracy:   s.Accuracy,
		Skill:      s.Skill,
		Valid:      s.Valid,
		Invalid:    s.Invalid,
		Guessed:    s.Guessed.Sorted(),
		NotGuessed: s.NotGuessed.Sorted(),
	}
}

// WriteYAML writes the report as a one-element YAML list, so that reports
// of successive rounds appended to one file form a single document.
func (s *Stats) WriteYAML(w io.Writer) error {
	out, err := yaml.Marshal([]Report{s.Report()})
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// AppendYAML appends the report to the file at path, creating it if needed.
func (s *Stats) AppendYAML(path string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if err := s.WriteYAML(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadReports reads back a file written by AppendYAML.
func ReadReports(r io.Reader) ([]Report, error) {
	var reports []Report
	if err := yaml.NewDecoder(r).Decode(&reports); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	return reports, nil
}
