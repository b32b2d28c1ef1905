package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	Epsilon = 1e-6
)

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// ZVal returns the two-tailed Z-value associated with a specific confidence interval.
// The interval is a number from 0 to 100 percent.
func ZVal(confidenceInterval float64) float64 {
	dist := distuv.Normal{
		Mu:    0,
		Sigma: 1,
	}
	area := (1 + (confidenceInterval / 100)) / 2
	return dist.Quantile(area)
}

// running keeps a running mean and variance (Welford's algorithm).
type running struct {
	n    int
	mean float64
	m2   float64
}

func (r *running) push(val float64) {
	r.n++
	delta := val - r.mean
	r.mean += delta / float64(r.n)
	r.m2 += delta * (val - r.mean)
}

func (r *running) variance() float64 {
	if r.n <= 1 {
		return 0
	}
	return r.m2 / float64(r.n-1)
}

func (r *running) stdev() float64 {
	return math.Sqrt(r.variance())
}

func (r *running) stderr() float64 {
	if r.n == 0 {
		return 0
	}
	return math.Sqrt(r.variance() / float64(r.n))
}

// Summary accumulates results over several rounds of a session.
type Summary struct {
	score    running
	accuracy running
	skill    running
	best     int
	scores   []float64
}

// Add records one finished round.
func (s *Summary) Add(st Stats) {
	if s.score.n == 0 || st.Score > s.best {
		s.best = st.Score
	}
	s.score.push(float64(st.Score))
	s.scores = append(s.scores, float64(st.Score))
	s.accuracy.push(float64(st.Accuracy))
	s.skill.push(float64(st.Skill))
}

func (s *Summary) Rounds() int {
	return s.score.n
}

func (s *Summary) BestScore() int {
	return s.best
}

func (s *Summary) MeanScore() float64 {
	return s.score.mean
}

func (s *Summary) ScoreStdev() float64 {
	return s.score.stdev()
}

func (s *Summary) MeanAccuracy() float64 {
	return s.accuracy.mean
}

func (s *Summary) MeanSkill() float64 {
	return s.skill.mean
}

// ScoreInterval returns the confidence interval (0-100) around the mean
// score.
func (s *Summary) ScoreInterval(confidence float64) (low, high float64) {
	d := ZVal(confidence) * s.score.stderr()
	return s.score.mean - d, s.score.mean + d
}

func (s *Summary) ToDisplayText() string {
	var sb strings.Builder
	if s.Rounds() == 0 {
		return "No rounds played yet."
	}
	low, high := s.ScoreInterval(95)
	fmt.Fprintf(&sb, "Rounds played: %d\n", s.Rounds())
	fmt.Fprintf(&sb, "Best score: %d\n", s.BestScore())
	fmt.Fprintf(&sb, "Mean score: %.2f (stdev %.2f, 95%% CI %.2f to %.2f)\n",
		s.MeanScore(), s.ScoreStdev(), low, high)
	fmt.Fprintf(&sb, "Mean accuracy: %.2f%%\n", s.MeanAccuracy())
	fmt.Fprintf(&sb, "Mean skill: %.2f%%", s.MeanSkill())
	return sb.String()
}

// maxHistBins caps the number of histogram buckets.
const maxHistBins = 10

// FprintScoreHistogram draws the distribution of round scores to w. Nothing
// is drawn until at least two different scores have been seen.
func (s *Summary) FprintScoreHistogram(w io.Writer, width int) error {
	if len(lo.Uniq(s.scores)) < 2 {
		_, err := io.WriteString(w, "Not enough different scores for a histogram yet.\n")
		return err
	}
	hist := histogram.Hist(min(maxHistBins, len(s.scores)), s.scores)
	return histogram.Fprint(w, hist, histogram.Linear(width))
}
