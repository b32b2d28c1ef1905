package stats

import (
	"bytes"
	"testing"

	"github.com/matryer/is"
)

func TestSummaryRunningScore(t *testing.T) {
	is := is.New(t)
	type tc struct {
		scores []int
		mean   float64
		stdev  float64
	}
	cases := []tc{
		{[]int{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638},
		{[]int{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891},
		{[]int{1}, 1, 0},
		{[]int{}, 0, 0},
		{[]int{1, 1}, 1, 0},
	}
	for _, c := range cases {
		s := &Summary{}
		for _, score := range c.scores {
			s.Add(Stats{Score: score})
		}
		is.Equal(s.Rounds(), len(c.scores))
		is.True(FuzzyEqual(s.MeanScore(), c.mean))
		is.True(FuzzyEqual(s.ScoreStdev(), c.stdev))
	}
}

func TestSummaryBestAndMeans(t *testing.T) {
	is := is.New(t)
	s := &Summary{}
	s.Add(Stats{Score: 0, Accuracy: 20, Skill: 2})
	s.Add(Stats{Score: 7, Accuracy: 60, Skill: 10})
	s.Add(Stats{Score: 3, Accuracy: 40, Skill: 6})
	is.Equal(s.BestScore(), 7)
	is.True(FuzzyEqual(s.MeanAccuracy(), 40))
	is.True(FuzzyEqual(s.MeanSkill(), 6))
}

func TestZVal(t *testing.T) {
	is := is.New(t)
	is.True(FuzzyEqual(ZVal(95), 1.959963984540054))
	is.True(FuzzyEqual(ZVal(99), 2.5758293035489004))
}

func TestScoreInterval(t *testing.T) {
	is := is.New(t)
	s := &Summary{}
	low, high := s.ScoreInterval(95)
	is.Equal(low, 0.0)
	is.Equal(high, 0.0)

	for _, score := range []int{10, 12, 23, 23, 16, 23, 21, 16} {
		s.Add(Stats{Score: score})
	}
	low, high = s.ScoreInterval(95)
	is.True(low < 18 && high > 18)
	is.True(FuzzyEqual(18-low, high-18))
}

func TestSummaryDisplay(t *testing.T) {
	is := is.New(t)
	s := &Summary{}
	is.Equal(s.ToDisplayText(), "No rounds played yet.")
	s.Add(Stats{Score: 4, Accuracy: 50, Skill: 10})
	is.Equal(s.ToDisplayText(), "Rounds played: 1\nBest score: 4\n"+
		"Mean score: 4.00 (stdev 0.00, 95% CI 4.00 to 4.00)\n"+
		"Mean accuracy: 50.00%\nMean skill: 10.00%")
}

func TestScoreHistogram(t *testing.T) {
	is := is.New(t)
	s := &Summary{}
	var buf bytes.Buffer
	is.NoErr(s.FprintScoreHistogram(&buf, 20))
	is.Equal(buf.String(), "Not enough different scores for a histogram yet.\n")

	for _, score := range []int{3, 3, 3} {
		s.Add(Stats{Score: score})
	}
	buf.Reset()
	is.NoErr(s.FprintScoreHistogram(&buf, 20))
	is.Equal(buf.String(), "Not enough different scores for a histogram yet.\n")

	for _, score := range []int{1, 5, 8, 5} {
		s.Add(Stats{Score: score})
	}
	buf.Reset()
	is.NoErr(s.FprintScoreHistogram(&buf, 20))
	is.True(buf.Len() > 0)
	is.True(buf.String() != "Not enough different scores for a histogram yet.\n")
}
