package stats

import (
	"testing"

	"github.com/matryer/is"
)

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	type tc struct {
		margins  []int
		mean     float64
		stdev    float64
		min, max float64
	}
	cases := []tc{
		{[]int{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638, 10, 23},
		{[]int{-14, 35, -64, 2, 0, 41}, 0, 37.952602018833964, -64, 41},
		{[]int{1}, 1, 0, 1, 1},
		{[]int{}, 0, 0, 0, 0},
		{[]int{-8, -8}, -8, 0, -8, -8},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, m := range c.margins {
			s.Push(float64(m))
		}
		is.Equal(s.Iterations(), len(c.margins))
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))
		is.Equal(s.Min(), c.min)
		is.Equal(s.Max(), c.max)
	}
}

func TestZVal(t *testing.T) {
	is := is.New(t)
	is.True(FuzzyEqual(ZVal(95), 1.959963984540054))
	is.True(FuzzyEqual(ZVal(99), 2.5758293035489))
	is.True(FuzzyEqual(ZVal(0), 0))
}

func TestConfidenceInterval(t *testing.T) {
	is := is.New(t)
	s := &Statistic{}
	for _, m := range []int{10, 12, 23, 23, 16, 23, 21, 16} {
		s.Push(float64(m))
	}
	lo, hi := s.ConfidenceInterval(95)
	is.True(lo < s.Mean() && s.Mean() < hi)
	is.True(FuzzyEqual(hi-s.Mean(), s.Mean()-lo))
	is.True(FuzzyEqual(hi-s.Mean(), 1.959963984540054*s.StandardError()))
}

func TestOutcomes(t *testing.T) {
	is := is.New(t)
	o := &Outcomes{}
	for _, m := range []int{12, -4, 0, 30, 2} {
		o.Add(m)
	}
	is.Equal(o.Games(), 5)
	is.Equal(o.Wins, 3)
	is.Equal(o.Losses, 1)
	is.Equal(o.Draws, 1)
	is.True(FuzzyEqual(o.WinRate(), 0.7))
	is.True(FuzzyEqual(o.Margin.Mean(), 8))
	is.True(o.String() != "")
}
