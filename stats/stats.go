// Package stats accumulates running statistics over self-play results.
package stats

import (
	"fmt"
	"math"
)

const (
	Epsilon = 1e-6
)

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Statistic is a running mean and variance, updated with Welford's
// algorithm so it never keeps the samples around.
type Statistic struct {
	n    int
	mean float64
	m2   float64
	min  float64
	max  float64
}

func (s *Statistic) Push(val float64) {
	s.n++
	if s.n == 1 {
		s.mean, s.m2 = val, 0
		s.min, s.max = val, val
		return
	}
	delta := val - s.mean
	s.mean += delta / float64(s.n)
	s.m2 += delta * (val - s.mean)
	s.min = math.Min(s.min, val)
	s.max = math.Max(s.max, val)
}

func (s *Statistic) Mean() float64 {
	return s.mean
}

// Variance is the sample variance; it is 0 with fewer than two samples.
func (s *Statistic) Variance() float64 {
	if s.n < 2 {
		return 0
	}
	return s.m2 / float64(s.n-1)
}

func (s *Statistic) Stdev() float64 {
	return math.Sqrt(s.Variance())
}

func (s *Statistic) StandardError() float64 {
	if s.n == 0 {
		return 0
	}
	return math.Sqrt(s.Variance() / float64(s.n))
}

func (s *Statistic) Min() float64 { return s.min }
func (s *Statistic) Max() float64 { return s.max }

func (s *Statistic) Iterations() int {
	return s.n
}

// ConfidenceInterval returns the two-sided interval around the mean at the
// given confidence, in percent.
func (s *Statistic) ConfidenceInterval(confidence float64) (lo, hi float64) {
	half := ZVal(confidence) * s.StandardError()
	return s.mean - half, s.mean + half
}

// Outcomes tallies finished games from one side's point of view.
type Outcomes struct {
	Wins   int
	Losses int
	Draws  int
	// Margin holds the final disc differential of every game.
	Margin Statistic
}

// Add records a game that ended with the given disc differential.
func (o *Outcomes) Add(margin int) {
	switch {
	case margin > 0:
		o.Wins++
	case margin < 0:
		o.Losses++
	default:
		o.Draws++
	}
	o.Margin.Push(float64(margin))
}

func (o *Outcomes) Games() int {
	return o.Wins + o.Losses + o.Draws
}

// WinRate counts a draw as half a win.
func (o *Outcomes) WinRate() float64 {
	if o.Games() == 0 {
		return 0
	}
	return (float64(o.Wins) + float64(o.Draws)/2) / float64(o.Games())
}

func (o *Outcomes) String() string {
	lo, hi := o.Margin.ConfidenceInterval(95)
	return fmt.Sprintf("%d games: %d-%d-%d (%.1f%%), mean margin %.2f (95%% CI %.2f to %.2f)",
		o.Games(), o.Wins, o.Losses, o.Draws, 100*o.WinRate(), o.Margin.Mean(), lo, hi)
}
