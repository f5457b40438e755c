package evaluator

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/domino14/reversi/board"
)

// MaxWeight bounds every individual weight so that no evaluation can
// approach the search's infinity sentinel.
const MaxWeight = 10000

var ErrBadWeights = errors.New("bad evaluation weights")

// Weights parametrize both evaluators.
type Weights struct {
	// Positional is indexed by square, row-major from a1.
	Positional    [board.NumSquares]int
	Disc          int
	Mobility      int
	LateDisc      int
	TerminalScale int
}

var defaultPositional = [board.NumSquares]int{
	100, -20, 10, 5, 5, 10, -20, 100,
	-20, -50, -2, -2, -2, -2, -50, -20,
	10, -2, -1, -1, -1, -1, -2, 10,
	5, -2, -1, -1, -1, -1, -2, 5,
	5, -2, -1, -1, -1, -1, -2, 5,
	10, -2, -1, -1, -1, -1, -2, 10,
	-20, -50, -2, -2, -2, -2, -50, -20,
	100, -20, 10, 5, 5, 10, -20, 100,
}

func DefaultWeights() *Weights {
	return &Weights{
		Positional:    defaultPositional,
		Disc:          1,
		Mobility:      10,
		LateDisc:      20,
		TerminalScale: 1000,
	}
}

type weightsFile struct {
	Positional    [][]int `yaml:"positional"`
	Disc          *int    `yaml:"disc"`
	Mobility      *int    `yaml:"mobility"`
	LateDisc      *int    `yaml:"late-disc"`
	TerminalScale *int    `yaml:"terminal-scale"`
}

// ParseWeights reads a YAML weights document. Fields that are left out keep
// their default values.
func ParseWeights(data []byte) (*Weights, error) {
	var f weightsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadWeights, err)
	}
	w := DefaultWeights()
	if f.Positional != nil {
		if len(f.Positional) != board.Dim {
			return nil, fmt.Errorf("%w: positional table has %d rows", ErrBadWeights, len(f.Positional))
		}
		for r, row := range f.Positional {
			if len(row) != board.Dim {
				return nil, fmt.Errorf("%w: positional row %d has %d columns", ErrBadWeights, r+1, len(row))
			}
			for c, v := range row {
				w.Positional[board.Index(r, c)] = v
			}
		}
	}
	for _, kv := range []struct {
		src *int
		dst *int
	}{
		{f.Disc, &w.Disc},
		{f.Mobility, &w.Mobility},
		{f.LateDisc, &w.LateDisc},
		{f.TerminalScale, &w.TerminalScale},
	} {
		if kv.src != nil {
			*kv.dst = *kv.src
		}
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

// LoadWeights reads a weights file from disk.
func LoadWeights(path string) (*Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseWeights(data)
}

func (w *Weights) Validate() error {
	check := func(name string, v int) error {
		if v > MaxWeight || v < -MaxWeight {
			return fmt.Errorf("%w: %s %d is out of range", ErrBadWeights, name, v)
		}
		return nil
	}
	for sq, v := range w.Positional {
		if err := check("positional "+squareLabel(sq), v); err != nil {
			return err
		}
	}
	for _, e := range []error{
		check("disc", w.Disc),
		check("mobility", w.Mobility),
		check("late-disc", w.LateDisc),
		check("terminal-scale", w.TerminalScale),
	} {
		if e != nil {
			return e
		}
	}
	if w.TerminalScale <= 0 {
		return fmt.Errorf("%w: terminal-scale must be positive", ErrBadWeights)
	}
	return nil
}

func squareLabel(sq int) string {
	r, c := board.Coords(sq)
	return fmt.Sprintf("%c%d", 'a'+c, r+1)
}
