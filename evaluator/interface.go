// Package evaluator scores reversi positions. Scores are always from
// Black's point of view: positive favours Black, negative favours White.
package evaluator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/domino14/reversi/board"
)

// GameLength is the number of placements in a full game, used to measure
// how far along a position is.
const GameLength = board.NumSquares - 4

// Mode selects one of the closed set of evaluation strategies.
type Mode int

const (
	ModeUnset Mode = iota
	// ModeStatic ignores the turn counter.
	ModeStatic
	// ModeDynamic shifts weight from mobility to discs as the game goes on
	// and scores finished games exactly.
	ModeDynamic
)

var ErrUnknownMode = errors.New("evaluation mode is unset or unknown")

func (m Mode) String() string {
	switch m {
	case ModeStatic:
		return "static"
	case ModeDynamic:
		return "dynamic"
	}
	return "unset"
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "static":
		return ModeStatic, nil
	case "dynamic":
		return ModeDynamic, nil
	}
	return ModeUnset, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Evaluator scores a board. Implementations are deterministic and free of
// side effects, so they may be shared across goroutines.
type Evaluator interface {
	Evaluate(b board.Board) int
	Mode() Mode
}

// New builds the evaluator for mode. A nil w means DefaultWeights.
func New(mode Mode, w *Weights) (Evaluator, error) {
	if w == nil {
		w = DefaultWeights()
	}
	switch mode {
	case ModeStatic:
		return &StaticEvaluator{weights: w}, nil
	case ModeDynamic:
		return &DynamicEvaluator{weights: w}, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownMode, int(mode))
}
