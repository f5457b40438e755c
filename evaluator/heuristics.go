package evaluator

import (
	"github.com/domino14/reversi/board"
)

// StaticEvaluator is a fixed function of the cells: positional weights plus
// a small disc-differential term.
type StaticEvaluator struct {
	weights *Weights
}

func (e *StaticEvaluator) Mode() Mode {
	return ModeStatic
}

func (e *StaticEvaluator) Evaluate(b board.Board) int {
	return positional(&b, e.weights) + e.weights.Disc*discDiff(&b)
}

// DynamicEvaluator depends on the turn counter as well. Early on mobility
// dominates; the disc-count weight grows linearly until the last turn. A
// finished game is scored by its final disc differential times
// TerminalScale, so any decided outcome outranks every estimate.
type DynamicEvaluator struct {
	weights *Weights
}

func (e *DynamicEvaluator) Mode() Mode {
	return ModeDynamic
}

func (e *DynamicEvaluator) Evaluate(b board.Board) int {
	if b.IsTerminal() {
		return e.weights.TerminalScale * discDiff(&b)
	}
	progress := min(max(b.Turn(), 0), GameLength)
	mobility := b.Mobility(board.Black) - b.Mobility(board.White)
	// Integer division truncates toward zero, which keeps the score
	// antisymmetric under a color swap.
	mobilityTerm := e.weights.Mobility * (GameLength - progress) * mobility / GameLength
	discTerm := e.weights.LateDisc * progress * discDiff(&b) / GameLength
	return positional(&b, e.weights) + mobilityTerm + discTerm
}

func discDiff(b *board.Board) int {
	return b.Count(board.Black) - b.Count(board.White)
}

func positional(b *board.Board, w *Weights) int {
	sum := 0
	for sq := 0; sq < board.NumSquares; sq++ {
		switch b.At(sq) {
		case board.Black:
			sum += w.Positional[sq]
		case board.White:
			sum -= w.Positional[sq]
		}
	}
	return sum
}
