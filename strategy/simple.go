package strategy

import (
	"lukechampine.com/frand"

	"github.com/domino14/reversi/alphabeta"
	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/evaluator"
	"github.com/domino14/reversi/move"
	"github.com/domino14/reversi/movegen"
)

// RandomStrategy plays a uniformly random legal move.
type RandomStrategy struct {
	gen *movegen.Generator
}

func NewRandomStrategy() *RandomStrategy {
	return &RandomStrategy{gen: movegen.NewGenerator()}
}

func (s *RandomStrategy) Name() string {
	return "random"
}

func (s *RandomStrategy) Move(b *board.Board) (*board.Board, error) {
	plays := s.gen.GenAll(*b)
	if len(plays) == 0 {
		return b, movegen.ErrGameOver
	}
	return b, s.gen.Play(b, plays[frand.Intn(len(plays))])
}

// GreedyStrategy plays the successor with the best immediate evaluation.
type GreedyStrategy struct {
	gen  *movegen.Generator
	eval evaluator.Evaluator
}

func NewGreedyStrategy(eval evaluator.Evaluator) *GreedyStrategy {
	return &GreedyStrategy{gen: movegen.NewGenerator(), eval: eval}
}

func (s *GreedyStrategy) Name() string {
	return "greedy-" + s.eval.Mode().String()
}

func (s *GreedyStrategy) Move(b *board.Board) (*board.Board, error) {
	succs := s.gen.Successors(*b)
	if len(succs) == 0 {
		return b, movegen.ErrGameOver
	}
	best := alphabeta.Order[board.Board](succs, b.MaximizerToMove(), s.eval)[0]
	m, err := move.Derive(*b, best)
	if err != nil {
		return b, err
	}
	return b, s.gen.Play(b, m)
}
