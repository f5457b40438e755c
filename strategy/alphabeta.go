package strategy

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/reversi/alphabeta"
	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/evaluator"
	"github.com/domino14/reversi/move"
	"github.com/domino14/reversi/movegen"
)

// AlphaBetaStrategy searches a fixed number of plies ahead, and to the end
// of the game once the endgame turn is reached.
type AlphaBetaStrategy struct {
	depth        int
	endgameTurn  int
	endgameDepth int
	eval         evaluator.Evaluator
	gen          *movegen.Generator

	nodeBudget     int
	timeLimit      time.Duration
	disablePruning bool
}

type Option func(*AlphaBetaStrategy)

func WithEndgame(turn, depth int) Option {
	return func(s *AlphaBetaStrategy) {
		s.endgameTurn = turn
		s.endgameDepth = depth
	}
}

// WithDepth overrides the requested search depth.
func WithDepth(n int) Option {
	return func(s *AlphaBetaStrategy) { s.depth = n }
}

// WithNodeBudget stops each search after n expanded nodes.
func WithNodeBudget(n int) Option {
	return func(s *AlphaBetaStrategy) { s.nodeBudget = n }
}

// WithTimeLimit stops each search once d has passed. The move returned is
// the best found so far.
func WithTimeLimit(d time.Duration) Option {
	return func(s *AlphaBetaStrategy) { s.timeLimit = d }
}

// WithoutPruning makes the strategy a plain minimax player.
func WithoutPruning() Option {
	return func(s *AlphaBetaStrategy) { s.disablePruning = true }
}

// WithEvaluator replaces the evaluator built from the mode.
func WithEvaluator(e evaluator.Evaluator) Option {
	return func(s *AlphaBetaStrategy) { s.eval = e }
}

func NewAlphaBetaStrategy(depth int, mode evaluator.Mode, opts ...Option) (*AlphaBetaStrategy, error) {
	s := &AlphaBetaStrategy{
		depth:        depth,
		endgameTurn:  alphabeta.EndgameTurn,
		endgameDepth: alphabeta.EndgameDepth,
		gen:          movegen.NewGenerator(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.depth < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadDepth, s.depth)
	}
	if s.eval == nil {
		ev, err := evaluator.New(mode, nil)
		if err != nil {
			return nil, err
		}
		s.eval = ev
	}
	return s, nil
}

func (s *AlphaBetaStrategy) Name() string {
	kind := "alphabeta"
	if s.disablePruning {
		kind = "minimax"
	}
	return fmt.Sprintf("%s-%s-%d", kind, s.eval.Mode(), s.depth)
}

// Evaluator returns the evaluator the search scores leaves with.
func (s *AlphaBetaStrategy) Evaluator() evaluator.Evaluator {
	return s.eval
}

func (s *AlphaBetaStrategy) stopFunc() alphabeta.StopFunc {
	if s.nodeBudget <= 0 && s.timeLimit <= 0 {
		return nil
	}
	deadline := time.Now().Add(s.timeLimit)
	return func(st alphabeta.Stats) bool {
		if s.nodeBudget > 0 && st.Nodes >= s.nodeBudget {
			return true
		}
		return s.timeLimit > 0 && time.Now().After(deadline)
	}
}

// Choose searches b and returns the move that leads to the chosen
// successor along with the full search result. b is not modified.
func (s *AlphaBetaStrategy) Choose(b board.Board) (*move.Move, alphabeta.Result[board.Board], error) {
	if b.IsTerminal() {
		return nil, alphabeta.Result[board.Board]{}, movegen.ErrGameOver
	}
	maxDepth := alphabeta.EffectiveDepth(b.Turn(), s.depth, s.endgameTurn, s.endgameDepth)

	// A fresh solver per request: nothing carries over between moves.
	solver := alphabeta.NewSolver[board.Board](s.gen, s.eval)
	solver.SetPruningDisabled(s.disablePruning)
	solver.SetStopFunc(s.stopFunc())

	res, err := solver.Search(b, 0, maxDepth, -alphabeta.Infinity, alphabeta.Infinity)
	if err != nil {
		return nil, res, err
	}
	m, err := move.Derive(b, res.Board)
	if err != nil {
		return nil, res, err
	}
	ev := log.Debug().
		Str("strategy", s.Name()).
		Int("turn", b.Turn()).
		Int("max-depth", maxDepth).
		Str("move", m.ShortDescription()).
		Int("value", res.Value).
		Int("nodes", res.Stats.Nodes).
		Bool("stopped", res.Stats.Stopped)
	if c, ok := s.eval.(*evaluator.Cache); ok {
		ev = ev.Uint64("cache-lookups", c.Lookups()).Uint64("cache-hits", c.Hits())
	}
	ev.Msg("chose-move")
	return m, res, nil
}

func (s *AlphaBetaStrategy) Move(b *board.Board) (*board.Board, error) {
	m, _, err := s.Choose(*b)
	if err != nil {
		return b, err
	}
	if err := s.gen.Play(b, m); err != nil {
		return b, err
	}
	return b, nil
}
