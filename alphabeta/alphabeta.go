// Package alphabeta implements depth-limited minimax with alpha-beta
// pruning over any two-player, zero-sum game state.
package alphabeta

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// thanks Wikipedia:
/**function alphabeta(node, depth, α, β, maximizingPlayer) is
    if depth = 0 or node is a terminal node then
        return the heuristic value of node
    if maximizingPlayer then
        value := −∞
        for each child of node do
            value := max(value, alphabeta(child, depth − 1, α, β, FALSE))
            α := max(α, value)
            if value ≥ β then
                break (* β cut-off *)
        return value
    else
        value := +∞
        for each child of node do
            value := min(value, alphabeta(child, depth − 1, α, β, TRUE))
            β := min(β, value)
            if value ≤ α then
                break (* α cut-off *)
        return value
**/

const (
	// Infinity is 10 million. It is finite so that it can be negated safely,
	// and much larger than any evaluation.
	Infinity = 10000000
	// EndgameTurn is the turn at which a search is extended to the end of
	// the game.
	EndgameTurn = 50
	// EndgameDepth is the search depth used from EndgameTurn on. It is deep
	// enough to reach the end of any game.
	EndgameDepth = 60
)

var (
	ErrNoSuccessors = errors.New("successor generator returned nothing for a non-terminal state")
	ErrBadBounds    = errors.New("search window is empty")
)

// State is what the search needs to know about a position.
type State interface {
	IsTerminal() bool
	// MaximizerToMove is true when the side to move wants high scores.
	MaximizerToMove() bool
}

type SuccessorGenerator[S State] interface {
	// Successors must be deterministic and must not modify s.
	Successors(s S) []S
}

type Evaluator[S State] interface {
	Evaluate(s S) int
}

// SuccessorFunc adapts a plain function to SuccessorGenerator.
type SuccessorFunc[S State] func(S) []S

func (f SuccessorFunc[S]) Successors(s S) []S { return f(s) }

// EvalFunc adapts a plain function to Evaluator.
type EvalFunc[S State] func(S) int

func (f EvalFunc[S]) Evaluate(s S) int { return f(s) }

// StopFunc is consulted on entry to every node below the root. Once it
// returns true, that node and every node after it are treated as leaves.
type StopFunc func(Stats) bool

// Stats describe a single search.
type Stats struct {
	// Nodes counts expanded (interior) nodes.
	Nodes int
	// Leaves counts nodes that were evaluated as leaves of the search.
	Leaves  int
	Cutoffs int
	// MaxPly is the deepest ply reached, relative to the root.
	MaxPly  int
	Stopped bool
	Elapsed time.Duration
}

// Result is the outcome of a search.
type Result[S State] struct {
	// Board is the successor chosen at the root. If the root itself was cut
	// off it is the lookahead leaf of the branch that caused the cutoff; if
	// the root is a leaf it is the root.
	Board S
	// Leaf is the lookahead leaf whose evaluation is Value.
	Leaf   S
	Value  int
	Cutoff bool
	Stats  Stats
}

// EffectiveDepth returns the maximum depth to search for a position at
// turn. From endgameTurn on, the search is extended to endgameDepth.
func EffectiveDepth(turn, requested, endgameTurn, endgameDepth int) int {
	if turn >= endgameTurn {
		return max(requested, endgameDepth)
	}
	return requested
}

// Solver implements the minimax + alphabeta algorithm. It holds only
// configuration; every search keeps its state in a run of its own, so a
// Solver can be used again and from several goroutines.
type Solver[S State] struct {
	gen            SuccessorGenerator[S]
	eval           Evaluator[S]
	disablePruning bool
	stop           StopFunc
}

func NewSolver[S State](gen SuccessorGenerator[S], eval Evaluator[S]) *Solver[S] {
	return &Solver[S]{gen: gen, eval: eval}
}

// SetPruningDisabled turns the search into plain minimax. Useful for
// testing, since both must agree on the result.
func (s *Solver[S]) SetPruningDisabled(d bool) {
	s.disablePruning = d
}

func (s *Solver[S]) SetStopFunc(f StopFunc) {
	s.stop = f
}

type node[S State] struct {
	chosen S
	leaf   S
	value  int
	cutoff bool
}

type run[S State] struct {
	*Solver[S]
	rootDepth int
	stats     Stats
}

// Search looks ahead from b, which is at currentDepth, down to maxDepth.
// The window must satisfy alpha < beta; the usual top-level call is
// Search(b, 0, depth, -Infinity, Infinity).
func (s *Solver[S]) Search(b S, currentDepth, maxDepth, alpha, beta int) (Result[S], error) {
	if alpha >= beta {
		return Result[S]{}, fmt.Errorf("%w: alpha %d, beta %d", ErrBadBounds, alpha, beta)
	}
	tstart := time.Now()
	r := &run[S]{Solver: s, rootDepth: currentDepth}
	n, err := r.search(b, currentDepth, maxDepth, alpha, beta)
	r.stats.Elapsed = time.Since(tstart)
	if err != nil {
		return Result[S]{Stats: r.stats}, err
	}
	log.Debug().
		Int("current-depth", currentDepth).
		Int("max-depth", maxDepth).
		Int("value", n.value).
		Int("nodes", r.stats.Nodes).
		Int("leaves", r.stats.Leaves).
		Int("cutoffs", r.stats.Cutoffs).
		Int("max-ply", r.stats.MaxPly).
		Bool("stopped", r.stats.Stopped).
		Dur("elapsed", r.stats.Elapsed).
		Msg("alphabeta-search")

	return Result[S]{
		Board:  n.chosen,
		Leaf:   n.leaf,
		Value:  n.value,
		Cutoff: n.cutoff,
		Stats:  r.stats,
	}, nil
}

func (r *run[S]) leaf(b S) node[S] {
	r.stats.Leaves++
	return node[S]{chosen: b, leaf: b, value: r.eval.Evaluate(b)}
}

func (r *run[S]) shouldStop() bool {
	if r.stats.Stopped {
		return true
	}
	if r.stop != nil && r.stop(r.stats) {
		r.stats.Stopped = true
	}
	return r.stats.Stopped
}

func (r *run[S]) search(b S, depth, maxDepth, alpha, beta int) (node[S], error) {
	r.stats.MaxPly = max(r.stats.MaxPly, depth-r.rootDepth)

	if b.IsTerminal() || depth >= maxDepth {
		return r.leaf(b), nil
	}
	if depth > r.rootDepth && r.shouldStop() {
		return r.leaf(b), nil
	}

	succs := r.gen.Successors(b)
	if len(succs) == 0 {
		return node[S]{}, fmt.Errorf("%w: %v", ErrNoSuccessors, b)
	}
	r.stats.Nodes++
	maximizing := b.MaximizerToMove()

	var best node[S]
	for i, succ := range Order(succs, maximizing, r.eval) {
		child, err := r.search(succ, depth+1, maxDepth, alpha, beta)
		if err != nil {
			return node[S]{}, err
		}
		v := child.value
		if maximizing {
			if i == 0 || v > best.value {
				best = node[S]{chosen: succ, leaf: child.leaf, value: v}
			}
			alpha = max(alpha, v)
			if !r.disablePruning && v >= beta {
				r.stats.Cutoffs++
				return node[S]{chosen: child.leaf, leaf: child.leaf, value: v, cutoff: true}, nil
			}
		} else {
			if i == 0 || v < best.value {
				best = node[S]{chosen: succ, leaf: child.leaf, value: v}
			}
			beta = min(beta, v)
			if !r.disablePruning && v <= alpha {
				r.stats.Cutoffs++
				return node[S]{chosen: child.leaf, leaf: child.leaf, value: v, cutoff: true}, nil
			}
		}
	}
	return best, nil
}
