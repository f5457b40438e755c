// Package strategy turns the search into a computer player: given the
// current board it picks a move and plays it.
package strategy

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/config"
	"github.com/domino14/reversi/evaluator"
)

var (
	ErrUnknownStrategy = errors.New("unknown strategy")
	ErrBadDepth        = errors.New("search depth must be at least 1")
)

// Strategy chooses and plays a move for the side to move. Move mutates b
// in place and returns the same pointer.
type Strategy interface {
	Name() string
	Move(b *board.Board) (*board.Board, error)
}

// Names lists the strategies New knows about.
var Names = []string{"alphabeta", "minimax", "greedy", "random"}

// New builds a named strategy using the search and evaluation settings in
// cfg.
func New(name string, cfg *config.Config) (Strategy, error) {
	switch strings.ToLower(name) {
	case "alphabeta", "ab":
		return FromConfig(cfg)
	case "minimax":
		return FromConfig(cfg, WithoutPruning())
	case "greedy":
		ev, err := evaluatorFromConfig(cfg)
		if err != nil {
			return nil, err
		}
		return NewGreedyStrategy(ev), nil
	case "random":
		return NewRandomStrategy(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// FromConfig builds an AlphaBetaStrategy from cfg. Extra options are
// applied after the ones derived from cfg.
func FromConfig(cfg *config.Config, extra ...Option) (*AlphaBetaStrategy, error) {
	ev, err := evaluatorFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	opts := []Option{
		WithEvaluator(ev),
		WithEndgame(cfg.GetInt(config.ConfigEndgameTurn), cfg.GetInt(config.ConfigEndgameDepth)),
	}
	if n := cfg.GetInt(config.ConfigNodeBudget); n > 0 {
		opts = append(opts, WithNodeBudget(n))
	}
	if ms := cfg.GetInt(config.ConfigTimeLimitMs); ms > 0 {
		opts = append(opts, WithTimeLimit(time.Duration(ms)*time.Millisecond))
	}
	opts = append(opts, extra...)
	return NewAlphaBetaStrategy(cfg.GetInt(config.ConfigSearchDepth), ev.Mode(), opts...)
}

func evaluatorFromConfig(cfg *config.Config) (evaluator.Evaluator, error) {
	mode, err := evaluator.ParseMode(cfg.GetString(config.ConfigEvalMode))
	if err != nil {
		return nil, err
	}
	var weights *evaluator.Weights
	if path := cfg.GetString(config.ConfigWeightsPath); path != "" {
		weights, err = evaluator.LoadWeights(path)
		if err != nil {
			return nil, fmt.Errorf("loading weights from %s: %w", path, err)
		}
		log.Info().Str("path", path).Msg("loaded-evaluation-weights")
	}
	ev, err := evaluator.New(mode, weights)
	if err != nil {
		return nil, err
	}
	if frac := cfg.GetFloat64(config.ConfigEvalCacheFraction); frac > 0 {
		return evaluator.NewCache(ev, frac), nil
	}
	return ev, nil
}
