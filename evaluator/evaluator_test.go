package evaluator_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/evaluator"
	"github.com/domino14/reversi/movegen"
)

func mustNew(t *testing.T, mode evaluator.Mode) evaluator.Evaluator {
	e, err := evaluator.New(mode, nil)
	require.NoError(t, err)
	return e
}

// swapColors mirrors a position: every disc changes color, as does the
// mover. Scores of a mirrored board must be negated.
func swapColors(t *testing.T, b board.Board) board.Board {
	layout := strings.Map(func(r rune) rune {
		switch r {
		case 'X':
			return 'O'
		case 'O':
			return 'X'
		}
		return r
	}, b.Layout())
	sw, err := board.FromString(layout, b.ToMove().Opponent(), b.Turn())
	require.NoError(t, err)
	return sw
}

func TestParseMode(t *testing.T) {
	m, err := evaluator.ParseMode("Static")
	assert.NoError(t, err)
	assert.Equal(t, evaluator.ModeStatic, m)
	m, err = evaluator.ParseMode(" dynamic ")
	assert.NoError(t, err)
	assert.Equal(t, evaluator.ModeDynamic, m)
	_, err = evaluator.ParseMode("clever")
	assert.ErrorIs(t, err, evaluator.ErrUnknownMode)

	_, err = evaluator.New(evaluator.ModeUnset, nil)
	assert.ErrorIs(t, err, evaluator.ErrUnknownMode)
}

func TestStaticEvaluator(t *testing.T) {
	e := mustNew(t, evaluator.ModeStatic)
	assert.Equal(t, evaluator.ModeStatic, e.Mode())

	assert.Equal(t, 0, e.Evaluate(board.NewStartingBoard()))
	cg := board.MustBoard(board.CornerGrab, board.Black, 10)
	assert.Equal(t, 49, e.Evaluate(cg))

	// The static evaluator ignores the turn counter and the mover.
	late := board.MustBoard(board.CornerGrab, board.White, 40)
	assert.Equal(t, 49, e.Evaluate(late))

	succs := movegen.NewGenerator().Successors(cg)
	scores := []int{}
	for _, s := range succs {
		scores = append(scores, e.Evaluate(s))
	}
	// a1, b3, e3, f3, f4, f5
	assert.Equal(t, []int{52, 48, 49, 49, 49, 49}, scores)

	assert.Equal(t, 176, e.Evaluate(board.MustBoard(board.AllBlack, board.White, 60)))
}

func TestDynamicEvaluator(t *testing.T) {
	e := mustNew(t, evaluator.ModeDynamic)
	assert.Equal(t, evaluator.ModeDynamic, e.Mode())

	assert.Equal(t, 0, e.Evaluate(board.NewStartingBoard()))
	cg := board.MustBoard(board.CornerGrab, board.Black, 10)
	assert.Equal(t, 51, e.Evaluate(cg))

	scores := []int{}
	for _, s := range movegen.NewGenerator().Successors(cg) {
		scores = append(scores, e.Evaluate(s))
	}
	assert.Equal(t, []int{68, 58, 59, 59, 59, 59}, scores)

	assert.Equal(t, -150, e.Evaluate(board.MustBoard(board.SixEmpty, board.Black, 54)))
	assert.Equal(t, 1231, e.Evaluate(board.MustBoard(board.ForcedPass, board.White, 58)))
}

func TestDynamicDependsOnTurn(t *testing.T) {
	e := mustNew(t, evaluator.ModeDynamic)
	early := board.MustBoard(board.SixEmpty, board.Black, 10)
	late := board.MustBoard(board.SixEmpty, board.Black, 54)
	assert.NotEqual(t, e.Evaluate(early), e.Evaluate(late))
}

func TestTerminalScoresExactly(t *testing.T) {
	e := mustNew(t, evaluator.ModeDynamic)
	over := board.MustBoard(board.AllBlack, board.White, 60)
	require.True(t, over.IsTerminal())
	assert.Equal(t, 64000, e.Evaluate(over))
	assert.Equal(t, -64000, e.Evaluate(swapColors(t, over)))
}

func TestAntisymmetry(t *testing.T) {
	boards := []board.Board{
		board.NewStartingBoard(),
		board.MustBoard(board.CornerGrab, board.Black, 10),
		board.MustBoard(board.SixEmpty, board.Black, 54),
		board.MustBoard(board.ForcedPass, board.White, 58),
	}
	for _, mode := range []evaluator.Mode{evaluator.ModeStatic, evaluator.ModeDynamic} {
		e := mustNew(t, mode)
		for _, b := range boards {
			assert.Equal(t, -e.Evaluate(b), e.Evaluate(swapColors(t, b)), "%v %v", mode, b)
		}
	}
}

func TestEvaluateLeavesBoardAlone(t *testing.T) {
	e := mustNew(t, evaluator.ModeDynamic)
	b := board.MustBoard(board.SixEmpty, board.Black, 54)
	before := b
	e.Evaluate(b)
	assert.Equal(t, before, b)
}

func TestParseWeights(t *testing.T) {
	w, err := evaluator.ParseWeights([]byte("disc: 3\nterminal-scale: 500\n"))
	require.NoError(t, err)
	def := evaluator.DefaultWeights()
	assert.Equal(t, 3, w.Disc)
	assert.Equal(t, 500, w.TerminalScale)
	assert.Equal(t, def.Mobility, w.Mobility)
	assert.Equal(t, def.Positional, w.Positional)

	flat := "positional:\n" + strings.Repeat("  - [1, 1, 1, 1, 1, 1, 1, 1]\n", 8)
	w, err = evaluator.ParseWeights([]byte(flat))
	require.NoError(t, err)
	for _, v := range w.Positional {
		assert.Equal(t, 1, v)
	}

	e, err := evaluator.New(evaluator.ModeStatic, w)
	require.NoError(t, err)
	// Only the disc terms remain: positional 4-1 plus disc 4-1.
	b := movegen.NewGenerator().Successors(board.NewStartingBoard())[0]
	assert.Equal(t, 6, e.Evaluate(b))
}

func TestParseWeightsErrors(t *testing.T) {
	cases := []string{
		"positional:\n  - [1, 2]\n",
		"positional:\n" + strings.Repeat("  - [1, 1, 1, 1, 1, 1, 1]\n", 8),
		"mobility: 20000\n",
		"terminal-scale: 0\n",
		"disc: [what\n",
	}
	for _, c := range cases {
		_, err := evaluator.ParseWeights([]byte(c))
		assert.ErrorIs(t, err, evaluator.ErrBadWeights, c)
	}
}

func TestLoadWeights(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	require.NoError(t, os.WriteFile(path, []byte("late-disc: 7\n"), 0o644))
	w, err := evaluator.LoadWeights(path)
	require.NoError(t, err)
	assert.Equal(t, 7, w.LateDisc)

	_, err = evaluator.LoadWeights(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
