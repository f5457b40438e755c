package game

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/evaluator"
	"github.com/domino14/reversi/move"
	"github.com/domino14/reversi/movegen"
	"github.com/domino14/reversi/strategy"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

// scripted plays a fixed square, or does something dishonest.
type scripted struct {
	square  string
	twoPly  bool
	noop    bool
	failure error
}

func (s *scripted) Name() string { return "scripted" }

func (s *scripted) Move(b *board.Board) (*board.Board, error) {
	if s.failure != nil {
		return b, s.failure
	}
	if s.noop {
		return b, nil
	}
	gen := movegen.NewGenerator()
	m, err := move.FromString(s.square, b.ToMove())
	if err != nil {
		return b, err
	}
	if err := gen.Play(b, m); err != nil {
		return b, err
	}
	if s.twoPly {
		if err := gen.Play(b, gen.GenAll(*b)[0]); err != nil {
			return b, err
		}
	}
	return b, nil
}

func TestPlayTurn(t *testing.T) {
	is := is.New(t)
	g := NewGame("alice", "bob")
	is.True(g.Uid() != "")
	is.True(g.Uid() != NewGame("a", "b").Uid())

	m, err := g.PlayTurn(&scripted{square: "f5"})
	is.NoErr(err)
	is.Equal(m.ShortDescription(), "f5")
	is.Equal(m.Flips(), 1)
	is.Equal(g.Turn(), 1)
	is.Equal(g.ToMove(), board.White)
	b, w := g.Score()
	is.Equal(b, 4)
	is.Equal(w, 1)
	is.Equal(len(g.History()), 1)
}

func TestDishonestPlayersAreRejected(t *testing.T) {
	is := is.New(t)
	g := NewGame("alice", "bob")
	start := g.Board()

	_, err := g.PlayTurn(&scripted{square: "d3", twoPly: true})
	is.True(errors.Is(err, move.ErrUnexplainedTransition))
	_, err = g.PlayTurn(&scripted{noop: true})
	is.True(errors.Is(err, move.ErrUnexplainedTransition))
	boom := errors.New("boom")
	_, err = g.PlayTurn(&scripted{failure: boom})
	is.True(errors.Is(err, boom))

	is.Equal(g.Board(), start)
	is.Equal(len(g.History()), 0)
}

func TestPlayMoveAndUndo(t *testing.T) {
	is := is.New(t)
	g := NewGame("alice", "bob")
	is.True(errors.Is(g.Undo(), ErrNothingToUndo))

	m, err := move.FromString("a1", board.Black)
	is.NoErr(err)
	is.True(errors.Is(g.PlayMove(m), movegen.ErrIllegalMove))

	for _, sq := range []string{"d3", "c5"} {
		m, err := move.FromString(sq, g.ToMove())
		is.NoErr(err)
		is.NoErr(g.PlayMove(m))
	}
	is.Equal(g.Turn(), 2)
	is.NoErr(g.Undo())
	is.Equal(g.Turn(), 1)
	is.NoErr(g.Undo())
	is.Equal(g.Board(), board.NewStartingBoard())
}

func TestPassAndWinner(t *testing.T) {
	is := is.New(t)
	g := NewFromBoard(board.MustBoard(board.ForcedPass, board.White, 58), "alice", "bob")
	is.Equal(g.Winner(), board.Empty)

	s, err := strategy.NewAlphaBetaStrategy(2, evaluator.ModeDynamic)
	is.NoErr(err)
	m, err := g.PlayTurn(s)
	is.NoErr(err)
	is.Equal(m.Action(), move.MoveTypePass)
	m, err = g.PlayTurn(s)
	is.NoErr(err)
	is.Equal(m.ShortDescription(), "a1")

	is.True(!g.Playing())
	is.Equal(g.Winner(), board.Black)
	is.Equal(g.Spread(), 64)
	is.True(strings.Contains(g.ToDisplayText(), "alice wins by 64"))

	_, err = g.PlayTurn(s)
	is.True(errors.Is(err, movegen.ErrGameOver))
}

func TestFullGame(t *testing.T) {
	is := is.New(t)
	g := NewGame("random", "greedy")
	ev, err := evaluator.New(evaluator.ModeStatic, nil)
	is.NoErr(err)
	players := map[board.Color]Player{
		board.Black: strategy.NewRandomStrategy(),
		board.White: strategy.NewGreedyStrategy(ev),
	}
	for g.Playing() {
		_, err := g.PlayTurn(players[g.ToMove()])
		is.NoErr(err)
		is.True(g.Turn() <= 128)
	}
	b, w := g.Score()
	switch {
	case b > w:
		is.Equal(g.Winner(), board.Black)
	case w > b:
		is.Equal(g.Winner(), board.White)
	default:
		is.Equal(g.Winner(), board.Empty)
	}
	is.Equal(len(g.History()), g.Turn())
}
