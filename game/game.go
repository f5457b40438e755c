// Package game keeps the state of a single game: the board, who is playing
// each color and every move made so far.
package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lithammer/shortuuid/v4"
	"github.com/rs/zerolog/log"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/move"
	"github.com/domino14/reversi/movegen"
)

var ErrNothingToUndo = errors.New("no moves to take back")

// Player is anything that can make a move on a board, such as a
// strategy.Strategy.
type Player interface {
	Name() string
	Move(b *board.Board) (*board.Board, error)
}

// Game is not safe for concurrent use.
type Game struct {
	uid   string
	board board.Board
	gen   *movegen.Generator
	names [2]string

	history []*move.Move
	// positions[i] is the board before history[i].
	positions []board.Board
}

func NewGame(blackName, whiteName string) *Game {
	return NewFromBoard(board.NewStartingBoard(), blackName, whiteName)
}

// NewFromBoard starts a game from an arbitrary position.
func NewFromBoard(b board.Board, blackName, whiteName string) *Game {
	g := &Game{
		uid:   shortuuid.New(),
		board: b,
		gen:   movegen.NewGenerator(),
		names: [2]string{blackName, whiteName},
	}
	log.Debug().Str("uid", g.uid).Str("black", blackName).Str("white", whiteName).
		Str("board", b.String()).Msg("new-game")
	return g
}

func (g *Game) Uid() string {
	return g.uid
}

// Board returns a copy of the current position.
func (g *Game) Board() board.Board {
	return g.board
}

func (g *Game) Turn() int {
	return g.board.Turn()
}

func (g *Game) ToMove() board.Color {
	return g.board.ToMove()
}

func (g *Game) Playing() bool {
	return !g.board.IsTerminal()
}

func nameIdx(c board.Color) int {
	if c == board.White {
		return 1
	}
	return 0
}

func (g *Game) PlayerName(c board.Color) string {
	return g.names[nameIdx(c)]
}

func (g *Game) SetPlayerName(c board.Color, name string) {
	g.names[nameIdx(c)] = name
}

func (g *Game) History() []*move.Move {
	return g.history
}

// PlayMove validates m and plays it.
func (g *Game) PlayMove(m *move.Move) error {
	before := g.board
	if err := g.gen.Play(&g.board, m); err != nil {
		return err
	}
	g.positions = append(g.positions, before)
	g.history = append(g.history, m)
	log.Debug().Str("uid", g.uid).Int("turn", before.Turn()).
		Str("move", m.ShortDescription()).Msg("played-move")
	return nil
}

// PlayTurn lets p move on a copy of the board, works out which move it made
// and plays that move on the game's own board. A player that does anything
// other than one legal move is rejected and the game is left unchanged.
func (g *Game) PlayTurn(p Player) (*move.Move, error) {
	if !g.Playing() {
		return nil, movegen.ErrGameOver
	}
	scratch := g.board
	after, err := p.Move(&scratch)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name(), err)
	}
	m, err := move.Derive(g.board, *after)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name(), err)
	}
	if err := g.PlayMove(m); err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name(), err)
	}
	return m, nil
}

// Undo takes back the last move.
func (g *Game) Undo() error {
	n := len(g.history)
	if n == 0 {
		return ErrNothingToUndo
	}
	g.board = g.positions[n-1]
	g.positions = g.positions[:n-1]
	g.history = g.history[:n-1]
	return nil
}

func (g *Game) Score() (black, white int) {
	return g.board.Count(board.Black), g.board.Count(board.White)
}

// Spread is Black's disc count minus White's.
func (g *Game) Spread() int {
	b, w := g.Score()
	return b - w
}

// Winner is Empty while the game is still going, and for a draw.
func (g *Game) Winner() board.Color {
	if g.Playing() {
		return board.Empty
	}
	switch s := g.Spread(); {
	case s > 0:
		return board.Black
	case s < 0:
		return board.White
	}
	return board.Empty
}

func (g *Game) ToDisplayText() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "game %s: %s (X) vs %s (O)\n", g.uid, g.names[0], g.names[1])
	sb.WriteString(g.board.ToDisplayText())
	if n := len(g.history); n > 0 {
		last := g.history[n-1]
		fmt.Fprintf(&sb, "\nlast move: %v %s", last.Color(), last.ShortDescription())
	}
	if !g.Playing() {
		switch w := g.Winner(); w {
		case board.Empty:
			sb.WriteString("\nthe game is a draw")
		default:
			fmt.Fprintf(&sb, "\n%s wins by %d", g.PlayerName(w), abs(g.Spread()))
		}
	}
	return sb.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
