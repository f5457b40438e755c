// Package movegen generates the legal moves and successor positions of a
// board, and applies moves to boards.
package movegen

import (
	"errors"
	"fmt"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/move"
)

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrGameOver    = errors.New("game is over")
)

// Generator is stateless; one instance can be shared by every search and
// goroutine.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// GenAll returns every legal move for the side to move, in ascending square
// order. A side with no placement gets exactly one pass. A terminal board
// has no moves.
func (g *Generator) GenAll(b board.Board) []*move.Move {
	if b.IsTerminal() {
		return nil
	}
	mover := b.ToMove()
	squares := b.LegalSquares(mover)
	if len(squares) == 0 {
		return []*move.Move{move.NewPassMove(mover)}
	}
	plays := make([]*move.Move, 0, len(squares))
	for _, sq := range squares {
		plays = append(plays, move.NewPlaceMove(sq, mover, len(b.Flips(sq, mover))))
	}
	return plays
}

// Successors returns the board that follows each move from GenAll, in the
// same order. Each successor is an independent copy.
func (g *Generator) Successors(b board.Board) []board.Board {
	plays := g.GenAll(b)
	succs := make([]board.Board, 0, len(plays))
	for _, m := range plays {
		next := b
		applyUnchecked(&next, m)
		succs = append(succs, next)
	}
	return succs
}

// Apply returns the board after m without touching b.
func (g *Generator) Apply(b board.Board, m *move.Move) (board.Board, error) {
	next := b
	if err := g.Play(&next, m); err != nil {
		return b, err
	}
	return next, nil
}

// Play validates m and applies it to b in place: the disc is placed, lines
// flip, the mover alternates and the turn advances.
func (g *Generator) Play(b *board.Board, m *move.Move) error {
	if err := g.Validate(*b, m); err != nil {
		return err
	}
	applyUnchecked(b, m)
	return nil
}

// Validate checks m against b without applying it.
func (g *Generator) Validate(b board.Board, m *move.Move) error {
	if b.IsTerminal() {
		return ErrGameOver
	}
	if m.Color() != b.ToMove() {
		return fmt.Errorf("%w: %v is not on turn", ErrIllegalMove, m.Color())
	}
	switch m.Action() {
	case move.MoveTypePass:
		if b.HasLegalMove(m.Color()) {
			return fmt.Errorf("%w: cannot pass with a placement available", ErrIllegalMove)
		}
	case move.MoveTypePlace:
		if !b.IsLegal(m.Square(), m.Color()) {
			return fmt.Errorf("%w: %v flips nothing", ErrIllegalMove, m.ShortDescription())
		}
	default:
		return fmt.Errorf("%w: unknown action %d", ErrIllegalMove, m.Action())
	}
	return nil
}

func applyUnchecked(b *board.Board, m *move.Move) {
	if m.Action() == move.MoveTypePlace {
		b.PlaceDisc(m.Square(), m.Color())
	}
	b.EndTurn()
}
