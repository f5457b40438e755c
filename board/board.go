// Package board holds the disc grid for a game of Othello (Reversi) and the
// capture rules that decide where a color may place a disc.
package board

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Dim is the number of rows (and columns) on the board.
	Dim = 8
	// NumSquares is the number of cells on the board.
	NumSquares = Dim * Dim
)

// Color is the occupant of a square, or the side to move.
type Color uint8

const (
	Empty Color = iota
	Black
	White
)

var ErrBadLayout = errors.New("bad board layout")

// Opponent returns the other side. The opponent of Empty is Empty.
func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return Empty
}

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	}
	return "empty"
}

// Symbol is the single character used for this color in layouts.
func (c Color) Symbol() byte {
	switch c {
	case Black:
		return 'X'
	case White:
		return 'O'
	}
	return '.'
}

// ColorFromSymbol is the inverse of Symbol. It accepts a few common aliases.
func ColorFromSymbol(r rune) (Color, bool) {
	switch r {
	case 'X', 'x', 'B', 'b', '*':
		return Black, true
	case 'O', 'o', 'W', 'w':
		return White, true
	case '.', '-', '_':
		return Empty, true
	}
	return Empty, false
}

var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Board is a snapshot of a position. It is a value type: assigning a Board
// copies the whole grid, so every search branch owns its own instance.
type Board struct {
	cells    [NumSquares]Color
	toMove   Color
	turn     int
	terminal bool
}

// NewStartingBoard returns the standard opening position with Black to
// move at turn 0.
func NewStartingBoard() Board {
	b := Board{toMove: Black}
	mid := Dim / 2
	b.cells[Index(mid-1, mid-1)] = White
	b.cells[Index(mid, mid)] = White
	b.cells[Index(mid-1, mid)] = Black
	b.cells[Index(mid, mid-1)] = Black
	return b
}

// Index converts a (row, col) pair into a square index.
func Index(row, col int) int {
	return row*Dim + col
}

// Coords converts a square index into its (row, col) pair.
func Coords(sq int) (int, int) {
	return sq / Dim, sq % Dim
}

func onBoard(row, col int) bool {
	return row >= 0 && row < Dim && col >= 0 && col < Dim
}

func (b *Board) At(sq int) Color {
	return b.cells[sq]
}

func (b *Board) AtCoords(row, col int) Color {
	return b.cells[Index(row, col)]
}

func (b Board) ToMove() Color {
	return b.toMove
}

func (b Board) Turn() int {
	return b.turn
}

// IsTerminal is true iff neither color has a legal move.
func (b Board) IsTerminal() bool {
	return b.terminal
}

// MaximizerToMove reports whether the maximizing side (Black) is to move.
func (b Board) MaximizerToMove() bool {
	return b.toMove == Black
}

// Count returns the number of discs of color c.
func (b *Board) Count(c Color) int {
	n := 0
	for _, cell := range b.cells {
		if cell == c {
			n++
		}
	}
	return n
}

// Empties returns the number of empty squares left.
func (b *Board) Empties() int {
	return b.Count(Empty)
}

// flipsInDirection counts the opposing discs bracketed between sq and a c
// disc along (dr, dc). It returns 0 when the line is not bracketed.
func (b *Board) flipsInDirection(sq int, c Color, dr, dc int) int {
	row, col := Coords(sq)
	opp := c.Opponent()
	n := 0
	for {
		row += dr
		col += dc
		if !onBoard(row, col) {
			return 0
		}
		switch b.cells[Index(row, col)] {
		case opp:
			n++
		case c:
			return n
		default:
			return 0
		}
	}
}

// IsLegal reports whether c may place a disc on sq.
func (b *Board) IsLegal(sq int, c Color) bool {
	if sq < 0 || sq >= NumSquares || b.cells[sq] != Empty || c == Empty {
		return false
	}
	for _, d := range directions {
		if b.flipsInDirection(sq, c, d[0], d[1]) > 0 {
			return true
		}
	}
	return false
}

// Flips returns the squares that would change to c if c played on sq, in
// direction order. It returns nil when the placement is illegal.
func (b *Board) Flips(sq int, c Color) []int {
	if sq < 0 || sq >= NumSquares || b.cells[sq] != Empty || c == Empty {
		return nil
	}
	var flips []int
	for _, d := range directions {
		n := b.flipsInDirection(sq, c, d[0], d[1])
		row, col := Coords(sq)
		for i := 0; i < n; i++ {
			row += d[0]
			col += d[1]
			flips = append(flips, Index(row, col))
		}
	}
	return flips
}

// LegalSquares lists every square c may play on, in ascending order.
func (b *Board) LegalSquares(c Color) []int {
	var squares []int
	for sq := 0; sq < NumSquares; sq++ {
		if b.IsLegal(sq, c) {
			squares = append(squares, sq)
		}
	}
	return squares
}

// Mobility is the number of legal placements for c.
func (b *Board) Mobility(c Color) int {
	n := 0
	for sq := 0; sq < NumSquares; sq++ {
		if b.IsLegal(sq, c) {
			n++
		}
	}
	return n
}

func (b *Board) HasLegalMove(c Color) bool {
	for sq := 0; sq < NumSquares; sq++ {
		if b.IsLegal(sq, c) {
			return true
		}
	}
	return false
}

// PlaceDisc puts a c disc on sq and flips every bracketed line. It returns
// the number of discs flipped. It does not change the mover or the turn;
// callers are expected to have checked legality.
func (b *Board) PlaceDisc(sq int, c Color) int {
	flips := b.Flips(sq, c)
	b.cells[sq] = c
	for _, f := range flips {
		b.cells[f] = c
	}
	return len(flips)
}

// EndTurn hands the move to the opponent, advances the turn counter and
// recomputes the terminal flag.
func (b *Board) EndTurn() {
	b.toMove = b.toMove.Opponent()
	b.turn++
	b.refreshTerminal()
}

func (b *Board) refreshTerminal() {
	b.terminal = !b.HasLegalMove(Black) && !b.HasLegalMove(White)
}

// FromString builds a board from a layout of 64 cell symbols (see
// ColorFromSymbol). Whitespace is ignored, so a layout may be written as
// eight rows. The terminal flag is computed from the cells.
func FromString(layout string, toMove Color, turn int) (Board, error) {
	b := Board{toMove: toMove, turn: turn}
	if toMove != Black && toMove != White {
		return b, fmt.Errorf("%w: side to move must be black or white", ErrBadLayout)
	}
	if turn < 0 {
		return b, fmt.Errorf("%w: negative turn %d", ErrBadLayout, turn)
	}
	idx := 0
	for _, r := range layout {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		c, ok := ColorFromSymbol(r)
		if !ok {
			return b, fmt.Errorf("%w: unexpected symbol %q", ErrBadLayout, r)
		}
		if idx >= NumSquares {
			return b, fmt.Errorf("%w: more than %d cells", ErrBadLayout, NumSquares)
		}
		b.cells[idx] = c
		idx++
	}
	if idx != NumSquares {
		return b, fmt.Errorf("%w: got %d cells, want %d", ErrBadLayout, idx, NumSquares)
	}
	b.refreshTerminal()
	return b, nil
}

// Layout is the compact 64-symbol form accepted by FromString.
func (b *Board) Layout() string {
	var sb strings.Builder
	sb.Grow(NumSquares)
	for _, c := range b.cells {
		sb.WriteByte(c.Symbol())
	}
	return sb.String()
}

// String is a compact one-line form, used in logs and errors.
func (b Board) String() string {
	return fmt.Sprintf("%s %c t%d", b.Layout(), b.toMove.Symbol(), b.turn)
}
