package move

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/domino14/reversi/board"
)

// MoveType is a type of move; a disc placement or a pass.
type MoveType uint8

const (
	MoveTypePlace MoveType = iota
	MoveTypePass
)

var (
	ErrBadCoords = errors.New("bad coordinates")
	// ErrUnexplainedTransition means no single move turns one board into
	// the other.
	ErrUnexplainedTransition = errors.New("no move explains the board transition")
)

// Move is a single action by one color. A placement records how many discs
// it flipped, which is handy for display and logs.
type Move struct {
	action MoveType
	square int
	color  board.Color
	flips  int
}

var reCoords *regexp.Regexp

func init() {
	reCoords = regexp.MustCompile(`^(?P<col>[a-hA-H])(?P<row>[1-8])$`)
}

// NewPlaceMove creates a placement of a color disc on sq.
func NewPlaceMove(sq int, c board.Color, flips int) *Move {
	return &Move{action: MoveTypePlace, square: sq, color: c, flips: flips}
}

// NewPassMove creates a forced pass for c.
func NewPassMove(c board.Color) *Move {
	return &Move{action: MoveTypePass, square: -1, color: c}
}

func (m *Move) Action() MoveType {
	return m.action
}

// Square is the placement square, or -1 for a pass.
func (m *Move) Square() int {
	return m.square
}

func (m *Move) Color() board.Color {
	return m.color
}

func (m *Move) Flips() int {
	return m.flips
}

// String provides a string just for debugging purposes.
func (m *Move) String() string {
	switch m.action {
	case MoveTypePlace:
		return fmt.Sprintf("<action: place %v color: %v flips: %d>",
			SquareName(m.square), m.color, m.flips)
	case MoveTypePass:
		return fmt.Sprintf("<action: pass color: %v>", m.color)
	}
	return "<Unhandled move>"
}

// ShortDescription provides a short description, useful for logging or
// user display.
func (m *Move) ShortDescription() string {
	switch m.action {
	case MoveTypePlace:
		return SquareName(m.square)
	case MoveTypePass:
		return "(pass)"
	}
	return "UNHANDLED"
}

// Equals compares action, square and color. Flip counts are derived data and
// are ignored.
func (m *Move) Equals(o *Move) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.action == o.action && m.square == o.square && m.color == o.color
}

// SquareName converts a square index to coordinates like d3: a column
// letter followed by a 1-based row.
func SquareName(sq int) string {
	row, col := board.Coords(sq)
	return string(rune('a'+col)) + strconv.Itoa(row+1)
}

// ParseSquare does the inverse operation of SquareName.
func ParseSquare(c string) (int, error) {
	m := reCoords.FindStringSubmatch(strings.TrimSpace(c))
	if len(m) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrBadCoords, c)
	}
	col := int(strings.ToLower(m[1])[0] - 'a')
	row, _ := strconv.Atoi(m[2])
	return board.Index(row-1, col), nil
}

// FromString parses "pass" or a coordinate into a move for color c. The
// flip count is left at zero; it is filled in when the move is played.
func FromString(s string, c board.Color) (*Move, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "pass") || s == "(pass)" {
		return NewPassMove(c), nil
	}
	sq, err := ParseSquare(s)
	if err != nil {
		return nil, err
	}
	return NewPlaceMove(sq, c, 0), nil
}

// Derive finds the move that turns src into dst. A placement shows up as
// exactly one square going from empty to the mover's color; a pass leaves
// the cells alone and hands the turn over.
func Derive(src, dst board.Board) (*Move, error) {
	mover := src.ToMove()
	placed := -1
	flips := 0
	for sq := 0; sq < board.NumSquares; sq++ {
		before, after := src.At(sq), dst.At(sq)
		switch {
		case before == after:
		case before == board.Empty && after == mover:
			if placed != -1 {
				return nil, fmt.Errorf("%w: more than one disc placed", ErrUnexplainedTransition)
			}
			placed = sq
		case before == mover.Opponent() && after == mover:
			flips++
		default:
			return nil, fmt.Errorf("%w: square %v went from %v to %v",
				ErrUnexplainedTransition, SquareName(sq), before, after)
		}
	}
	if dst.ToMove() != mover.Opponent() || dst.Turn() <= src.Turn() {
		return nil, fmt.Errorf("%w: turn did not pass from %v", ErrUnexplainedTransition, mover)
	}
	if placed == -1 {
		if flips > 0 {
			return nil, fmt.Errorf("%w: discs flipped without a placement", ErrUnexplainedTransition)
		}
		return NewPassMove(mover), nil
	}
	return NewPlaceMove(placed, mover, flips), nil
}
