package board

// This file contains some sample positions, used solely for testing.

// SampleLayout is a named 64-cell layout.
type SampleLayout string

const (
	// ForcedPass has White to move with no legal reply while Black can still
	// take a1, which fills the board.
	ForcedPass SampleLayout = `
. O X X X X X X
X X X X X X X X
X X X X X X X X
X X X X X X X X
X X X X X X X X
X X X X X X X X
X X X X X X X X
X X X X X X X X
`
	// AllBlack is a wipe-out; neither side can move.
	AllBlack SampleLayout = `
X X X X X X X X
X X X X X X X X
X X X X X X X X
X X X X X X X X
X X X X X X X X
X X X X X X X X
X X X X X X X X
X X X X X X X X
`
	// CornerGrab lets Black take the a1 corner, flipping b2 and c3, or play
	// one of five single-flip moves.
	CornerGrab SampleLayout = `
. . . . . . . .
. O . . . . . .
. . O X . . . .
. . . X O . . .
. . . X X . . .
. . . . . . . .
. . . . . . . .
. . . . . . . .
`
	// SixEmpty is a late position with six empty squares spread over the
	// board.
	SixEmpty SampleLayout = `
X X X X O O O .
X X X O O O O O
X X O X O O O O
X O X X O X O .
X X O X X O O O
X X X O O X O O
. X O O O O X O
. O O O O O . .
`
)

// MustBoard builds a board from a sample layout. It panics on bad input and
// is only meant for tests.
func MustBoard(l SampleLayout, toMove Color, turn int) Board {
	b, err := FromString(string(l), toMove, turn)
	if err != nil {
		panic(err)
	}
	return b
}
