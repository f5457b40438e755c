package move

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/reversi/board"
)

type coordTestStruct struct {
	sq     int
	output string
}

var coordTests = []coordTestStruct{
	{0, "a1"},
	{7, "h1"},
	{19, "d3"},
	{26, "c4"},
	{56, "a8"},
	{63, "h8"},
}

func TestSquareName(t *testing.T) {
	for _, tc := range coordTests {
		calc := SquareName(tc.sq)
		if calc != tc.output {
			t.Errorf("For sq=%v got %v, expected %v", tc.sq, calc, tc.output)
		}
	}
}

func TestParseSquare(t *testing.T) {
	for _, tc := range coordTests {
		sq, err := ParseSquare(tc.output)
		if err != nil || sq != tc.sq {
			t.Errorf("For coord %v expected %v got %v (%v)", tc.output, tc.sq, sq, err)
		}
	}
	is := is.New(t)
	sq, err := ParseSquare("D3")
	is.NoErr(err)
	is.Equal(sq, 19)
	for _, bad := range []string{"", "i1", "a9", "a0", "3d", "d33"} {
		_, err := ParseSquare(bad)
		is.True(errors.Is(err, ErrBadCoords))
	}
}

func TestFromString(t *testing.T) {
	is := is.New(t)
	m, err := FromString("pass", board.White)
	is.NoErr(err)
	is.Equal(m.Action(), MoveTypePass)
	is.Equal(m.ShortDescription(), "(pass)")

	m, err = FromString(" f5 ", board.Black)
	is.NoErr(err)
	is.True(m.Equals(NewPlaceMove(37, board.Black, 3)))
	is.Equal(m.ShortDescription(), "f5")
}

func TestDerivePlacement(t *testing.T) {
	is := is.New(t)
	src := board.NewStartingBoard()
	dst := src
	dst.PlaceDisc(19, board.Black)
	dst.EndTurn()

	m, err := Derive(src, dst)
	is.NoErr(err)
	is.Equal(m.Action(), MoveTypePlace)
	is.Equal(m.Square(), 19)
	is.Equal(m.Color(), board.Black)
	is.Equal(m.Flips(), 1)
}

func TestDerivePass(t *testing.T) {
	is := is.New(t)
	src := board.MustBoard(board.ForcedPass, board.White, 58)
	dst := src
	dst.EndTurn()
	m, err := Derive(src, dst)
	is.NoErr(err)
	is.Equal(m.Action(), MoveTypePass)
	is.Equal(m.Color(), board.White)
}

func TestDeriveUnexplained(t *testing.T) {
	is := is.New(t)
	src := board.NewStartingBoard()

	// same board, turn did not advance
	_, err := Derive(src, src)
	is.True(errors.Is(err, ErrUnexplainedTransition))

	// two plies at once
	dst := src
	dst.PlaceDisc(19, board.Black)
	dst.EndTurn()
	dst.PlaceDisc(18, board.White)
	dst.EndTurn()
	_, err = Derive(src, dst)
	is.True(errors.Is(err, ErrUnexplainedTransition))
}
