package board

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestStartingBoard(t *testing.T) {
	is := is.New(t)
	b := NewStartingBoard()
	is.Equal(b.Count(Black), 2)
	is.Equal(b.Count(White), 2)
	is.Equal(b.ToMove(), Black)
	is.Equal(b.Turn(), 0)
	is.True(!b.IsTerminal())
	// d3, c4, f5, e6
	is.Equal(b.LegalSquares(Black), []int{Index(2, 3), Index(3, 2), Index(4, 5), Index(5, 4)})
	is.Equal(b.Mobility(White), 4)
}

func TestFlips(t *testing.T) {
	is := is.New(t)
	b := MustBoard(CornerGrab, Black, 20)
	is.Equal(b.Flips(Index(0, 0), Black), []int{Index(1, 1), Index(2, 2)})
	is.Equal(len(b.Flips(Index(2, 1), Black)), 1)
	is.Equal(b.Flips(Index(7, 7), Black), nil)
	// occupied square
	is.Equal(b.Flips(Index(1, 1), Black), nil)
	is.Equal(b.Mobility(Black), 6)
}

func TestPlaceDiscAndEndTurn(t *testing.T) {
	is := is.New(t)
	b := NewStartingBoard()
	orig := b
	n := b.PlaceDisc(Index(2, 3), Black)
	b.EndTurn()
	is.Equal(n, 1)
	is.Equal(b.Count(Black), 4)
	is.Equal(b.Count(White), 1)
	is.Equal(b.ToMove(), White)
	is.Equal(b.Turn(), 1)
	// value semantics: the original is untouched
	is.Equal(orig.Count(Black), 2)
	is.Equal(orig.Turn(), 0)
}

func TestForcedPassIsNotTerminal(t *testing.T) {
	is := is.New(t)
	b := MustBoard(ForcedPass, White, 58)
	is.True(!b.IsTerminal())
	is.True(!b.HasLegalMove(White))
	is.Equal(b.LegalSquares(Black), []int{0})
}

func TestTerminal(t *testing.T) {
	is := is.New(t)
	b := MustBoard(AllBlack, White, 60)
	is.True(b.IsTerminal())
	is.Equal(b.Empties(), 0)
}

func TestFromStringErrors(t *testing.T) {
	is := is.New(t)
	_, err := FromString("XO", Black, 0)
	is.True(errors.Is(err, ErrBadLayout))
	_, err = FromString(string(AllBlack)+"X", Black, 0)
	is.True(errors.Is(err, ErrBadLayout))
	_, err = FromString(string(AllBlack), Empty, 0)
	is.True(errors.Is(err, ErrBadLayout))
	_, err = FromString(string(AllBlack), Black, -1)
	is.True(errors.Is(err, ErrBadLayout))
	_, err = FromString("Z"+string(AllBlack)[2:], Black, 0)
	is.True(errors.Is(err, ErrBadLayout))
}

func TestDisplayTextRoundTrip(t *testing.T) {
	is := is.New(t)
	b := MustBoard(SixEmpty, Black, 54)
	text := b.ToDisplayText()
	b2, err := FromDisplayText(text)
	is.NoErr(err)
	is.Equal(b2, b)

	l, err := FromString(b.Layout(), b.ToMove(), b.Turn())
	is.NoErr(err)
	is.Equal(l, b)
}

func TestColor(t *testing.T) {
	is := is.New(t)
	is.Equal(Black.Opponent(), White)
	is.Equal(White.Opponent(), Black)
	is.Equal(Empty.Opponent(), Empty)
	c, ok := ColorFromSymbol('o')
	is.True(ok)
	is.Equal(c, White)
	_, ok = ColorFromSymbol('?')
	is.True(!ok)
}
