package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/reversi/board"
)

const bignum = 1<<63 - 2

// MaxTurns bounds the turn keys. Turns past it wrap around, which is
// harmless: a real game ends well before 128 turns.
const MaxTurns = 128

// generate a zobrist hash for a reversi position.
// https://en.wikipedia.org/wiki/Zobrist_hashing
type Zobrist struct {
	posTable    [board.NumSquares][2]uint64
	turnTable   [MaxTurns]uint64
	whiteToMove uint64
	terminal    uint64
}

func (z *Zobrist) Initialize() {
	for i := 0; i < board.NumSquares; i++ {
		for j := 0; j < 2; j++ {
			z.posTable[i][j] = frand.Uint64n(bignum) + 1
		}
	}
	for i := 0; i < MaxTurns; i++ {
		z.turnTable[i] = frand.Uint64n(bignum) + 1
	}
	z.whiteToMove = frand.Uint64n(bignum) + 1
	z.terminal = frand.Uint64n(bignum) + 1
}

func colorIdx(c board.Color) int {
	if c == board.White {
		return 1
	}
	return 0
}

// Hash covers every input the evaluators read: cells, mover, turn and the
// terminal flag.
func (z *Zobrist) Hash(b board.Board) uint64 {
	key := uint64(0)
	for sq := 0; sq < board.NumSquares; sq++ {
		c := b.At(sq)
		if c == board.Empty {
			continue
		}
		key ^= z.posTable[sq][colorIdx(c)]
	}
	key ^= z.turnTable[b.Turn()%MaxTurns]
	if b.ToMove() == board.White {
		key ^= z.whiteToMove
	}
	if b.IsTerminal() {
		key ^= z.terminal
	}
	return key
}
