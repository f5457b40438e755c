package automatic

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/game"
	"github.com/domino14/reversi/strategy"
)

// LogHeader is the first line of an autoplay log file.
const LogHeader = "gameID,turn,color,player,move,flips,black,white\n"

// EndOfGame goes in the color column of the row written once a game is
// over. Its player column holds the winner's name, or "draw". A game
// without this row was interrupted.
const EndOfGame = "end"

// GameRunner plays computer vs computer games. It holds no per-game
// state, so one runner can play several games at once.
type GameRunner struct {
	logchan        chan<- string
	randomOpenings int
	opener         strategy.Strategy
}

func NewGameRunner(logchan chan<- string, randomOpenings int) *GameRunner {
	return &GameRunner{
		logchan:        logchan,
		randomOpenings: randomOpenings,
		opener:         strategy.NewRandomStrategy(),
	}
}

// PlayGame plays one game to the end. The first randomOpenings moves are
// random so that deterministic players do not replay the same game.
func (r *GameRunner) PlayGame(ctx context.Context, black, white strategy.Strategy) (*game.Game, error) {
	g := game.NewGame(black.Name(), white.Name())
	for g.Playing() {
		if err := ctx.Err(); err != nil {
			return g, err
		}
		var p game.Player = black
		if g.ToMove() == board.White {
			p = white
		}
		if g.Turn() < r.randomOpenings {
			p = r.opener
		}
		m, err := g.PlayTurn(p)
		if err != nil {
			return g, err
		}
		if r.logchan != nil {
			b, w := g.Score()
			r.logchan <- fmt.Sprintf("%s,%d,%v,%s,%s,%d,%d,%d\n",
				g.Uid(), g.Turn()-1, m.Color(), p.Name(), m.ShortDescription(), m.Flips(), b, w)
		}
	}
	b, w := g.Score()
	if r.logchan != nil {
		result := "draw"
		if winner := g.Winner(); winner != board.Empty {
			result = g.PlayerName(winner)
		}
		r.logchan <- fmt.Sprintf("%s,%d,%s,%s,-,0,%d,%d\n", g.Uid(), g.Turn(), EndOfGame, result, b, w)
	}
	log.Debug().Str("uid", g.Uid()).Int("black", b).Int("white", w).Msg("game-over")
	return g, nil
}
