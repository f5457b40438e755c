package automatic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/evaluator"
	"github.com/domino14/reversi/game"
	"github.com/domino14/reversi/strategy"
)

func TestPlayGame(t *testing.T) {
	is := is.New(t)
	logchan := make(chan string)
	runner := NewGameRunner(logchan, 2)
	ab, err := strategy.NewAlphaBetaStrategy(2, evaluator.ModeDynamic)
	is.NoErr(err)

	var lines []string
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for msg := range logchan {
			lines = append(lines, msg)
		}
	}()

	g, err := runner.PlayGame(context.Background(), ab, strategy.NewRandomStrategy())
	close(logchan)
	wg.Wait()
	is.NoErr(err)
	is.True(!g.Playing())
	// one row per move plus the end row
	is.Equal(len(lines), len(g.History())+1)
	b, w := g.Score()
	is.True(strings.HasSuffix(lines[len(lines)-1],
		fmt.Sprintf(",%d,end,", g.Turn())+resultName(g)+fmt.Sprintf(",-,0,%d,%d\n", b, w)))

	// the opening moves are random
	is.True(strings.Contains(lines[0], ",0,black,random,"))
	is.True(strings.Contains(lines[1], ",1,white,random,"))
	if len(lines) > 2 && strings.Contains(lines[2], ",black,") {
		is.True(strings.Contains(lines[2], ",alphabeta-dynamic-2,"))
	}
	for _, l := range lines {
		is.True(strings.HasPrefix(l, g.Uid()+","))
		is.Equal(strings.Count(l, ","), strings.Count(LogHeader, ","))
	}
}

func resultName(g *game.Game) string {
	if w := g.Winner(); w != board.Empty {
		return g.PlayerName(w)
	}
	return "draw"
}

func TestPlayGameCancelled(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	runner := NewGameRunner(nil, 0)
	g, err := runner.PlayGame(ctx, strategy.NewRandomStrategy(), strategy.NewRandomStrategy())
	is.True(errors.Is(err, context.Canceled))
	is.Equal(len(g.History()), 0)
}
