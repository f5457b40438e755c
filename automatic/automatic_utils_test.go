package automatic

import (
	"bufio"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/reversi/config"
	"github.com/domino14/reversi/evaluator"
	"github.com/domino14/reversi/strategy"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func countLines(t *testing.T, path string) int {
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	n := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		n++
	}
	return n
}

func TestMatch(t *testing.T) {
	is := is.New(t)
	ev, err := evaluator.New(evaluator.ModeStatic, nil)
	is.NoErr(err)
	greedy := strategy.NewGreedyStrategy(ev)
	random := strategy.NewRandomStrategy()
	logfile := filepath.Join(t.TempDir(), "games.txt")

	sum, err := Match(context.Background(), greedy, random, 6, 3, 2, logfile)
	is.NoErr(err)
	is.Equal(sum.Names, [2]string{"greedy-static", "random"})
	is.Equal(sum.First.Games(), 6)
	is.Equal(sum.Plies.Iterations(), 6)
	is.True(sum.Plies.Min() >= 9)
	is.Equal(CVCCounter.Value(), int64(6))
	is.Equal(IsPlaying.Value(), int64(0))

	plies := int(sum.Plies.Mean()*6 + 0.5)
	// header, one row per move and one end row per game
	is.Equal(countLines(t, logfile), 1+plies+6)
	is.True(sum.String() != "")
}

func TestMatchWithoutLog(t *testing.T) {
	is := is.New(t)
	r := strategy.NewRandomStrategy()
	sum, err := Match(context.Background(), r, r, 2, 1, 0, "")
	is.NoErr(err)
	is.Equal(sum.First.Games(), 2)
}

func TestMatchCancelled(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := strategy.NewRandomStrategy()
	_, err := Match(ctx, r, r, 10, 2, 0, "")
	is.True(errors.Is(err, context.Canceled))
	is.Equal(IsPlaying.Value(), int64(0))
}

func TestMatchFromConfig(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigAutoplayGames, 2)
	cfg.Set(config.ConfigAutoplayThreads, 2)
	cfg.Set(config.ConfigSearchDepth, 1)
	cfg.Set(config.ConfigEndgameTurn, 56)
	cfg.Set(config.ConfigAutoplayLog, "")
	sum, err := MatchFromConfig(context.Background(), cfg, "alphabeta", "greedy")
	is.NoErr(err)
	is.Equal(sum.First.Games(), 2)

	_, err = MatchFromConfig(context.Background(), cfg, "alphabeta", "oracle")
	is.True(errors.Is(err, strategy.ErrUnknownStrategy))
}
