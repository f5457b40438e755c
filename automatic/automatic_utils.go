// Package automatic runs computer vs computer matches.
package automatic

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/reversi/config"
	"github.com/domino14/reversi/stats"
	"github.com/domino14/reversi/strategy"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

var matchLock sync.Mutex

// Summary is a match result from the first player's point of view.
type Summary struct {
	Names [2]string
	// First holds the first player's outcomes; margins are its disc count
	// minus its opponent's.
	First stats.Outcomes
	Plies stats.Statistic
}

func (s *Summary) String() string {
	return fmt.Sprintf("%s vs %s: %s; %.1f plies per game",
		s.Names[0], s.Names[1], s.First.String(), s.Plies.Mean())
}

// Match plays numGames games between p1 and p2 over the given number of
// threads. Colors alternate: p1 has Black in even-numbered games. Every move
// is written to outputFilename as CSV, unless it is empty.
func Match(ctx context.Context, p1, p2 strategy.Strategy, numGames, threads, randomOpenings int,
	outputFilename string) (*Summary, error) {

	if !matchLock.TryLock() {
		return nil, ErrAlreadyPlaying
	}
	defer matchLock.Unlock()
	IsPlaying.Set(1)
	defer IsPlaying.Set(0)

	var logChan chan string
	loggerDone := make(chan struct{})
	if outputFilename != "" {
		logfile, err := os.Create(outputFilename)
		if err != nil {
			return nil, err
		}
		logChan = make(chan string, 100)
		go func() {
			defer close(loggerDone)
			defer logfile.Close()
			logfile.WriteString(LogHeader)
			for msg := range logChan {
				logfile.WriteString(msg)
			}
			log.Debug().Str("file", outputFilename).Msg("turn-logger-done")
		}()
	} else {
		close(loggerDone)
	}

	log.Info().Int("games", numGames).Int("threads", threads).
		Str("p1", p1.Name()).Str("p2", p2.Name()).Msg("starting-match")
	CVCCounter.Set(0)

	summary := &Summary{Names: [2]string{p1.Name(), p2.Name()}}
	var mu sync.Mutex
	runner := NewGameRunner(logChan, randomOpenings)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(threads, 1))
	for i := 0; i < numGames; i++ {
		if gctx.Err() != nil {
			break
		}
		p1Black := i%2 == 0
		black := lo.Ternary(p1Black, p1, p2)
		white := lo.Ternary(p1Black, p2, p1)
		g.Go(func() error {
			played, err := runner.PlayGame(gctx, black, white)
			if err != nil {
				return err
			}
			margin := lo.Ternary(p1Black, played.Spread(), -played.Spread())
			mu.Lock()
			summary.First.Add(margin)
			summary.Plies.Push(float64(len(played.History())))
			mu.Unlock()
			CVCCounter.Add(1)
			return nil
		})
	}
	err := g.Wait()
	if logChan != nil {
		close(logChan)
	}
	<-loggerDone
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return summary, err
	}
	log.Info().Str("summary", summary.String()).Msg("match-finished")
	return summary, nil
}

// MatchFromConfig builds both players by name and takes the match settings
// from cfg.
func MatchFromConfig(ctx context.Context, cfg *config.Config, p1name, p2name string) (*Summary, error) {
	p1, err := strategy.New(p1name, cfg)
	if err != nil {
		return nil, err
	}
	p2, err := strategy.New(p2name, cfg)
	if err != nil {
		return nil, err
	}
	return Match(ctx, p1, p2,
		cfg.GetInt(config.ConfigAutoplayGames),
		cfg.GetInt(config.ConfigAutoplayThreads),
		cfg.GetInt(config.ConfigRandomOpenings),
		cfg.GetString(config.ConfigAutoplayLog))
}
