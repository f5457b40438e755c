package automatic

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/reversi/stats"
)

// LogSummary aggregates the finished games in an autoplay log.
type LogSummary struct {
	Games int
	// Unfinished counts games that were cut off before their end row.
	Unfinished int
	// Players holds each player's outcomes, with margins from its own point
	// of view.
	Players map[string]*stats.Outcomes
	// Black holds the outcomes from Black's point of view.
	Black stats.Outcomes
	Plies stats.Statistic
}

type loggedGame struct {
	names        [2]string
	black, white int
	plies        int
	finished     bool
}

// AnalyzeLogFile reads a log written by Match. Games from several threads
// may be interleaved. Only games with an end row are counted. Each seat is
// credited to the last player seen moving for that color, so random
// opening moves do not count.
func AnalyzeLogFile(filepath string) (*LogSummary, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	r := csv.NewReader(file)

	// Record looks like:
	// gameID,turn,color,player,move,flips,black,white
	games := map[string]*loggedGame{}
	var order []string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if record[0] == "gameID" {
			continue
		}
		if len(record) != 8 {
			return nil, fmt.Errorf("want 8 fields, got %d", len(record))
		}
		g, ok := games[record[0]]
		if !ok {
			g = &loggedGame{}
			games[record[0]] = g
			order = append(order, record[0])
		}
		switch record[2] {
		case "black":
			g.names[0] = record[3]
			g.plies++
		case "white":
			g.names[1] = record[3]
			g.plies++
		case EndOfGame:
			g.finished = true
		default:
			return nil, fmt.Errorf("unknown color %q in game %s", record[2], record[0])
		}
		if g.black, err = strconv.Atoi(record[6]); err != nil {
			return nil, err
		}
		if g.white, err = strconv.Atoi(record[7]); err != nil {
			return nil, err
		}
	}

	summary := &LogSummary{Players: map[string]*stats.Outcomes{}}
	outcomes := func(name string) *stats.Outcomes {
		if _, ok := summary.Players[name]; !ok {
			summary.Players[name] = &stats.Outcomes{}
		}
		return summary.Players[name]
	}
	for _, id := range order {
		g := games[id]
		if !g.finished {
			summary.Unfinished++
			continue
		}
		margin := g.black - g.white
		outcomes(g.names[0]).Add(margin)
		outcomes(g.names[1]).Add(-margin)
		summary.Black.Add(margin)
		summary.Plies.Push(float64(g.plies))
		summary.Games++
	}
	return summary, nil
}

func (s *LogSummary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Games played: %d\n", s.Games)
	if s.Unfinished > 0 {
		fmt.Fprintf(&sb, "Unfinished games skipped: %d\n", s.Unfinished)
	}
	fmt.Fprintf(&sb, "Black: %s\n", s.Black.String())
	names := lo.Keys(s.Players)
	slices.Sort(names)
	for _, n := range names {
		fmt.Fprintf(&sb, "%s: %s\n", n, s.Players[n].String())
	}
	fmt.Fprintf(&sb, "Mean plies: %.2f  Stdev: %.2f", s.Plies.Mean(), s.Plies.Stdev())
	return sb.String()
}
