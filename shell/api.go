package shell

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/reversi/automatic"
	"github.com/domino14/reversi/board"
	"github.com/domino14/reversi/config"
	"github.com/domino14/reversi/evaluator"
	"github.com/domino14/reversi/game"
	"github.com/domino14/reversi/move"
	"github.com/domino14/reversi/strategy"
)

// settable lists the config keys the set command may change.
var settable = []string{
	config.ConfigSearchDepth,
	config.ConfigEvalMode,
	config.ConfigEndgameTurn,
	config.ConfigEndgameDepth,
	config.ConfigWeightsPath,
	config.ConfigEvalCacheFraction,
	config.ConfigNodeBudget,
	config.ConfigTimeLimitMs,
	config.ConfigRandomOpenings,
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	human := board.Black
	if c, ok := cmd.options["color"]; ok {
		switch strings.ToLower(c) {
		case "black", "x":
		case "white", "o":
			human = board.White
		default:
			return nil, fmt.Errorf("unknown color %q", c)
		}
	}
	g := game.NewGame("", "")
	g.SetPlayerName(human, "you")
	g.SetPlayerName(human.Opponent(), sc.ai.Name())
	sc.game = g
	return msg(g.ToDisplayText()), nil
}

func (sc *ShellController) genMoves(cmd *shellcmd) (*Response, error) {
	b := sc.game.Board()
	plays := sc.gen.GenAll(b)
	if len(plays) == 0 {
		return msg("the game is over"), nil
	}
	ev, err := evaluator.New(evaluator.ModeStatic, nil)
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-6s%-7s%s\n", "Move", "Flips", "Static")
	for _, p := range plays {
		next, err := sc.gen.Apply(b, p)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&sb, "%-6s%-7d%d\n", p.ShortDescription(), p.Flips(), ev.Evaluate(next))
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: play <square|pass>")
	}
	m, err := move.FromString(cmd.args[0], sc.game.ToMove())
	if err != nil {
		return nil, err
	}
	if err := sc.game.PlayMove(m); err != nil {
		return nil, err
	}
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) aiMove(cmd *shellcmd) (*Response, error) {
	m, err := sc.game.PlayTurn(sc.ai)
	if err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("%s plays %s\n%s", sc.ai.Name(), m.ShortDescription(),
		sc.game.ToDisplayText())), nil
}

func (sc *ShellController) search(cmd *shellcmd) (*Response, error) {
	var extra []strategy.Option
	budget, err := intOption(cmd, "budget", 0)
	if err != nil {
		return nil, err
	}
	if budget > 0 {
		extra = append(extra, strategy.WithNodeBudget(budget))
	}
	depth, err := intOption(cmd, "depth", 0)
	if err != nil {
		return nil, err
	}
	if depth != 0 {
		extra = append(extra, strategy.WithDepth(depth))
	}
	s, err := strategy.FromConfig(sc.config, extra...)
	if err != nil {
		return nil, err
	}
	m, res, err := s.Choose(sc.game.Board())
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "best: %s  value: %d\n", m.ShortDescription(), res.Value)
	fmt.Fprintf(&sb, "nodes: %d  leaves: %d  cutoffs: %d  plies: %d  stopped: %v  time: %v\n",
		res.Stats.Nodes, res.Stats.Leaves, res.Stats.Cutoffs, res.Stats.MaxPly,
		res.Stats.Stopped, res.Stats.Elapsed)
	if c, ok := s.Evaluator().(*evaluator.Cache); ok && c.Lookups() > 0 {
		fmt.Fprintf(&sb, "cache: %d entries, %d/%d hits (%.1f%%)\n", c.Size(), c.Hits(), c.Lookups(),
			100*float64(c.Hits())/float64(c.Lookups()))
	}
	sb.WriteString("expected line ends at:\n")
	sb.WriteString(res.Leaf.ToDisplayText())
	return msg(sb.String()), nil
}

func (sc *ShellController) eval(cmd *shellcmd) (*Response, error) {
	b := sc.game.Board()
	lines := []string{}
	for _, mode := range []evaluator.Mode{evaluator.ModeStatic, evaluator.ModeDynamic} {
		ev, err := evaluator.New(mode, nil)
		if err != nil {
			return nil, err
		}
		lines = append(lines, fmt.Sprintf("%-8s %d", mode.String()+":", ev.Evaluate(b)))
	}
	return msg(strings.Join(lines, "\n")), nil
}

func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if err := sc.game.Undo(); err != nil {
		return nil, err
	}
	return msg(sc.game.ToDisplayText()), nil
}

// position sets up an arbitrary board:
// position <64 cells> -tomove black|white -turn n
func (sc *ShellController) position(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: position <layout> [-tomove black|white] [-turn n]")
	}
	toMove := board.Black
	if c, ok := cmd.options["tomove"]; ok && strings.HasPrefix(strings.ToLower(c), "w") {
		toMove = board.White
	}
	turn, err := intOption(cmd, "turn", 0)
	if err != nil {
		return nil, err
	}
	b, err := board.FromString(strings.Join(cmd.args, ""), toMove, turn)
	if err != nil {
		return nil, err
	}
	sc.game = game.NewFromBoard(b, "black", "white")
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		lines := lo.Map(settable, func(k string, _ int) string {
			return fmt.Sprintf("%-20s %v", k, sc.config.Get(k))
		})
		lines = append(lines, fmt.Sprintf("%-20s %v", "ai", sc.aiName))
		return msg(strings.Join(lines, "\n")), nil
	}
	if len(cmd.args) != 2 {
		return nil, errors.New("usage: set <key> <value>")
	}
	key, value := cmd.args[0], cmd.args[1]
	if key == "ai" {
		old := sc.aiName
		sc.aiName = value
		if err := sc.rebuildAI(); err != nil {
			sc.aiName = old
			return nil, err
		}
		return msg("set ai to " + sc.ai.Name()), nil
	}
	if !slices.Contains(settable, key) {
		return nil, fmt.Errorf("cannot set %q; settable keys are %s", key, strings.Join(settable, ", "))
	}
	old := sc.config.Get(key)
	sc.config.Set(key, value)
	if err := sc.rebuildAI(); err != nil {
		sc.config.Set(key, old)
		return nil, err
	}
	return msg(fmt.Sprintf("set %s to %s", key, value)), nil
}

// autoplay [p1] [p2] -games n -threads n -file path
func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	p1name, p2name := "alphabeta", "random"
	if len(cmd.args) > 0 {
		p1name = cmd.args[0]
	}
	if len(cmd.args) > 1 {
		p2name = cmd.args[1]
	}
	games, err := intOption(cmd, "games", sc.config.GetInt(config.ConfigAutoplayGames))
	if err != nil {
		return nil, err
	}
	threads, err := intOption(cmd, "threads", sc.config.GetInt(config.ConfigAutoplayThreads))
	if err != nil {
		return nil, err
	}
	logfile := sc.config.GetString(config.ConfigAutoplayLog)
	if f, ok := cmd.options["file"]; ok {
		logfile = f
	}
	p1, err := strategy.New(p1name, sc.config)
	if err != nil {
		return nil, err
	}
	p2, err := strategy.New(p2name, sc.config)
	if err != nil {
		return nil, err
	}
	summary, err := automatic.Match(context.Background(), p1, p2, games, threads,
		sc.config.GetInt(config.ConfigRandomOpenings), logfile)
	if err != nil {
		return nil, err
	}
	return msg(summary.String()), nil
}

func (sc *ShellController) autoAnalyze(cmd *shellcmd) (*Response, error) {
	path := sc.config.GetString(config.ConfigAutoplayLog)
	if len(cmd.args) > 0 {
		path = cmd.args[0]
	}
	summary, err := automatic.AnalyzeLogFile(path)
	if err != nil {
		return nil, err
	}
	return msg(summary.String()), nil
}
