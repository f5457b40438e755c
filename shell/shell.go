// Package shell is an interactive console for playing against the engine.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/reversi/config"
	"github.com/domino14/reversi/game"
	"github.com/domino14/reversi/movegen"
	"github.com/domino14/reversi/strategy"
)

var (
	errNoData            = errors.New("no data in line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errExit              = errors.New("exit")
)

type shellcmd struct {
	cmd     string
	args    []string
	options map[string]string
}

type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

type ShellController struct {
	l      *readline.Instance
	out    io.Writer
	config *config.Config

	game *game.Game
	gen  *movegen.Generator
	ai   strategy.Strategy
	// aiName is the name passed to strategy.New for the computer player.
	aiName string
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func NewShellController(cfg *config.Config) (*ShellController, error) {
	sc, err := newController(cfg, os.Stdout)
	if err != nil {
		return nil, err
	}
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mreversi>\033[0m ",
		HistoryFile:     "/tmp/reversi-readline.tmp",
		AutoComplete:    NewShellCompleter(sc),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, err
	}
	sc.l = l
	sc.out = l.Stdout()
	return sc, nil
}

func newController(cfg *config.Config, out io.Writer) (*ShellController, error) {
	sc := &ShellController{
		out:    out,
		config: cfg,
		gen:    movegen.NewGenerator(),
		game:   game.NewGame("you", "computer"),
		aiName: "alphabeta",
	}
	if err := sc.rebuildAI(); err != nil {
		return nil, err
	}
	sc.game.SetPlayerName(sc.game.ToMove().Opponent(), sc.ai.Name())
	return sc, nil
}

func (sc *ShellController) rebuildAI() error {
	ai, err := strategy.New(sc.aiName, sc.config)
	if err != nil {
		return err
	}
	sc.ai = ai
	return nil
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// extractFields splits a line into a command, its positional arguments and
// its -key value options.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := map[string]string{}
	for i := 1; i < len(fields); i++ {
		if strings.HasPrefix(fields[i], "-") {
			if i == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			options[fields[i][1:]] = fields[i+1]
			i++
			continue
		}
		args = append(args, fields[i])
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func intOption(cmd *shellcmd, key string, dflt int) (int, error) {
	v, ok := cmd.options[key]
	if !ok {
		return dflt, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("option %s: %w", key, err)
	}
	return n, nil
}

func (sc *ShellController) executeCommand(line string) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "exit", "quit":
		return nil, errExit
	case "help":
		return sc.help(cmd)
	case "new":
		return sc.newGame(cmd)
	case "s", "show":
		return msg(sc.game.ToDisplayText()), nil
	case "gen":
		return sc.genMoves(cmd)
	case "play":
		return sc.play(cmd)
	case "ai":
		return sc.aiMove(cmd)
	case "search":
		return sc.search(cmd)
	case "eval":
		return sc.eval(cmd)
	case "undo":
		return sc.undo(cmd)
	case "position":
		return sc.position(cmd)
	case "set":
		return sc.set(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "autoanalyze":
		return sc.autoAnalyze(cmd)
	}
	log.Debug().Msgf("you said: %v", strconv.Quote(line))
	return nil, fmt.Errorf("unknown command %q; try help", cmd.cmd)
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := sc.Execute(line); errors.Is(err, errExit) {
			sig <- syscall.SIGINT
			break
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Execute runs a single command line and prints its output.
func (sc *ShellController) Execute(line string) error {
	resp, err := sc.executeCommand(line)
	if err != nil {
		if !errors.Is(err, errExit) {
			sc.showError(err)
		}
		return err
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
	return nil
}

// Close releases the terminal.
func (sc *ShellController) Close() error {
	if sc.l == nil {
		return nil
	}
	return sc.l.Close()
}
