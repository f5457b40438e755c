package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/domino14/reversi/strategy"
)

// ShellCompleter completes command names, options and a few argument values.
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

type CommandMetadata struct {
	Options []string
	Args    []string
}

var commandNames = []string{
	"new", "show", "gen", "play", "ai", "search", "eval", "undo",
	"position", "set", "autoplay", "autoanalyze", "help", "exit",
}

var commandMetadata = map[string]CommandMetadata{
	"new":      {Options: []string{"-color"}},
	"play":     {Args: []string{"pass"}},
	"search":   {Options: []string{"-depth", "-budget"}},
	"position": {Options: []string{"-tomove", "-turn"}},
	"set":      {Args: append(append([]string{}, settable...), "ai")},
	"autoplay": {Options: []string{"-games", "-threads", "-file"}, Args: strategy.Names},
	"help":     {Args: []string{"search", "set", "autoplay"}},
}

// Do implements the readline.AutoCompleter interface.
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])
	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string
	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		var lastComplete string
		if endsWithSpace {
			lastComplete = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastComplete = fields[len(fields)-2]
		}
		switch {
		case lastComplete == "-color" || lastComplete == "-tomove":
			completions = []string{"black", "white"}
		case cmdName == "set" && lastComplete == "ai":
			completions = strategy.Names
		case cmdName == "set" && lastComplete == "eval-mode":
			completions = []string{"static", "dynamic"}
		default:
			md := commandMetadata[cmdName]
			if strings.HasPrefix(prefix, "-") || len(md.Args) == 0 {
				completions = md.Options
			} else {
				completions = md.Args
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
