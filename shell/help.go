package shell

import (
	"embed"
	"strings"
)

//go:embed helptext/*.txt
var helptext embed.FS

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	topic := "usage"
	if len(cmd.args) > 0 {
		topic = strings.ToLower(cmd.args[0])
	}
	dat, err := helptext.ReadFile("helptext/" + topic + ".txt")
	if err != nil {
		return msg("There is no help text for the topic " + topic), nil
	}
	return msg(strings.TrimRight(string(dat), "\n")), nil
}
