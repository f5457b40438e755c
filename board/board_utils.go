package board

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var boardPlaintextRegex = regexp.MustCompile(`\|(.+)\|`)
var footerRegex = regexp.MustCompile(`turn\s+(\d+)\s+->\s+(black|white)`)

// ToDisplayText renders the board with coordinates and a status footer.
// FromDisplayText reads this format back.
func (b *Board) ToDisplayText() string {
	var str string
	row := "   "
	for i := 0; i < Dim; i++ {
		row = row + fmt.Sprintf("%c", 'A'+i) + " "
	}
	str = str + row + "\n"
	str = str + "   " + strings.Repeat("-", Dim*2) + "\n"
	for i := 0; i < Dim; i++ {
		row := fmt.Sprintf("%2d|", i+1)
		for j := 0; j < Dim; j++ {
			row = row + string(b.AtCoords(i, j).Symbol()) + " "
		}
		row = strings.TrimRight(row, " ") + "|"
		str = str + row + "\n"
	}
	str = str + "   " + strings.Repeat("-", Dim*2) + "\n"
	status := fmt.Sprintf("   black (X) %d  white (O) %d  turn %d -> %v",
		b.Count(Black), b.Count(White), b.turn, b.toMove)
	if b.terminal {
		status += "  (game over)"
	}
	return "\n" + str + status + "\n"
}

// FromDisplayText parses the output of ToDisplayText. Only the rows between
// the pipes and the footer are significant.
func FromDisplayText(text string) (Board, error) {
	var layout strings.Builder
	for _, line := range strings.Split(text, "\n") {
		m := boardPlaintextRegex.FindStringSubmatch(line)
		if len(m) != 2 {
			continue
		}
		layout.WriteString(strings.ReplaceAll(m[1], " ", ""))
	}
	footer := footerRegex.FindStringSubmatch(text)
	if len(footer) != 3 {
		return Board{}, fmt.Errorf("%w: missing turn footer", ErrBadLayout)
	}
	turn, err := strconv.Atoi(footer[1])
	if err != nil {
		return Board{}, fmt.Errorf("%w: %v", ErrBadLayout, err)
	}
	toMove := Black
	if footer[2] == "white" {
		toMove = White
	}
	return FromString(layout.String(), toMove, turn)
}
