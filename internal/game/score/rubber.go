package score

import (
	"fmt"
	"strings"

	"github.com/palemoky/rubber-bridge/internal/game/bid"
	"github.com/palemoky/rubber-bridge/internal/game/seat"
)

// Score is the running score of a rubber for both partnerships.
type Score struct {
	NS   *TeamScore
	EW   *TeamScore
	game int
}

// New returns a fresh rubber score. Empty names fall back to "NS" and "EW".
func New(nsName, ewName string) *Score {
	if nsName == "" {
		nsName = seat.NorthSouth.String()
	}
	if ewName == "" {
		ewName = seat.EastWest.String()
	}
	return &Score{NS: NewTeamScore(nsName), EW: NewTeamScore(ewName)}
}

// Team returns the sheet of one partnership.
func (s *Score) Team(p seat.Partnership) *TeamScore {
	switch p {
	case seat.NorthSouth:
		return s.NS
	case seat.EastWest:
		return s.EW
	}
	panic("score: invalid partnership")
}

// Game returns the index of the game in progress (0-based).
func (s *Score) Game() int {
	return s.game
}

// Record scores a finished deal for the declaring side and reports whether
// the rubber is over.
func (s *Score) Record(c bid.Contract, tricksNS, tricksEW int) bool {
	if c.IsPassedOut() {
		return false
	}
	side := c.Declarer.Partnership()
	tricks := tricksNS
	if side == seat.EastWest {
		tricks = tricksEW
	}

	switch s.Team(side).Update(c.Level, c.Strain, c.Doubled, tricks, s.game) {
	case StatusContinue:
		return false
	case StatusGameWon:
		s.game++
		return false
	case StatusRubberWon:
		return true
	}
	return false
}

// Winner returns the side with the higher total, and false on a tie.
func (s *Score) Winner() (seat.Partnership, bool) {
	ns, ew := s.NS.Total(), s.EW.Total()
	switch {
	case ns > ew:
		return seat.NorthSouth, true
	case ew > ns:
		return seat.EastWest, true
	}
	return seat.NorthSouth, false
}

// Columns is the header of the score table.
var Columns = []string{"Team", "Game 1", "Game 2", "Game 3", "Rubber", "Slam", "Overtricks", "Penalty", "Sum"}

// Row returns the cells of one team's line in the score table.
func (t *TeamScore) Row() []string {
	cells := []string{t.Name}
	for _, p := range t.GamePoints {
		cells = append(cells, fmt.Sprint(p))
	}
	for _, v := range []int{t.RubberBonus, t.SlamBonus, t.OvertrickPoints, t.PenaltyPoints, t.Total()} {
		cells = append(cells, fmt.Sprint(v))
	}
	return cells
}

// String renders the score table with a header and one line per side.
func (s *Score) String() string {
	var sb strings.Builder
	for i, row := range [][]string{Columns, s.NS.Row(), s.EW.Row()} {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%-15s", row[0])
		for _, cell := range row[1:] {
			fmt.Fprintf(&sb, " %-10s", cell)
		}
	}
	return sb.String()
}
