package score

import (
	"github.com/palemoky/rubber-bridge/internal/game/bid"
)

// GamesPerRubber is the maximum number of games in a rubber.
const GamesPerRubber = 3

// Status is the outcome of one deal for the rubber.
type Status int

const (
	StatusContinue Status = iota
	StatusGameWon
	StatusRubberWon
)

func (s Status) String() string {
	switch s {
	case StatusContinue:
		return "continue"
	case StatusGameWon:
		return "game won"
	case StatusRubberWon:
		return "rubber won"
	}
	panic("score: invalid status")
}

// TeamScore 一方的累计得分
type TeamScore struct {
	Name            string
	GamePoints      [GamesPerRubber]int
	RubberBonus     int
	SlamBonus       int
	OvertrickPoints int
	PenaltyPoints   int
	Vulnerable      bool
}

// NewTeamScore returns an empty score sheet.
func NewTeamScore(name string) *TeamScore {
	return &TeamScore{Name: name}
}

// Update applies the result of a deal declared by this side. game is the
// index of the game in progress.
//
// A made contract banks its trick points in the game slot and adds slam and
// overtrick bonuses. Reaching 100 in the slot wins the game (+200, side
// becomes vulnerable) or, when already vulnerable, the rubber (+500).
// A failed contract only subtracts the undertrick penalty.
func (t *TeamScore) Update(level int, strain bid.Strain, doubled, tricks, game int) Status {
	scoring := tricks - 6
	if scoring < level {
		t.PenaltyPoints -= penalty(level+6-tricks, doubled, t.Vulnerable)
		return StatusContinue
	}

	t.SlamBonus += slamBonus(level, t.Vulnerable)
	t.OvertrickPoints += overtrickPoints(strain, doubled, scoring-level, t.Vulnerable)
	t.GamePoints[game] += contractedPoints(level, strain, doubled)
	if t.GamePoints[game] < 100 {
		return StatusContinue
	}
	if t.Vulnerable {
		t.RubberBonus += 500
		return StatusRubberWon
	}
	t.Vulnerable = true
	t.RubberBonus += 200
	return StatusGameWon
}

// Total sums every column of the sheet.
func (t *TeamScore) Total() int {
	sum := 0
	for _, p := range t.GamePoints {
		sum += p
	}
	return sum + t.RubberBonus + t.SlamBonus + t.OvertrickPoints + t.PenaltyPoints
}
