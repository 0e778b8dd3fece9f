package bid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/palemoky/rubber-bridge/internal/game/seat"
)

// Contract is the running result of an auction. Level 0 means no contract
// has been bid yet (or the deal was passed out).
type Contract struct {
	Level    int
	Strain   Strain
	Doubled  int // 0 undoubled, 1 doubled, 2 redoubled
	Declarer seat.Direction
}

// IsPassedOut reports whether no contract exists.
func (c Contract) IsPassedOut() bool {
	return c.Level == 0
}

// Multiplier returns 1, 2 or 4.
func (c Contract) Multiplier() int {
	return 1 << c.Doubled
}

// TricksNeeded is the number of tricks declarer must take.
func (c Contract) TricksNeeded() int {
	return c.Level + 6
}

// Apply returns the contract after b is made by seat by. PASS changes nothing.
func (c Contract) Apply(b Bid, by seat.Direction) Contract {
	switch b.Special() {
	case NotSpecial:
		return Contract{Level: b.Level(), Strain: b.Strain(), Declarer: by}
	case SpecialDouble, SpecialRedouble:
		c.Doubled++
		return c
	case SpecialPass:
		return c
	}
	panic(fmt.Sprintf("bid: invalid special %d", int(b.Special())))
}

// String renders e.g. "4HX N", or "PASS" for no contract.
func (c Contract) String() string {
	if c.IsPassedOut() {
		return "PASS"
	}
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(c.Level))
	sb.WriteString(c.Strain.Abbreviation())
	sb.WriteString(strings.Repeat("X", c.Doubled))
	sb.WriteString(" ")
	sb.WriteString(c.Declarer.Abbreviation())
	return sb.String()
}
