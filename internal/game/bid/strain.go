// Package bid models calls made during the auction and the contract they build.
package bid

import (
	"fmt"
	"strings"

	"github.com/palemoky/rubber-bridge/internal/apperrors"
	"github.com/palemoky/rubber-bridge/internal/game/card"
)

// Strain is a bidding suit: one of the four card suits or no trump.
// Values ascend in bidding rank so NoTrump outranks every suit.
type Strain int

const (
	Clubs Strain = iota
	Diamonds
	Hearts
	Spades
	NoTrump
)

// Strains lists every strain in ascending rank.
var Strains = [5]Strain{Clubs, Diamonds, Hearts, Spades, NoTrump}

// StrainOf lifts a card suit into its strain.
func StrainOf(s card.Suit) Strain {
	switch s {
	case card.Clubs:
		return Clubs
	case card.Diamonds:
		return Diamonds
	case card.Hearts:
		return Hearts
	case card.Spades:
		return Spades
	}
	panic(fmt.Sprintf("bid: invalid suit %d", int(s)))
}

// ToSuit returns the trump suit, or false for NoTrump.
func (s Strain) ToSuit() (card.Suit, bool) {
	switch s {
	case Clubs:
		return card.Clubs, true
	case Diamonds:
		return card.Diamonds, true
	case Hearts:
		return card.Hearts, true
	case Spades:
		return card.Spades, true
	case NoTrump:
		return 0, false
	}
	panic(fmt.Sprintf("bid: invalid strain %d", int(s)))
}

// Abbreviation returns the wire code: C, D, H, S or NT.
func (s Strain) Abbreviation() string {
	switch s {
	case Clubs:
		return "C"
	case Diamonds:
		return "D"
	case Hearts:
		return "H"
	case Spades:
		return "S"
	case NoTrump:
		return "NT"
	}
	panic(fmt.Sprintf("bid: invalid strain %d", int(s)))
}

func (s Strain) String() string {
	if suit, ok := s.ToSuit(); ok {
		return suit.Symbol()
	}
	return "NT"
}

// ParseStrain reads C, D, H, S or NT (any case).
func ParseStrain(s string) (Strain, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "C":
		return Clubs, nil
	case "D":
		return Diamonds, nil
	case "H":
		return Hearts, nil
	case "S":
		return Spades, nil
	case "NT":
		return NoTrump, nil
	}
	return 0, fmt.Errorf("%w: unknown strain %q", apperrors.ErrParse, s)
}
