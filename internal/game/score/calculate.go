// Package score implements rubber bridge scoring.
package score

import (
	"github.com/palemoky/rubber-bridge/internal/game/bid"
)

func firstTrickValue(s bid.Strain) int {
	switch s {
	case bid.NoTrump:
		return 40
	case bid.Spades, bid.Hearts:
		return 30
	case bid.Diamonds, bid.Clubs:
		return 20
	}
	panic("score: invalid strain")
}

func trickValue(s bid.Strain) int {
	switch s {
	case bid.NoTrump, bid.Spades, bid.Hearts:
		return 30
	case bid.Diamonds, bid.Clubs:
		return 20
	}
	panic("score: invalid strain")
}

// undertrick 罚分表，按 [是否有局][加倍次数] 索引
var (
	firstUndertrick = [2][3]int{
		{50, 100, 200},
		{100, 200, 400},
	}
	secondThirdUndertrick = [2][3]int{
		{50, 200, 400},
		{100, 300, 600},
	}
	subsequentUndertrick = [2][3]int{
		{50, 300, 600},
		{100, 300, 600},
	}
)

func vulIndex(vulnerable bool) int {
	if vulnerable {
		return 1
	}
	return 0
}

// contractedPoints is the trick score of the contracted tricks.
func contractedPoints(level int, strain bid.Strain, doubled int) int {
	mult := 1 << doubled
	return firstTrickValue(strain)*mult + trickValue(strain)*mult*(level-1)
}

func slamBonus(level int, vulnerable bool) int {
	switch {
	case level == 7 && vulnerable:
		return 1500
	case level == 7:
		return 1000
	case level == 6 && vulnerable:
		return 750
	case level == 6:
		return 500
	}
	return 0
}

func overtrickPoints(strain bid.Strain, doubled, overtricks int, vulnerable bool) int {
	switch doubled {
	case 0:
		return overtricks * trickValue(strain)
	case 1:
		per := 100
		if vulnerable {
			per = 200
		}
		return 50 + overtricks*per
	case 2:
		per := 200
		if vulnerable {
			per = 400
		}
		return 100 + overtricks*per
	}
	panic("score: doubled must be 0, 1 or 2")
}

// penalty returns the (positive) undertrick penalty.
func penalty(undertricks, doubled int, vulnerable bool) int {
	v := vulIndex(vulnerable)
	total := 0
	for i := range undertricks {
		switch {
		case i == 0:
			total += firstUndertrick[v][doubled]
		case i < 3:
			total += secondThirdUndertrick[v][doubled]
		default:
			total += subsequentUndertrick[v][doubled]
		}
	}
	return total
}

// Calculate returns the declarer's score for a single deal: positive when the
// contract is made, negative for undertricks, 0 for a passed-out deal.
//
// tricks is the number of tricks taken by the declaring side.
func Calculate(level int, strain bid.Strain, doubled, tricks int, vulnerable bool) int {
	if level == 0 {
		return 0
	}
	scoring := tricks - 6
	if scoring < level {
		return -penalty(level+6-tricks, doubled, vulnerable)
	}

	points := contractedPoints(level, strain, doubled)
	total := points + slamBonus(level, vulnerable) + overtrickPoints(strain, doubled, scoring-level, vulnerable)
	if points >= 100 {
		if vulnerable {
			total += 500
		} else {
			total += 200
		}
	}
	return total
}

// CalculateContract is Calculate for a finished contract.
func CalculateContract(c bid.Contract, tricks int, vulnerable bool) int {
	return Calculate(c.Level, c.Strain, c.Doubled, tricks, vulnerable)
}
