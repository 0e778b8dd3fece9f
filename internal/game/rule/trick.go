package rule

import (
	"strings"

	"github.com/palemoky/rubber-bridge/internal/game/bid"
	"github.com/palemoky/rubber-bridge/internal/game/card"
	"github.com/palemoky/rubber-bridge/internal/game/seat"
)

// TrickSize 每墩牌的张数
const TrickSize = 4

// PlayedCard 一张已打出的牌及出牌人
type PlayedCard struct {
	Seat seat.Direction
	Card card.Card
}

func (p PlayedCard) String() string {
	return p.Seat.Abbreviation() + ": " + p.Card.String()
}

// Trick is the cards of one trick in play order. The first card sets the led suit.
type Trick []PlayedCard

// LedSuit returns the suit of the first card, or false for an empty trick.
func (t Trick) LedSuit() (card.Suit, bool) {
	if len(t) == 0 {
		return 0, false
	}
	return t[0].Card.Suit, true
}

// IsComplete reports whether all four seats have played.
func (t Trick) IsComplete() bool {
	return len(t) == TrickSize
}

// CanPlay reports whether c may be played from hand to trick: the first card
// of a trick is free, afterwards a player holding the led suit must follow it.
func CanPlay(c card.Card, trick Trick, hand card.Hand) bool {
	led, ok := trick.LedSuit()
	if !ok {
		return true
	}
	return c.Suit == led || !hand.HasSuit(led)
}

// LegalCards filters hand to the cards that may be played to trick.
func LegalCards(trick Trick, hand card.Hand) []card.Card {
	if led, ok := trick.LedSuit(); ok && hand.HasSuit(led) {
		return hand.OfSuit(led)
	}
	return hand.Cards()
}

// Winner returns the winning card of a complete trick under trump.
func Winner(trick Trick, trump bid.Strain) PlayedCard {
	if len(trick) == 0 {
		panic("rule: winner of an empty trick")
	}
	led, _ := trick.LedSuit()
	best := trick[0]
	bestScore := evaluateCard(trump, led, best.Card)
	for _, pc := range trick[1:] {
		if score := evaluateCard(trump, led, pc.Card); score > bestScore {
			best, bestScore = pc, score
		}
	}
	return best
}

// evaluateCard 计算一张牌在本墩中的强度：将牌 +100，垫牌 -100
func evaluateCard(trump bid.Strain, led card.Suit, c card.Card) int {
	score := int(c.Rank)
	if suit, ok := trump.ToSuit(); ok && c.Suit == suit {
		return score + 100
	}
	if c.Suit != led {
		return score - 100
	}
	return score
}

// String renders the trick as "N: SA | E: S2".
func (t Trick) String() string {
	parts := make([]string, len(t))
	for i, pc := range t {
		parts[i] = pc.String()
	}
	return strings.Join(parts, " | ")
}
