package card

import (
	"slices"
	"strings"
)

// DisplayOrder is the suit order of hands on screen, black and red alternating.
var DisplayOrder = [4]Suit{Spades, Hearts, Clubs, Diamonds}

func displayIndex(s Suit) int {
	return slices.Index(DisplayOrder[:], s)
}

// Hand is the cards held by one seat, kept in display order
// (spades, hearts, clubs, diamonds; high rank first).
type Hand struct {
	cards []Card
}

// NewHand copies cards into a sorted hand.
func NewHand(cards ...Card) Hand {
	h := Hand{cards: slices.Clone(cards)}
	slices.SortFunc(h.cards, func(a, b Card) int {
		if a.Suit != b.Suit {
			return displayIndex(a.Suit) - displayIndex(b.Suit)
		}
		return int(b.Rank) - int(a.Rank)
	})
	return h
}

// Cards returns a copy of the cards in display order.
func (h Hand) Cards() []Card {
	return slices.Clone(h.cards)
}

// Len returns the number of cards held.
func (h Hand) Len() int {
	return len(h.cards)
}

// Contains reports whether c is held.
func (h Hand) Contains(c Card) bool {
	return slices.Contains(h.cards, c)
}

// HasSuit reports whether any card of s is held.
func (h Hand) HasSuit(s Suit) bool {
	return slices.ContainsFunc(h.cards, func(c Card) bool { return c.Suit == s })
}

// OfSuit returns the held cards of s.
func (h Hand) OfSuit(s Suit) []Card {
	var out []Card
	for _, c := range h.cards {
		if c.Suit == s {
			out = append(out, c)
		}
	}
	return out
}

// Remove takes c out of the hand and reports whether it was there.
func (h *Hand) Remove(c Card) bool {
	i := slices.Index(h.cards, c)
	if i < 0 {
		return false
	}
	// 重新分配，避免与已返回的副本共享底层数组
	h.cards = append(slices.Clone(h.cards[:i]), h.cards[i+1:]...)
	return true
}

// String renders the hand grouped by suit, e.g. "♠ A K 5 | ♥ Q | ♣ - | ♦ T 9".
func (h Hand) String() string {
	parts := make([]string, 0, len(DisplayOrder))
	for _, s := range DisplayOrder {
		ranks := make([]string, 0, HandSize)
		for _, c := range h.cards {
			if c.Suit == s {
				ranks = append(ranks, c.Rank.String())
			}
		}
		if len(ranks) == 0 {
			ranks = append(ranks, "-")
		}
		parts = append(parts, s.Symbol()+" "+strings.Join(ranks, " "))
	}
	return strings.Join(parts, " | ")
}
