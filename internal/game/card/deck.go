package card

import "fmt"

const (
	DeckSize = 52
	HandSize = 13
)

// Shuffler 洗牌源，*rand.Rand 即满足该接口
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Deck 定义一副牌
type Deck []Card

// NewDeck returns the 52 cards sorted by suit then rank.
func NewDeck() Deck {
	deck := make(Deck, 0, DeckSize)
	for _, s := range Suits {
		for r := Two; r <= Ace; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// Shuffle permutes the deck in place using src.
func (d Deck) Shuffle(src Shuffler) {
	src.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// Deal splits a full deck into four hands of 13, in consecutive blocks.
func (d Deck) Deal() ([4]Hand, error) {
	var hands [4]Hand
	if len(d) != DeckSize {
		return hands, fmt.Errorf("deck has %d cards, want %d", len(d), DeckSize)
	}
	for i := range hands {
		hands[i] = NewHand(d[i*HandSize : (i+1)*HandSize]...)
	}
	return hands, nil
}
