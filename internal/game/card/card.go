// Package card models the standard 52-card deck used at the bridge table.
package card

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/palemoky/rubber-bridge/internal/apperrors"
)

// Suit 定义花色，按叫牌强弱升序排列
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// Suits lists the suits in ascending bidding order.
var Suits = [4]Suit{Clubs, Diamonds, Hearts, Spades}

// Letter returns the one-letter code used in card strings.
func (s Suit) Letter() string {
	switch s {
	case Clubs:
		return "C"
	case Diamonds:
		return "D"
	case Hearts:
		return "H"
	case Spades:
		return "S"
	}
	panic(fmt.Sprintf("card: invalid suit %d", int(s)))
}

// Symbol returns the suit glyph for display.
func (s Suit) Symbol() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	}
	panic(fmt.Sprintf("card: invalid suit %d", int(s)))
}

// IsRed reports whether the suit is printed in red.
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

func (s Suit) String() string {
	return s.Symbol()
}

// Rank 定义点数，数值即大小
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// rankChars 点数字符映射表
var rankChars = map[Rank]byte{
	Two:   '2',
	Three: '3',
	Four:  '4',
	Five:  '5',
	Six:   '6',
	Seven: '7',
	Eight: '8',
	Nine:  '9',
	Ten:   'T',
	Jack:  'J',
	Queen: 'Q',
	King:  'K',
	Ace:   'A',
}

// charToRank 用于快速查找字符对应的 Rank
var charToRank = map[byte]Rank{
	'2': Two,
	'3': Three,
	'4': Four,
	'5': Five,
	'6': Six,
	'7': Seven,
	'8': Eight,
	'9': Nine,
	'T': Ten,
	'J': Jack,
	'Q': Queen,
	'K': King,
	'A': Ace,
}

var charToSuit = map[byte]Suit{
	'C': Clubs,
	'D': Diamonds,
	'H': Hearts,
	'S': Spades,
}

// Char returns the one-character rank code.
func (r Rank) Char() byte {
	if c, ok := rankChars[r]; ok {
		return c
	}
	panic(fmt.Sprintf("card: invalid rank %d", int(r)))
}

func (r Rank) String() string {
	return string(r.Char())
}

// RankFromChar parses a rank code such as 'T' or 'q'.
func RankFromChar(c byte) (Rank, error) {
	if r, ok := charToRank[upper(c)]; ok {
		return r, nil
	}
	return 0, fmt.Errorf("%w: unknown rank %q", apperrors.ErrParse, c)
}

// SuitFromLetter parses a suit letter such as 'S' or 'h'.
func SuitFromLetter(c byte) (Suit, error) {
	if s, ok := charToSuit[upper(c)]; ok {
		return s, nil
	}
	return 0, fmt.Errorf("%w: unknown suit %q", apperrors.ErrParse, c)
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

// Card 定义一张牌
type Card struct {
	Suit Suit
	Rank Rank
}

// String returns the two-character wire form, suit letter first (SA, HT).
func (c Card) String() string {
	return c.Suit.Letter() + c.Rank.String()
}

// Compare orders cards by suit then rank.
func Compare(a, b Card) int {
	if a.Suit != b.Suit {
		return cmp.Compare(a.Suit, b.Suit)
	}
	return cmp.Compare(a.Rank, b.Rank)
}

// Parse reads a two-character card string. Input is case-insensitive.
func Parse(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) != 2 {
		return Card{}, fmt.Errorf("%w: card %q must be two characters", apperrors.ErrParse, s)
	}
	suit, err := SuitFromLetter(s[0])
	if err != nil {
		return Card{}, err
	}
	rank, err := RankFromChar(s[1])
	if err != nil {
		return Card{}, err
	}
	return Card{Suit: suit, Rank: rank}, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) Card {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Strings converts cards to their wire form.
func Strings(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
