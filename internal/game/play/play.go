// Package play runs the trick-taking phase of a deal.
package play

import (
	"errors"
	"fmt"

	"github.com/palemoky/rubber-bridge/internal/apperrors"
	"github.com/palemoky/rubber-bridge/internal/game/bid"
	"github.com/palemoky/rubber-bridge/internal/game/card"
	"github.com/palemoky/rubber-bridge/internal/game/rule"
	"github.com/palemoky/rubber-bridge/internal/game/seat"
)

// TotalTricks 每副牌共 13 墩
const TotalTricks = 13

var (
	ErrCardNotInHand = errors.New("card not in hand")
	ErrRevoke        = errors.New("must follow the led suit")
)

// CompletedTrick 已结束的一墩
type CompletedTrick struct {
	Cards  rule.Trick
	Winner seat.Direction
}

// Result describes the effect of one accepted card.
type Result struct {
	TrickComplete bool
	Winner        seat.Direction // valid when TrickComplete
	PlayOver      bool
}

// Play 打牌状态机
type Play struct {
	trump     bid.Strain
	trick     rule.Trick
	completed []CompletedTrick
	tricks    [2]int // 按 seat.Partnership 索引
}

// New starts the play of a deal in the given trump strain.
func New(trump bid.Strain) *Play {
	return &Play{trump: trump, trick: make(rule.Trick, 0, rule.TrickSize)}
}

// PlayCard plays c from hand for seat by. The hand is updated on success.
func (p *Play) PlayCard(by seat.Direction, c card.Card, hand *card.Hand) (Result, error) {
	if p.IsOver() {
		return Result{}, fmt.Errorf("%w: all tricks played", apperrors.ErrWrongPhase)
	}
	if !hand.Contains(c) {
		return Result{}, fmt.Errorf("%w: %w: %s", apperrors.ErrIllegalCardPlay, ErrCardNotInHand, c)
	}
	if !rule.CanPlay(c, p.trick, *hand) {
		return Result{}, fmt.Errorf("%w: %w: %s", apperrors.ErrIllegalCardPlay, ErrRevoke, c)
	}
	if len(p.trick) >= rule.TrickSize {
		panic("play: trick already holds four cards")
	}

	hand.Remove(c)
	p.trick = append(p.trick, rule.PlayedCard{Seat: by, Card: c})
	if !p.trick.IsComplete() {
		return Result{}, nil
	}

	winner := rule.Winner(p.trick, p.trump).Seat
	p.completed = append(p.completed, CompletedTrick{Cards: p.trick, Winner: winner})
	p.tricks[winner.Partnership()]++
	p.trick = make(rule.Trick, 0, rule.TrickSize)
	if len(p.completed) > TotalTricks {
		panic("play: more than 13 tricks")
	}

	return Result{TrickComplete: true, Winner: winner, PlayOver: p.IsOver()}, nil
}

// Trump returns the trump strain.
func (p *Play) Trump() bid.Strain {
	return p.trump
}

// CurrentTrick returns a copy of the trick in progress.
func (p *Play) CurrentTrick() rule.Trick {
	return append(rule.Trick(nil), p.trick...)
}

// LastTrick returns the most recently completed trick.
func (p *Play) LastTrick() (CompletedTrick, bool) {
	if len(p.completed) == 0 {
		return CompletedTrick{}, false
	}
	return p.completed[len(p.completed)-1], true
}

// Completed returns the number of finished tricks.
func (p *Play) Completed() int {
	return len(p.completed)
}

// Tricks returns the tricks won by NS and EW.
func (p *Play) Tricks() (ns, ew int) {
	return p.tricks[seat.NorthSouth], p.tricks[seat.EastWest]
}

// TricksOf returns the tricks won by one partnership.
func (p *Play) TricksOf(side seat.Partnership) int {
	return p.tricks[side]
}

// IsOver reports whether all 13 tricks are done.
func (p *Play) IsOver() bool {
	return len(p.completed) == TotalTricks
}

// HasStarted reports whether the opening lead has been made.
func (p *Play) HasStarted() bool {
	return len(p.trick) > 0 || len(p.completed) > 0
}
