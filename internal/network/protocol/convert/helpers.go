// Package convert maps game state onto protocol payloads.
package convert

import (
	"github.com/palemoky/rubber-bridge/internal/game/auction"
	"github.com/palemoky/rubber-bridge/internal/game/bid"
	"github.com/palemoky/rubber-bridge/internal/game/card"
	"github.com/palemoky/rubber-bridge/internal/game/play"
	"github.com/palemoky/rubber-bridge/internal/game/rule"
	"github.com/palemoky/rubber-bridge/internal/game/score"
	"github.com/palemoky/rubber-bridge/internal/network/protocol"
)

// --- Card conversion ---

func cardsToStrings(cards []card.Card) []string {
	if len(cards) == 0 {
		return nil
	}
	return card.Strings(cards)
}

func bidsToStrings(bids []bid.Bid) []string {
	if len(bids) == 0 {
		return nil
	}
	out := make([]string, len(bids))
	for i, b := range bids {
		out[i] = b.String()
	}
	return out
}

// --- Auction / trick conversion ---

func callsToInfo(calls []auction.Call) []protocol.CallInfo {
	out := make([]protocol.CallInfo, len(calls))
	for i, c := range calls {
		out[i] = protocol.CallInfo{Seat: c.Seat.Abbreviation(), Bid: c.Bid.String()}
	}
	return out
}

func trickToInfo(t rule.Trick) []protocol.PlayedCardInfo {
	out := make([]protocol.PlayedCardInfo, len(t))
	for i, p := range t {
		out[i] = protocol.PlayedCardInfo{Seat: p.Seat.Abbreviation(), Card: p.Card.String()}
	}
	return out
}

func completedToInfo(t *play.CompletedTrick) *protocol.TrickInfo {
	if t == nil {
		return nil
	}
	return &protocol.TrickInfo{
		Cards:  trickToInfo(t.Cards),
		Winner: t.Winner.Abbreviation(),
	}
}

// ContractInfo converts a contract, returning nil for an empty one.
func ContractInfo(c bid.Contract) *protocol.ContractInfo {
	if c.IsPassedOut() {
		return nil
	}
	return &protocol.ContractInfo{
		Level:    c.Level,
		Strain:   c.Strain.Abbreviation(),
		Doubled:  c.Doubled,
		Declarer: c.Declarer.Abbreviation(),
		Text:     c.String(),
	}
}

// --- Score conversion ---

// TeamScore converts one side of the score sheet.
func TeamScore(t score.TeamScore) protocol.TeamScoreInfo {
	return protocol.TeamScoreInfo{
		Name:       t.Name,
		GamePoints: t.GamePoints[:],
		Rubber:     t.RubberBonus,
		Slam:       t.SlamBonus,
		Overtricks: t.OvertrickPoints,
		Penalty:    t.PenaltyPoints,
		Total:      t.Total(),
		Vulnerable: t.Vulnerable,
	}
}

// Scores converts both sides of the score sheet.
func Scores(ns, ew score.TeamScore) protocol.ScoresInfo {
	return protocol.ScoresInfo{NS: TeamScore(ns), EW: TeamScore(ew)}
}
