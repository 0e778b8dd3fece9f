package game

import (
	"github.com/palemoky/rubber-bridge/internal/game/auction"
	"github.com/palemoky/rubber-bridge/internal/game/bid"
	"github.com/palemoky/rubber-bridge/internal/game/card"
	"github.com/palemoky/rubber-bridge/internal/game/play"
	"github.com/palemoky/rubber-bridge/internal/game/rule"
	"github.com/palemoky/rubber-bridge/internal/game/score"
	"github.com/palemoky/rubber-bridge/internal/game/seat"
)

// View is what one seat may see of the table.
type View struct {
	Seat       seat.Direction
	Phase      Phase
	DealNumber int
	Dealer     seat.Direction
	Turn       seat.Direction
	Controller seat.Direction
	Names      [4]string
	HandSizes  [4]int

	Hand      []card.Card
	Dummy     seat.Direction
	HasDummy  bool
	DummyHand []card.Card // 首攻后明手亮牌

	Calls      []auction.Call
	Contract   bid.Contract
	Trick      rule.Trick
	LastTrick  *play.CompletedTrick
	TricksNS   int
	TricksEW   int
	LegalBids  []bid.Bid
	LegalCards []card.Card

	NS       score.TeamScore
	EW       score.TeamScore
	LastDeal *DealResult
}

// YourTurn reports whether the viewing seat must act.
func (v View) YourTurn() bool {
	return len(v.LegalBids) > 0 || len(v.LegalCards) > 0
}

// View builds the snapshot visible to d: its own hand, dummy once the
// opening lead is made, and the legal actions when d must act.
func (g *Game) View(d seat.Direction) View {
	v := View{
		Seat:       d,
		Phase:      g.phase,
		DealNumber: g.deals,
		Dealer:     g.dealer,
		Turn:       g.turn,
		Controller: g.Controller(),
		Hand:       g.players[d].Hand.Cards(),
		Calls:      g.auction.History(),
		Contract:   g.auction.Contract(),
		Trick:      g.CurrentTrick(),
		NS:         *g.score.NS,
		EW:         *g.score.EW,
	}
	for i, p := range g.players {
		v.Names[i] = p.Name
		v.HandSizes[i] = p.Hand.Len()
	}
	v.TricksNS, v.TricksEW = g.TricksCount()

	if dummy, ok := g.Dummy(); ok {
		v.Dummy, v.HasDummy = dummy, true
		if g.play.HasStarted() && d != dummy {
			v.DummyHand = g.players[dummy].Hand.Cards()
		}
	}
	if last, ok := g.LastTrick(); ok {
		v.LastTrick = &last
	}
	if r, ok := g.LastDeal(); ok {
		v.LastDeal = &r
	}

	switch g.phase {
	case PhaseAuction:
		if d == g.turn {
			v.LegalBids = g.auction.LegalBids(d)
		}
	case PhasePlay:
		if d == g.Controller() {
			v.LegalCards = g.legalCards()
		}
	case PhaseDealCards, PhaseDisplayScore, PhaseGameOver:
	}
	return v
}
