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

// HistoryPlaceholder marks the next call in BiddingHistory.
const HistoryPlaceholder = "?"

func (g *Game) Phase() Phase { return g.phase }
func (g *Game) Turn() seat.Direction { return g.turn }
func (g *Game) Dealer() seat.Direction { return g.dealer }
func (g *Game) Scores() *score.Score { return g.score }
func (g *Game) Contract() bid.Contract { return g.auction.Contract() }
func (g *Game) DealNumber() int { return g.deals }
func (g *Game) History() []auction.Call { return g.auction.History() }

// Players returns a copy of the four seats.
func (g *Game) Players() [4]Player {
	var out [4]Player
	for i, p := range g.players {
		out[i] = *p
	}
	return out
}

// Hand returns the hand held by d.
func (g *Game) Hand(d seat.Direction) card.Hand {
	return g.players[d].Hand
}

// Dummy returns the dummy seat once a contract has been reached.
func (g *Game) Dummy() (seat.Direction, bool) {
	if g.play == nil {
		return 0, false
	}
	return g.auction.Declarer().Partner(), true
}

// Controller returns the seat that acts for the seat on turn: the declarer
// when dummy is on turn, otherwise the seat on turn itself.
func (g *Game) Controller() seat.Direction {
	if dummy, ok := g.Dummy(); ok && g.phase == PhasePlay && g.turn == dummy {
		return dummy.Partner()
	}
	return g.turn
}

// LegalBids returns the legal calls for the seat on turn in vocabulary
// order, or nil outside the auction.
func (g *Game) LegalBids() []string {
	if g.phase != PhaseAuction {
		return nil
	}
	return bidStrings(g.auction.LegalBids(g.turn))
}

// LegalCards returns the cards the seat on turn may play, or nil outside
// the play.
func (g *Game) LegalCards() []string {
	if g.phase != PhasePlay {
		return nil
	}
	return card.Strings(g.legalCards())
}

func (g *Game) legalCards() []card.Card {
	if g.phase != PhasePlay {
		return nil
	}
	return rule.LegalCards(g.play.CurrentTrick(), g.players[g.turn].Hand)
}

// CurrentTrick returns the trick in progress, nil when no play is active.
func (g *Game) CurrentTrick() rule.Trick {
	if g.play == nil {
		return nil
	}
	return g.play.CurrentTrick()
}

// LastTrick returns the most recently completed trick.
func (g *Game) LastTrick() (play.CompletedTrick, bool) {
	if g.play == nil {
		return play.CompletedTrick{}, false
	}
	return g.play.LastTrick()
}

// TricksCount returns the tricks won by NS and EW in the current deal.
func (g *Game) TricksCount() (ns, ew int) {
	if g.play == nil {
		return 0, 0
	}
	return g.play.Tricks()
}

// LastDeal returns the result of the most recently scored deal.
func (g *Game) LastDeal() (DealResult, bool) {
	if g.lastDeal == nil {
		return DealResult{}, false
	}
	return *g.lastDeal, true
}

// BiddingHistory lays the calls out in rows of four, the first column being
// the dealer. While the auction runs the next call is marked with "?".
func (g *Game) BiddingHistory() (rows [][]string, directions []string) {
	for i := range 4 {
		directions = append(directions, g.dealer.Offset(i).String())
	}

	cells := make([]string, 0, len(g.auction.History())+1)
	for _, c := range g.auction.History() {
		cells = append(cells, c.Bid.String())
	}
	if g.phase == PhaseAuction && !g.auction.Ended() {
		cells = append(cells, HistoryPlaceholder)
	}

	for start := 0; start < len(cells); start += 4 {
		row := make([]string, 4)
		copy(row, cells[start:min(start+4, len(cells))])
		rows = append(rows, row)
	}
	return rows, directions
}

func bidStrings(bids []bid.Bid) []string {
	out := make([]string, len(bids))
	for i, b := range bids {
		out[i] = b.String()
	}
	return out
}
