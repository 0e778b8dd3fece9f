package convert

import (
	"github.com/palemoky/rubber-bridge/internal/game"
	"github.com/palemoky/rubber-bridge/internal/game/score"
	"github.com/palemoky/rubber-bridge/internal/network/protocol"
)

// TableState builds the table_state payload for one seat's view. players
// carries the connection details the game itself does not know about.
func TableState(code string, v game.View, players []protocol.SeatInfo) protocol.TableStatePayload {
	p := protocol.TableStatePayload{
		Code:       code,
		Seat:       v.Seat.Abbreviation(),
		Phase:      v.Phase.String(),
		DealNumber: v.DealNumber,
		Dealer:     v.Dealer.Abbreviation(),
		Turn:       v.Turn.Abbreviation(),
		Controller: v.Controller.Abbreviation(),
		Players:    players,
		HandSizes:  v.HandSizes[:],
		Hand:       cardsToStrings(v.Hand),
		DummyHand:  cardsToStrings(v.DummyHand),
		Calls:      callsToInfo(v.Calls),
		Contract:   ContractInfo(v.Contract),
		Trick:      trickToInfo(v.Trick),
		LastTrick:  completedToInfo(v.LastTrick),
		TricksNS:   v.TricksNS,
		TricksEW:   v.TricksEW,
		LegalBids:  bidsToStrings(v.LegalBids),
		LegalCards: cardsToStrings(v.LegalCards),
		Scores:     Scores(v.NS, v.EW),
	}
	if v.HasDummy {
		p.Dummy = v.Dummy.Abbreviation()
	}
	return p
}

// DealResult builds the deal_result payload.
func DealResult(r game.DealResult, s *score.Score) protocol.DealResultPayload {
	p := protocol.DealResultPayload{
		Number:     r.Number,
		TricksNS:   r.TricksNS,
		TricksEW:   r.TricksEW,
		Made:       r.Made(),
		Vulnerable: r.Vulnerable,
		Points:     r.Points,
		RubberOver: r.RubberOver,
		Scores:     Scores(*s.NS, *s.EW),
	}
	if c := ContractInfo(r.Contract); c != nil {
		p.Contract = *c
	}
	return p
}

// RubberOver builds the rubber_over payload. Winner is empty on a tie.
func RubberOver(s *score.Score) protocol.RubberOverPayload {
	p := protocol.RubberOverPayload{Scores: Scores(*s.NS, *s.EW)}
	if w, ok := s.Winner(); ok {
		p.Winner = w.String()
	}
	return p
}
