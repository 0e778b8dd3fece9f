package table

import (
	"github.com/palemoky/rubber-bridge/internal/game/seat"
	"github.com/palemoky/rubber-bridge/internal/network/protocol"
	"github.com/palemoky/rubber-bridge/internal/network/protocol/codec"
	"github.com/palemoky/rubber-bridge/internal/network/protocol/convert"
)

// 以下方法调用方需持有 t.mu

func (t *Table) broadcast(msg *protocol.Message) {
	for _, st := range t.seats {
		if st != nil {
			st.Client.SendMessage(msg)
		}
	}
}

func (t *Table) broadcastExcept(playerID string, msg *protocol.Message) {
	for _, st := range t.seats {
		if st != nil && st.Client.GetID() != playerID {
			st.Client.SendMessage(msg)
		}
	}
}

// broadcastState sends every seated player the table as seen from their seat.
func (t *Table) broadcastState() {
	for _, d := range seat.All {
		t.sendState(d)
	}
}

func (t *Table) sendState(d seat.Direction) {
	st := t.seats[d]
	if st == nil || t.game == nil {
		return
	}
	payload := convert.TableState(t.Code, t.game.View(d), t.seatInfos())
	st.Client.SendMessage(codec.MustNewMessage(protocol.MsgTableState, payload))
}

func (t *Table) broadcastDealResult() {
	r, ok := t.game.LastDeal()
	if !ok {
		return
	}
	t.broadcast(codec.MustNewMessage(protocol.MsgDealResult, convert.DealResult(r, t.game.Scores())))
}

func (t *Table) seatInfo(d seat.Direction) protocol.SeatInfo {
	info := protocol.SeatInfo{Seat: d.Abbreviation()}
	if st := t.seats[d]; st != nil {
		info.PlayerID = st.Client.GetID()
		info.Name = st.Client.GetName()
		info.Ready = st.Ready
		info.Online = true
	}
	return info
}

func (t *Table) seatInfos() []protocol.SeatInfo {
	out := make([]protocol.SeatInfo, 0, len(t.seats))
	for _, d := range seat.All {
		out = append(out, t.seatInfo(d))
	}
	return out
}
