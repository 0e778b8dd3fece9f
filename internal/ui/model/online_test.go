package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/rubber-bridge/internal/network/client"
	"github.com/palemoky/rubber-bridge/internal/network/protocol"
	"github.com/palemoky/rubber-bridge/internal/network/protocol/codec"
)

func serverMsg(t protocol.MessageType, payload any) ServerMessage {
	return ServerMessage{Msg: codec.MustNewMessage(t, payload)}
}

func TestOnlineModel_LobbyToTable(t *testing.T) {
	t.Parallel()

	m := NewOnlineModel("ws://unused/ws", "")
	assert.Contains(t, m.View(), "Connecting")

	_, cmd := m.Update(serverMsg(protocol.MsgConnected, protocol.ConnectedPayload{PlayerID: "p1", PlayerName: "Lucky Finesse"}))
	assert.NotNil(t, cmd, "keeps listening")
	assert.Equal(t, "Lucky Finesse", m.playerName)

	m.Update(serverMsg(protocol.MsgTableList, protocol.TableListPayload{Tables: []protocol.TableListItem{{Code: "654321", Players: 3, Phase: "waiting"}}}))
	assert.Contains(t, m.View(), "654321")

	m.Update(serverMsg(protocol.MsgTableJoined, protocol.TableJoinedPayload{
		Code: "123456", Seat: "N",
		Players: []protocol.SeatInfo{{Seat: "N", PlayerID: "p1", Name: "Lucky Finesse"}, {Seat: "E"}, {Seat: "S"}, {Seat: "W"}},
	}))
	assert.Equal(t, "123456", m.tableCode)
	assert.Contains(t, m.notice, "Seated North")

	m.Update(serverMsg(protocol.MsgPlayerJoined, protocol.PlayerJoinedPayload{Player: protocol.SeatInfo{Seat: "E", PlayerID: "p2", Name: "Bob"}}))
	m.Update(serverMsg(protocol.MsgPlayerReady, protocol.PlayerReadyPayload{Seat: "E", PlayerID: "p2", Ready: true}))
	assert.Contains(t, m.View(), "Bob ✅")

	m.Update(serverMsg(protocol.MsgPlayerLeft, protocol.PlayerLeftPayload{Seat: "E", PlayerID: "p2", PlayerName: "Bob"}))
	assert.Contains(t, m.notice, "Bob left")
	assert.NotContains(t, m.View(), "Bob ✅")
}

func TestOnlineModel_GameMessages(t *testing.T) {
	t.Parallel()

	m := NewOnlineModel("ws://unused/ws", "Ann")
	m.Update(serverMsg(protocol.MsgConnected, protocol.ConnectedPayload{PlayerID: "p1", PlayerName: "Ann"}))
	m.Update(serverMsg(protocol.MsgTableState, protocol.TableStatePayload{
		Code: "123456", Seat: "N", Phase: "auction", Dealer: "N", Turn: "N", Controller: "N",
		HandSizes: []int{13, 13, 13, 13}, Hand: []string{"CA"}, LegalBids: []string{"PASS", "1C"},
	}))
	require.NotNil(t, m.state)
	assert.Contains(t, m.View(), "Your call: PASS 1C")

	m.Update(serverMsg(protocol.MsgDealResult, protocol.DealResultPayload{
		Contract: protocol.ContractInfo{Level: 3, Strain: "NT", Doubled: 1, Declarer: "E", Text: "3NTX E"},
		TricksNS: 6, TricksEW: 7, Points: -500,
	}))
	assert.Equal(t, "3NTX E down 2 with 7 tricks: -500.", m.notice)

	m.Update(serverMsg(protocol.MsgRubberOver, protocol.RubberOverPayload{Winner: "NS"}))
	assert.Equal(t, "Rubber over: NS wins.", m.notice)

	m.Update(serverMsg(protocol.MsgError, protocol.ErrorPayload{Code: protocol.ErrCodeNotYourTurn, Message: "not your turn"}))
	assert.Equal(t, "not your turn", m.err)

	m.Update(serverMsg(protocol.MsgLeaderboard, protocol.LeaderboardPayload{Entries: []protocol.LeaderboardEntry{{Rank: 1, PlayerName: "Ann", Score: 700}}}))
	assert.True(t, m.showBoard)
	assert.Contains(t, m.View(), "700")
}

func TestOnlineModel_Commands(t *testing.T) {
	t.Parallel()

	m := NewOnlineModel("ws://unused/ws", "Ann")

	for _, line := range []string{"create n", "join 123456 s", "ready", "unready", "list", "lb 3", "1nt", "sa", "next"} {
		submit(m, line)
		assert.Empty(t, m.err, line)
	}

	m.tableCode = "123456"
	submit(m, "leave")
	assert.Empty(t, m.tableCode)

	submit(m, "help")
	assert.Contains(t, m.View(), "join CODE")

	submit(m, "7Q")
	assert.NotEmpty(t, m.err)

	m.Update(ConnectionErrorMsg{Err: errors.New("refused")})
	assert.Contains(t, m.err, "refused")

	m.Update(ReconnectingMsg{Attempt: 2, MaxTries: 5})
	assert.Contains(t, m.notice, "2/5")

	cmd := submit(m, "quit")
	require.NotNil(t, cmd)
	assert.ErrorIs(t, m.client.Ready(), client.ErrClosed)
}
