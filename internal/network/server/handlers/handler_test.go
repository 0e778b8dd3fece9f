package handlers

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/rubber-bridge/internal/game"
	"github.com/palemoky/rubber-bridge/internal/network/protocol"
	"github.com/palemoky/rubber-bridge/internal/network/protocol/codec"
	"github.com/palemoky/rubber-bridge/internal/network/server/table"
	"github.com/palemoky/rubber-bridge/internal/testutil"
)

type noShuffle struct{}

func (noShuffle) Shuffle(int, func(i, j int)) {}

func newHandler(t *testing.T) (*Handler, *testutil.MockServer, *testutil.MockLeaderboard) {
	t.Helper()
	tables := table.NewManager(nil, nil, time.Hour, game.WithShuffler(noShuffle{}))
	t.Cleanup(tables.Close)

	lb := new(testutil.MockLeaderboard)
	srv := new(testutil.MockServer)
	srv.On("GetTableManager").Return(tables).Maybe()
	srv.On("GetLeaderboard").Return(lb).Maybe()
	return NewHandler(srv, 10), srv, lb
}

func lastError(t *testing.T, c *testutil.SimpleClient) *protocol.ErrorPayload {
	t.Helper()
	msg := c.Last(protocol.MsgError)
	require.NotNil(t, msg, "expected an error message")
	p, err := codec.ParsePayload[protocol.ErrorPayload](msg)
	require.NoError(t, err)
	return p
}

func TestHandle_Ping(t *testing.T) {
	t.Parallel()

	h, _, _ := newHandler(t)
	c := testutil.NewSimpleClient("p1", "Ann")

	h.Handle(c, codec.MustNewMessage(protocol.MsgPing, protocol.PingPayload{Timestamp: 42}))

	pong, err := codec.ParsePayload[protocol.PongPayload](c.Last(protocol.MsgPong))
	require.NoError(t, err)
	assert.Equal(t, int64(42), pong.ClientTimestamp)
	assert.Positive(t, pong.ServerTimestamp)
}

func TestHandle_UnknownAndMalformed(t *testing.T) {
	t.Parallel()

	h, _, _ := newHandler(t)
	c := testutil.NewSimpleClient("p1", "Ann")

	h.Handle(c, &protocol.Message{Type: "shuffle_deck"})
	assert.Equal(t, protocol.ErrCodeInvalidMsg, lastError(t, c).Code)

	c.Reset()
	h.Handle(c, &protocol.Message{Type: protocol.MsgBid, Payload: []byte("[")})
	assert.Equal(t, protocol.ErrCodeInvalidMsg, lastError(t, c).Code)

	c.Reset()
	h.Handle(c, codec.MustNewMessage(protocol.MsgJoinTable, protocol.JoinTablePayload{}))
	assert.Equal(t, protocol.ErrCodeInvalidMsg, lastError(t, c).Code)
}

func TestHandle_TableFlow(t *testing.T) {
	t.Parallel()

	h, _, _ := newHandler(t)
	clients := []*testutil.SimpleClient{
		testutil.NewSimpleClient("p1", "guest1"),
		testutil.NewSimpleClient("p2", "guest2"),
		testutil.NewSimpleClient("p3", "guest3"),
		testutil.NewSimpleClient("p4", "guest4"),
	}

	h.Handle(clients[0], codec.MustNewMessage(protocol.MsgCreateTable, protocol.CreateTablePayload{Seat: "N", Name: "Ann"}))
	assert.Equal(t, "Ann", clients[0].GetName())
	joined, err := codec.ParsePayload[protocol.TableJoinedPayload](clients[0].Last(protocol.MsgTableJoined))
	require.NoError(t, err)
	assert.Equal(t, "N", joined.Seat)

	h.Handle(clients[1], codec.MustNewMessage(protocol.MsgJoinTable, protocol.JoinTablePayload{Code: joined.Code, Seat: "N"}))
	assert.Equal(t, protocol.ErrCodeSeatTaken, lastError(t, clients[1]).Code)

	h.Handle(clients[1], codec.MustNewMessage(protocol.MsgJoinTable, protocol.JoinTablePayload{Code: "000000"}))
	assert.Equal(t, protocol.ErrCodeTableNotFound, lastError(t, clients[1]).Code)

	h.Handle(clients[0], codec.MustNewMessage(protocol.MsgGetTableList, nil))
	list, err := codec.ParsePayload[protocol.TableListPayload](clients[0].Last(protocol.MsgTableList))
	require.NoError(t, err)
	require.Len(t, list.Tables, 1)
	assert.Equal(t, 1, list.Tables[0].Players)

	for _, c := range clients[1:] {
		c.Reset()
		h.Handle(c, codec.MustNewMessage(protocol.MsgJoinTable, protocol.JoinTablePayload{Code: joined.Code}))
		require.Nil(t, c.Last(protocol.MsgError))
	}

	h.Handle(clients[0], codec.MustNewMessage(protocol.MsgBid, protocol.BidPayload{Bid: "1C"}))
	assert.Equal(t, protocol.ErrCodeWrongPhase, lastError(t, clients[0]).Code)

	for _, c := range clients {
		h.Handle(c, codec.MustNewMessage(protocol.MsgReady, nil))
	}
	require.NotNil(t, clients[0].Last(protocol.MsgTableState))

	h.Handle(clients[1], codec.MustNewMessage(protocol.MsgBid, protocol.BidPayload{Bid: "1C"}))
	assert.Equal(t, protocol.ErrCodeNotYourTurn, lastError(t, clients[1]).Code)

	h.Handle(clients[0], codec.MustNewMessage(protocol.MsgBid, protocol.BidPayload{Bid: "1Q"}))
	assert.Equal(t, protocol.ErrCodeParse, lastError(t, clients[0]).Code)

	clients[0].Reset()
	h.Handle(clients[0], codec.MustNewMessage(protocol.MsgBid, protocol.BidPayload{Bid: "1NT"}))
	assert.Nil(t, clients[0].Last(protocol.MsgError))

	h.Handle(clients[1], codec.MustNewMessage(protocol.MsgPlayCard, protocol.PlayCardPayload{Card: "DA"}))
	assert.Equal(t, protocol.ErrCodeWrongPhase, lastError(t, clients[1]).Code)

	h.Handle(clients[2], codec.MustNewMessage(protocol.MsgNextDeal, nil))
	assert.Equal(t, protocol.ErrCodeWrongPhase, lastError(t, clients[2]).Code)

	h.Handle(clients[3], codec.MustNewMessage(protocol.MsgLeaveTable, nil))
	assert.Empty(t, clients[3].GetTable())
	assert.NotNil(t, clients[0].Last(protocol.MsgPlayerLeft))

	h.Handle(clients[3], codec.MustNewMessage(protocol.MsgCancelReady, nil))
	assert.Equal(t, protocol.ErrCodeNotAtTable, lastError(t, clients[3]).Code)
}

func TestHandle_Leaderboard(t *testing.T) {
	t.Parallel()

	h, _, lb := newHandler(t)
	c := testutil.NewSimpleClient("p1", "Ann")

	entries := []protocol.LeaderboardEntry{{Rank: 1, PlayerID: "p9", PlayerName: "Xia", Score: 900}}
	lb.On("GetLeaderboard", mock.Anything, 10).Return(entries, nil).Once()
	lb.On("GetLeaderboard", mock.Anything, maxLeaderboardLimit).Return(nil, errors.New("redis down")).Once()

	h.Handle(c, codec.MustNewMessage(protocol.MsgGetLeaderboard, protocol.GetLeaderboardPayload{}))
	got, err := codec.ParsePayload[protocol.LeaderboardPayload](c.Last(protocol.MsgLeaderboard))
	require.NoError(t, err)
	assert.Equal(t, entries, got.Entries)

	h.Handle(c, codec.MustNewMessage(protocol.MsgGetLeaderboard, protocol.GetLeaderboardPayload{Limit: 1000}))
	assert.Equal(t, protocol.ErrCodeUnknown, lastError(t, c).Code)

	lb.AssertExpectations(t)
}

func TestHandle_LeaderboardPeriods(t *testing.T) {
	t.Parallel()

	h, _, lb := newHandler(t)
	c := testutil.NewSimpleClient("p1", "Ann")

	daily := []protocol.LeaderboardEntry{{Rank: 1, PlayerID: "p2", PlayerName: "Bob", Score: 120}}
	weekly := []protocol.LeaderboardEntry{{Rank: 1, PlayerID: "p3", PlayerName: "Cat", Score: 640}}
	lb.On("GetDailyLeaderboard", mock.Anything, 5).Return(daily, nil).Once()
	lb.On("GetWeeklyLeaderboard", mock.Anything, 10).Return(weekly, nil).Once()

	h.Handle(c, codec.MustNewMessage(protocol.MsgGetLeaderboard, protocol.GetLeaderboardPayload{Limit: 5, Period: protocol.PeriodDaily}))
	got, err := codec.ParsePayload[protocol.LeaderboardPayload](c.Last(protocol.MsgLeaderboard))
	require.NoError(t, err)
	assert.Equal(t, protocol.PeriodDaily, got.Period)
	assert.Equal(t, daily, got.Entries)

	h.Handle(c, codec.MustNewMessage(protocol.MsgGetLeaderboard, protocol.GetLeaderboardPayload{Period: protocol.PeriodWeekly}))
	got, err = codec.ParsePayload[protocol.LeaderboardPayload](c.Last(protocol.MsgLeaderboard))
	require.NoError(t, err)
	assert.Equal(t, protocol.PeriodWeekly, got.Period)
	assert.Equal(t, weekly, got.Entries)

	h.Handle(c, codec.MustNewMessage(protocol.MsgGetLeaderboard, protocol.GetLeaderboardPayload{Period: "monthly"}))
	assert.Equal(t, protocol.ErrCodeInvalidMsg, lastError(t, c).Code)

	lb.AssertExpectations(t)
}

func TestHandle_LeaderboardDisabled(t *testing.T) {
	t.Parallel()

	srv := new(testutil.MockServer)
	srv.On("GetLeaderboard").Return(nil)
	h := NewHandler(srv, 10)
	c := testutil.NewSimpleClient("p1", "Ann")

	h.Handle(c, codec.MustNewMessage(protocol.MsgGetLeaderboard, nil))
	got, err := codec.ParsePayload[protocol.LeaderboardPayload](c.Last(protocol.MsgLeaderboard))
	require.NoError(t, err)
	assert.Empty(t, got.Entries)
}
