package table

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/rubber-bridge/internal/apperrors"
	"github.com/palemoky/rubber-bridge/internal/game"
	"github.com/palemoky/rubber-bridge/internal/network/server/types"
	"github.com/palemoky/rubber-bridge/internal/testutil"
)

func newManager(t *testing.T, lb types.LeaderboardInterface) *Manager {
	t.Helper()
	m := NewManager(nil, lb, time.Hour, game.WithShuffler(noShuffle{}))
	t.Cleanup(m.Close)
	return m
}

func TestManager_CreateJoinLeave(t *testing.T) {
	t.Parallel()

	m := newManager(t, nil)
	clients := newClients()

	joined, err := m.CreateTable(clients[0], "E")
	require.NoError(t, err)
	require.Len(t, joined.Code, codeLength)
	assert.Equal(t, "E", joined.Seat)
	assert.Equal(t, 1, m.Count())

	_, err = m.JoinTable(clients[1], "000000x", "")
	assert.ErrorIs(t, err, apperrors.ErrTableNotFound)

	joined2, err := m.JoinTable(clients[1], joined.Code, "")
	require.NoError(t, err)
	assert.Equal(t, "N", joined2.Seat)

	list := m.TableList()
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].Players)
	assert.Equal(t, PhaseWaiting, list[0].Phase)

	// 创建新牌桌会先离开旧牌桌
	other, err := m.CreateTable(clients[1], "")
	require.NoError(t, err)
	assert.NotEqual(t, joined.Code, other.Code)
	assert.Equal(t, 1, m.GetTable(joined.Code).PlayerCount())
	assert.Equal(t, 2, m.Count())

	m.LeaveTable(clients[0])
	assert.Nil(t, m.GetTable(joined.Code))
	assert.Empty(t, clients[0].GetTable())
	assert.Equal(t, 1, m.Count())

	// 不在牌桌上离开无副作用
	m.LeaveTable(clients[0])
}

func TestManager_NotAtTable(t *testing.T) {
	t.Parallel()

	m := newManager(t, nil)
	c := testutil.NewSimpleClient("p1", "Ann")

	assert.ErrorIs(t, m.SetReady(c, true), apperrors.ErrNotAtTable)
	assert.ErrorIs(t, m.Bid(c, "1C"), apperrors.ErrNotAtTable)
	assert.ErrorIs(t, m.PlayCard(c, "CA"), apperrors.ErrNotAtTable)
	assert.ErrorIs(t, m.NextDeal(c), apperrors.ErrNotAtTable)

	c.SetTable("999999")
	assert.ErrorIs(t, m.Bid(c, "1C"), apperrors.ErrTableNotFound)
}

func TestManager_RecordsRubber(t *testing.T) {
	t.Parallel()

	lb := new(testutil.MockLeaderboard)
	lb.On("RecordRubberResult", mock.Anything, mock.MatchedBy(func(ps []types.RubberPlayer) bool {
		return len(ps) == 4 && ps[0].Won && ps[2].Won && !ps[1].Won && !ps[3].Won
	})).Return(nil).Once()

	m := newManager(t, lb)
	clients := newClients()
	joined, err := m.CreateTable(clients[0], "")
	require.NoError(t, err)
	for _, c := range clients[1:] {
		_, err := m.JoinTable(c, joined.Code, "")
		require.NoError(t, err)
	}
	for _, c := range clients {
		require.NoError(t, m.SetReady(c, true))
	}
	assert.Empty(t, m.TableList())

	play := func() {
		for m.GetTable(joined.Code).Phase() == "play" {
			for _, c := range clients {
				if st := lastState(t, c); len(st.LegalCards) > 0 {
					require.NoError(t, m.PlayCard(c, st.LegalCards[0]))
					break
				}
			}
		}
	}

	for i, call := range []string{"7C", "PASS", "PASS", "PASS"} {
		require.NoError(t, m.Bid(clients[i], call))
	}
	play()
	require.NoError(t, m.NextDeal(clients[0]))
	for _, i := range []int{1, 2, 3, 0, 1, 2, 3} {
		call := "PASS"
		if i == 0 {
			call = "7C"
		}
		require.NoError(t, m.Bid(clients[i], call))
	}
	play()

	assert.Equal(t, "game_over", m.GetTable(joined.Code).Phase())
	lb.AssertExpectations(t)
}

func TestManager_Cleanup(t *testing.T) {
	t.Parallel()

	store := new(testutil.MockStore)
	store.On("SaveTable", mock.Anything, mock.Anything).Return(nil).Maybe()
	deleted := make(chan string, 1)
	store.On("DeleteTable", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		deleted <- args.String(1)
	}).Once()

	m := NewManager(store, nil, time.Minute)
	t.Cleanup(m.Close)

	joined, err := m.CreateTable(testutil.NewSimpleClient("p1", "Ann"), "")
	require.NoError(t, err)

	assert.Zero(t, m.cleanup(time.Now()))
	assert.Equal(t, 1, m.cleanup(time.Now().Add(2*time.Minute)))
	assert.Nil(t, m.GetTable(joined.Code))

	select {
	case code := <-deleted:
		assert.Equal(t, joined.Code, code)
	case <-time.After(time.Second):
		t.Fatal("table not deleted from store")
	}
}
