package model

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/rubber-bridge/internal/game"
	"github.com/palemoky/rubber-bridge/internal/game/seat"
)

// noShuffle 不洗牌：北梅花、东方块、南红心、西黑桃
type noShuffle struct{}

func (noShuffle) Shuffle(int, func(i, j int)) {}

func submit(m tea.Model, line string) tea.Cmd {
	switch mm := m.(type) {
	case *LocalModel:
		mm.input.SetValue(line)
	case *OnlineModel:
		mm.input.SetValue(line)
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func newLocal(t *testing.T) *LocalModel {
	t.Helper()
	m := NewLocalModel([4]string{"Ann", "Bob", "Cat", "Dan"}, game.WithShuffler(noShuffle{}))
	require.Equal(t, game.PhaseAuction, m.Game().Phase())
	return m
}

func TestLocalModel_HotSeatFollowsTurn(t *testing.T) {
	t.Parallel()

	m := newLocal(t)
	st := m.State()
	assert.Equal(t, "N", st.Seat)
	assert.Equal(t, "CA", st.Hand[0])
	assert.NotEmpty(t, st.LegalBids)

	for _, call := range []string{"7c", "pass", "pass", "pass"} {
		submit(m, call)
		require.Empty(t, m.err, call)
	}
	assert.Contains(t, m.notice, "Contract 7C N")
	st = m.State()
	assert.Equal(t, "E", st.Seat)
	assert.Equal(t, "DA", st.LegalCards[0])

	submit(m, "da")
	st = m.State()
	assert.Equal(t, "N", st.Seat, "declarer plays for dummy")
	assert.Equal(t, seat.South, m.Game().Turn())
	assert.NotEmpty(t, st.DummyHand)

	submit(m, "SA")
	assert.Contains(t, m.err, "illegal card play")
	assert.Equal(t, seat.South, m.Game().Turn())
}

func TestLocalModel_DealAndNext(t *testing.T) {
	t.Parallel()

	m := newLocal(t)
	for _, call := range []string{"7C", "PASS", "PASS", "PASS"} {
		submit(m, call)
	}

	submit(m, "next")
	assert.Contains(t, m.err, "still in progress")

	for m.Game().Phase() == game.PhasePlay {
		submit(m, m.Game().LegalCards()[0])
		require.Empty(t, m.err)
	}
	assert.Equal(t, game.PhaseDisplayScore, m.Game().Phase())
	assert.Equal(t, "7C N made with 13 tricks: +1340.", m.notice)
	assert.Contains(t, m.View(), "1340")

	submit(m, "next")
	assert.Equal(t, game.PhaseAuction, m.Game().Phase())
	assert.Equal(t, seat.East, m.Game().Dealer())
	assert.Equal(t, "E", m.State().Seat)
}

func TestLocalModel_PassedOutRedeals(t *testing.T) {
	t.Parallel()

	m := newLocal(t)
	for range 4 {
		submit(m, "pass")
	}
	assert.Contains(t, m.notice, "Passed out")
	assert.Equal(t, game.PhaseAuction, m.Game().Phase())
	assert.Equal(t, 2, m.Game().DealNumber())
	assert.Equal(t, "E", m.State().Seat)
}

func TestLocalModel_Commands(t *testing.T) {
	t.Parallel()

	m := newLocal(t)

	submit(m, "bogus")
	assert.Contains(t, m.err, "unknown command")

	submit(m, "create")
	assert.Contains(t, m.err, "not available")

	submit(m, "help")
	assert.True(t, m.help)
	assert.Contains(t, m.View(), "continue after a scored deal")

	cmd := submit(m, "quit")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
}
