package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/rubber-bridge/internal/game"
	"github.com/palemoky/rubber-bridge/internal/game/seat"
)

func TestRandom_ChooseBid(t *testing.T) {
	t.Parallel()

	r := NewRandom(1)
	legal := []string{"PASS", "X", "2C", "2D", "2H", "2S", "2NT", "3C"}
	seen := map[string]bool{}
	for range 500 {
		seen[r.ChooseBid(legal)] = true
	}
	assert.True(t, seen["PASS"])
	assert.True(t, seen["X"])
	assert.True(t, seen["2H"])
	assert.False(t, seen["2NT"], "only the cheapest calls are tried")
	assert.False(t, seen["3C"])

	assert.Equal(t, "PASS", r.ChooseBid([]string{"PASS"}))
	assert.Empty(t, r.ChooseBid(nil))
	assert.Empty(t, r.ChooseCard(nil))
	assert.Equal(t, "SA", r.ChooseCard([]string{"SA"}))
}

func TestRandom_Deterministic(t *testing.T) {
	t.Parallel()

	legal := []string{"SA", "SK", "SQ", "SJ", "ST"}
	a, b := NewRandom(42), NewRandom(42)
	for range 50 {
		assert.Equal(t, a.ChooseCard(legal), b.ChooseCard(legal))
	}
}

func TestPlayRubber_Completes(t *testing.T) {
	t.Parallel()

	for seed := range uint64(20) {
		g := game.New(game.WithShuffler(NewRandom(seed)), game.WithDealer(seat.Direction(seed%4)))
		rep, err := PlayRubber(g, NewRandom(seed+1000), 500)
		require.NoError(t, err, "seed %d", seed)

		assert.Equal(t, game.PhaseGameOver, g.Phase())
		require.NotEmpty(t, rep.Deals)
		assert.Equal(t, g.DealNumber(), len(rep.Deals)+rep.PassedOut)

		for i, d := range rep.Deals {
			assert.Equal(t, 13, d.TricksNS+d.TricksEW, "seed %d deal %d", seed, i)
			assert.False(t, d.Contract.IsPassedOut())
			assert.Equal(t, i == len(rep.Deals)-1, d.RubberOver)
		}

		// 结束盘局的一方赢了两局
		last := rep.Deals[len(rep.Deals)-1]
		side := last.Contract.Declarer.Partnership()
		assert.True(t, rep.Scores.Team(side).Vulnerable)
		assert.Equal(t, 700, rep.Scores.Team(side).RubberBonus)
		assert.Contains(t, []int{0, 200}, rep.Scores.Team(side.Opponents()).RubberBonus)

		if w, ok := rep.Scores.Winner(); ok {
			assert.Equal(t, w.String(), rep.Winner)
		} else {
			assert.Empty(t, rep.Winner)
		}
	}
}

func TestPlayRubber_DealLimit(t *testing.T) {
	t.Parallel()

	g := game.New(game.WithShuffler(NewRandom(7)))
	rep, err := PlayRubber(g, NewRandom(8), 1)
	require.ErrorIs(t, err, ErrTooManyDeals)
	assert.Equal(t, 1, g.DealNumber())
	assert.LessOrEqual(t, len(rep.Deals), 1)
}
