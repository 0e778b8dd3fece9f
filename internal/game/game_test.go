package game

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/rubber-bridge/internal/apperrors"
	"github.com/palemoky/rubber-bridge/internal/game/bid"
	"github.com/palemoky/rubber-bridge/internal/game/card"
	"github.com/palemoky/rubber-bridge/internal/game/seat"
)

// noShuffle 不洗牌：北梅花、东方块、南红心、西黑桃
type noShuffle struct{}

func (noShuffle) Shuffle(int, func(i, j int)) {}

func newDealt(t *testing.T, opts ...Option) *Game {
	t.Helper()
	g := New(append([]Option{WithShuffler(noShuffle{})}, opts...)...)
	require.NoError(t, g.DealCards())
	return g
}

func bidAll(t *testing.T, g *Game, calls ...string) {
	t.Helper()
	for _, c := range calls {
		require.NoError(t, g.Bid(c), "call %s by %s", c, g.Turn())
	}
}

func playOut(t *testing.T, g *Game) {
	t.Helper()
	for g.Phase() == PhasePlay {
		legal := g.LegalCards()
		require.NotEmpty(t, legal)
		require.NoError(t, g.PlayCard(legal[0]))
	}
}

func TestDealCards_PartitionsDeck(t *testing.T) {
	t.Parallel()

	g := New(WithShuffler(rand.New(rand.NewPCG(7, 11))))
	require.NoError(t, g.DealCards())
	assert.Equal(t, PhaseAuction, g.Phase())
	assert.Equal(t, seat.North, g.Turn())

	var all []card.Card
	for _, d := range seat.All {
		h := g.Hand(d)
		assert.Equal(t, card.HandSize, h.Len())
		all = append(all, h.Cards()...)
	}
	slices.SortFunc(all, card.Compare)
	assert.Equal(t, []card.Card(card.NewDeck()), all)

	err := g.DealCards()
	assert.ErrorIs(t, err, apperrors.ErrWrongPhase)
}

func TestBid_PassedOutStartsNewDeal(t *testing.T) {
	t.Parallel()

	g := newDealt(t)
	bidAll(t, g, "PASS", "PASS", "PASS", "PASS")

	assert.Equal(t, PhaseDealCards, g.Phase())
	assert.Equal(t, seat.East, g.Dealer())
	assert.Equal(t, seat.East, g.Turn())
	assert.Nil(t, g.CurrentTrick())
	_, ok := g.Dummy()
	assert.False(t, ok)
	assert.True(t, g.Contract().IsPassedOut())
	_, ok = g.LastDeal()
	assert.False(t, ok)

	require.NoError(t, g.DealCards())
	assert.Equal(t, seat.East, g.Turn())
}

func TestBid_DoubleRedoubleSequence(t *testing.T) {
	t.Parallel()

	g := newDealt(t)
	bidAll(t, g, "1H", "X", "XX")
	assert.Equal(t, 2, g.Contract().Doubled)

	err := g.Bid("X")
	assert.ErrorIs(t, err, apperrors.ErrIllegalBid)
	assert.Equal(t, seat.West, g.Turn())
	assert.Equal(t, []string{"PASS", "1S", "1NT"}, g.LegalBids()[:3])
}

func TestCommands_RejectedWithoutMutation(t *testing.T) {
	t.Parallel()

	g := newDealt(t)
	bidAll(t, g, "1NT")
	before := g.View(seat.North)
	history, _ := g.BiddingHistory()

	tests := []struct {
		name string
		do   func() error
		want error
	}{
		{"play during auction", func() error { return g.PlayCard("SA") }, apperrors.ErrWrongPhase},
		{"deal during auction", g.DealCards, apperrors.ErrWrongPhase},
		{"out of turn", func() error { return g.BidAs(seat.West, "2C") }, apperrors.ErrNotYourTurn},
		{"malformed bid", func() error { return g.Bid("8Q") }, apperrors.ErrParse},
		{"insufficient bid", func() error { return g.Bid("1S") }, apperrors.ErrIllegalBid},
		{"redouble own bid", func() error { return g.Bid("XX") }, apperrors.ErrIllegalBid},
	}
	for _, tt := range tests {
		err := tt.do()
		assert.ErrorIs(t, err, tt.want, tt.name)
		assert.Equal(t, apperrors.Code(tt.want), apperrors.Code(err), tt.name)
	}

	assert.Equal(t, before, g.View(seat.North))
	after, _ := g.BiddingHistory()
	assert.Equal(t, history, after)
}

func TestPlay_DeclarerActsForDummy(t *testing.T) {
	t.Parallel()

	g := newDealt(t)
	bidAll(t, g, "7C", "PASS", "PASS", "PASS")

	require.Equal(t, PhasePlay, g.Phase())
	assert.Equal(t, bid.Contract{Level: 7, Strain: bid.Clubs, Declarer: seat.North}, g.Contract())
	dummy, ok := g.Dummy()
	require.True(t, ok)
	assert.Equal(t, seat.South, dummy)
	assert.Equal(t, seat.East, g.Turn())
	assert.Nil(t, g.LegalBids())

	// 首攻前明手不亮牌
	assert.Empty(t, g.View(seat.East).DummyHand)

	require.NoError(t, g.PlayCard("DA"))
	assert.Equal(t, seat.South, g.Turn())
	assert.Equal(t, seat.North, g.Controller())

	err := g.PlayCardAs(seat.South, "HA")
	assert.ErrorIs(t, err, apperrors.ErrNotYourTurn)

	east := g.View(seat.East)
	assert.Len(t, east.DummyHand, 13)
	assert.False(t, east.YourTurn())
	assert.Empty(t, g.View(seat.South).DummyHand)

	north := g.View(seat.North)
	assert.True(t, north.YourTurn())
	assert.Len(t, north.LegalCards, 13)
	assert.Equal(t, card.Hearts, north.LegalCards[0].Suit)

	require.NoError(t, g.PlayCardAs(seat.North, "H2"))
	assert.Len(t, g.CurrentTrick(), 2)
}

func TestPlay_IllegalCards(t *testing.T) {
	t.Parallel()

	// 西家 1♠ 定约，北家首攻
	g := newDealt(t, WithDealer(seat.West))
	bidAll(t, g, "1S", "PASS", "PASS", "PASS")
	require.Equal(t, seat.North, g.Turn())

	err := g.PlayCard("SA")
	require.ErrorIs(t, err, apperrors.ErrIllegalCardPlay)
	assert.Equal(t, apperrors.Code(apperrors.ErrIllegalCardPlay), apperrors.Code(err))

	require.NoError(t, g.PlayCard("C5"))
	assert.Equal(t, []string{"D2"}, g.LegalCards()[len(g.LegalCards())-1:])
}

func TestRubber_FullFlow(t *testing.T) {
	t.Parallel()

	g := newDealt(t, WithPlayerNames([4]string{"Ann", "Bob", "Cat", "Dan"}))
	bidAll(t, g, "7C", "PASS", "PASS", "PASS")
	playOut(t, g)

	require.Equal(t, PhaseDisplayScore, g.Phase())
	ns, ew := g.TricksCount()
	assert.Equal(t, 13, ns)
	assert.Equal(t, 0, ew)

	deal, ok := g.LastDeal()
	require.True(t, ok)
	assert.True(t, deal.Made())
	assert.Equal(t, 13, deal.DeclarerTricks())
	assert.Equal(t, 140+200+1000, deal.Points)
	assert.False(t, deal.RubberOver)

	s := g.Scores()
	assert.Equal(t, "Ann/Cat", s.NS.Name)
	assert.Equal(t, 140, s.NS.GamePoints[0])
	assert.True(t, s.NS.Vulnerable)
	assert.Equal(t, 1, s.Game())

	require.NoError(t, g.PrepareNewDeal())
	assert.Equal(t, seat.East, g.Dealer())
	require.NoError(t, g.DealCards())
	bidAll(t, g, "PASS", "PASS", "PASS", "7C", "PASS", "PASS", "PASS")
	playOut(t, g)

	require.Equal(t, PhaseGameOver, g.Phase())
	deal, _ = g.LastDeal()
	assert.True(t, deal.Vulnerable)
	assert.Equal(t, 140+500+1500, deal.Points)
	assert.True(t, deal.RubberOver)
	assert.Equal(t, 700, s.NS.RubberBonus)

	assert.ErrorIs(t, g.PrepareNewDeal(), apperrors.ErrWrongPhase)
	assert.ErrorIs(t, g.DealCards(), apperrors.ErrWrongPhase)
}

func TestBiddingHistory(t *testing.T) {
	t.Parallel()

	g := newDealt(t, WithDealer(seat.South))
	rows, dirs := g.BiddingHistory()
	assert.Equal(t, []string{"South", "West", "North", "East"}, dirs)
	assert.Equal(t, [][]string{{"?", "", "", ""}}, rows)

	bidAll(t, g, "1H", "PASS")
	rows, _ = g.BiddingHistory()
	assert.Equal(t, [][]string{{"1H", "PASS", "?", ""}}, rows)

	bidAll(t, g, "2H", "PASS")
	rows, _ = g.BiddingHistory()
	assert.Equal(t, [][]string{{"1H", "PASS", "2H", "PASS"}, {"?", "", "", ""}}, rows)

	bidAll(t, g, "PASS", "PASS")
	rows, _ = g.BiddingHistory()
	assert.Equal(t, [][]string{{"1H", "PASS", "2H", "PASS"}, {"PASS", "PASS", "", ""}}, rows)
}

func TestPrepareNewDeal_Phases(t *testing.T) {
	t.Parallel()

	g := New(WithShuffler(noShuffle{}))
	assert.ErrorIs(t, g.PrepareNewDeal(), apperrors.ErrWrongPhase)

	require.NoError(t, g.DealCards())
	bidAll(t, g, "1C")
	require.NoError(t, g.PrepareNewDeal())
	assert.Equal(t, PhaseDealCards, g.Phase())
	assert.Empty(t, g.History())
}
